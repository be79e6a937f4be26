package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHideReducesIncomingCombatDamage(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	wolf := predator("Wolf", 3, 3)
	beetle := prey("Thorn Beetle", 1, 4, 1, "Hide 1")
	place(t, st, 0, wolf)
	place(t, st, 1, beetle)

	_, err := e.ResolveAttack(st, wolf, beetle)
	require.NoError(t, err)
	assert.Equal(t, 2, beetle.CurrentHP)
}

func TestHideNeverHealsFromWeakHits(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	weak := predator("Weak", 1, 3)
	beetle := prey("Thorn Beetle", 1, 4, 1, "Hide 3")
	place(t, st, 0, weak)
	place(t, st, 1, beetle)

	_, err := e.ResolveAttack(st, weak, beetle)
	require.NoError(t, err)
	assert.Equal(t, 4, beetle.CurrentHP)
}

func TestAttackerHideReducesCounterDamage(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	sneak := predator("Sneak", 2, 3, "Hide 2")
	bear := predator("Bear", 4, 6)
	place(t, st, 0, sneak)
	place(t, st, 1, bear)

	_, err := e.ResolveAttack(st, sneak, bear)
	require.NoError(t, err)
	assert.Equal(t, 1, sneak.CurrentHP)
	assert.Equal(t, 4, bear.CurrentHP)
}

func TestSuppressedHideGivesNoReduction(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	wolf := predator("Wolf", 3, 3)
	hider := predator("Hider", 1, 4, "Hide 2")
	hider.DryDropped = true
	place(t, st, 0, wolf)
	place(t, st, 1, hider)

	_, err := e.ResolveAttack(st, wolf, hider)
	require.NoError(t, err)
	assert.Equal(t, 1, hider.CurrentHP)
}
