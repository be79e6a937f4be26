package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godeaux/predation/internal/game/card"
	"github.com/godeaux/predation/internal/game/keywords"
)

func TestNeurotoxinParalyzesThroughNextTurn(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	st.Turn = 3
	snail := predator("Cone Snail", 1, 3, card.KeywordNeurotoxic)
	bear := predator("Bear", 2, 6)
	place(t, st, 0, snail)
	place(t, st, 1, bear)

	_, err := e.ResolveAttack(st, snail, bear)
	require.NoError(t, err)
	assert.Equal(t, 4, bear.ParalyzedUntil)
	assert.True(t, keywords.CantAttackNow(bear, 3))
	assert.True(t, keywords.CantAttackNow(bear, 4))
	assert.False(t, keywords.CantAttackNow(bear, 5))
}

func TestNeurotoxinAppliesEvenWhenHitIsAbsorbed(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	st.Turn = 2
	snail := predator("Cone Snail", 1, 3, card.KeywordNeurotoxic)
	crab := prey("Mud Crab", 0, 5, 2, card.KeywordBarrier)
	place(t, st, 0, snail)
	place(t, st, 1, crab)

	// Paralysis is a touch effect, not a damage rider.
	_, err := e.ResolveAttack(st, snail, crab)
	require.NoError(t, err)
	assert.Equal(t, 3, crab.ParalyzedUntil)
}

func TestDefenderNeurotoxinParalyzesAttacker(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	st.Turn = 2
	wolf := predator("Wolf", 2, 5)
	snail := predator("Cone Snail", 1, 6, card.KeywordNeurotoxic)
	place(t, st, 0, wolf)
	place(t, st, 1, snail)

	_, err := e.ResolveAttack(st, wolf, snail)
	require.NoError(t, err)
	assert.Equal(t, 3, wolf.ParalyzedUntil)
}

func TestParalysisExpiresAtTurnStart(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	st.Turn = 3
	bear := predator("Bear", 2, 6)
	bear.ParalyzedUntil = 4
	place(t, st, 1, bear)

	// Turn 4: still paralyzed.
	_, err := e.StartTurn(st, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, bear.ParalyzedUntil)
	assert.False(t, e.CanAttack(st, bear))

	// Turn 5: the paralysis has run out.
	_, err = e.StartTurn(st, 0)
	require.NoError(t, err)
	assert.Zero(t, bear.ParalyzedUntil)
}
