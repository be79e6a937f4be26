package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godeaux/predation/internal/game/card"
)

func TestLureRestrictsTargetsToLureCreatures(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	jelly := prey("Lantern Jelly", 0, 3, 2, card.KeywordLure)
	minnow := prey("Minnow", 1, 1, 1)
	place(t, st, 1, jelly)
	place(t, st, 1, minnow)

	targets := e.ValidTargets(st, 1)
	assert.False(t, targets.Player)
	require.Len(t, targets.Creatures, 1)
	assert.Same(t, jelly, targets.Creatures[0])
}

func TestLureBlocksFaceAttacks(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	wolf := predator("Wolf", 3, 3)
	jelly := prey("Lantern Jelly", 0, 3, 2, card.KeywordLure)
	place(t, st, 0, wolf)
	place(t, st, 1, jelly)

	sel, err := e.ResolveAttack(st, wolf, nil)
	require.NoError(t, err)
	assert.Nil(t, sel)
	assert.Equal(t, MaxPlayerHP, st.Players[1].HP)
	assert.False(t, wolf.HasAttacked)
}

func TestAttackOnNonLureTargetIsRefused(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	wolf := predator("Wolf", 3, 3)
	jelly := prey("Lantern Jelly", 0, 3, 2, card.KeywordLure)
	minnow := prey("Minnow", 1, 1, 1)
	place(t, st, 0, wolf)
	place(t, st, 1, jelly)
	place(t, st, 1, minnow)

	_, err := e.ResolveAttack(st, wolf, minnow)
	require.NoError(t, err)
	assert.Equal(t, 1, minnow.CurrentHP)
	assert.True(t, logContains(st, "not a legal target"))
}

func TestCamouflagedLureForcesNothing(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	// Hidden creatures are filtered before the Lure check, so a concealed
	// Lure creature neither forces attacks nor protects the player.
	hiddenJelly := prey("Shy Jelly", 0, 3, 2, card.KeywordLure, card.KeywordCamouflage)
	minnow := prey("Minnow", 1, 1, 1)
	place(t, st, 1, hiddenJelly)
	place(t, st, 1, minnow)

	targets := e.ValidTargets(st, 1)
	assert.True(t, targets.Player)
	require.Len(t, targets.Creatures, 1)
	assert.Same(t, minnow, targets.Creatures[0])
}

func TestSuppressedLureDoesNotForce(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	lurePredator := predator("Angler", 2, 3, card.KeywordLure)
	lurePredator.DryDropped = true
	place(t, st, 1, lurePredator)

	targets := e.ValidTargets(st, 1)
	assert.True(t, targets.Player)
	require.Len(t, targets.Creatures, 1)
}

func TestMultipleLuresAreAllLegalTargets(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	j1 := prey("Jelly One", 0, 3, 2, card.KeywordLure)
	j2 := prey("Jelly Two", 0, 3, 2, card.KeywordLure)
	minnow := prey("Minnow", 1, 1, 1)
	place(t, st, 1, j1)
	place(t, st, 1, j2)
	place(t, st, 1, minnow)

	targets := e.ValidTargets(st, 1)
	assert.False(t, targets.Player)
	assert.Len(t, targets.Creatures, 2)
}
