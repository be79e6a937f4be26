package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godeaux/predation/internal/game/card"
)

func TestEffectArrayResolvesInOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	st.Players[0].HP = 5

	src := prey("Symbiote", 1, 1, 1)
	src.Def.Effects = map[card.Trigger][]card.EffectSpec{
		card.TriggerOnPlay: {
			{Op: OpHealPlayer, Amount: 2},
			{Op: OpDamageOpponent, Amount: 1},
		},
	}
	place(t, st, 0, src)

	res, sel := e.ResolveCardEffect(st, src, card.TriggerOnPlay, 0)
	assert.Nil(t, sel)
	require.Len(t, res, 2)
	assert.IsType(t, HealPlayer{}, res[0])
	assert.IsType(t, DamagePlayer{}, res[1])
}

func TestEffectArrayStopsAtSelection(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	place(t, st, 1, prey("First", 1, 3, 1))
	place(t, st, 1, prey("Second", 1, 3, 1))

	src := prey("Caster", 1, 1, 1)
	src.Def.Effects = map[card.Trigger][]card.EffectSpec{
		card.TriggerOnPlay: {
			{Op: OpHealPlayer, Amount: 2},
			{Op: OpDamageTarget, Amount: 2},
			{Op: OpDrawCards, Amount: 1},
		},
	}
	place(t, st, 0, src)

	res, sel := e.ResolveCardEffect(st, src, card.TriggerOnPlay, 0)
	require.NotNil(t, sel, "two candidates must suspend the second entry")
	assert.Equal(t, OpDamageTarget, sel.Op)
	// Entries before the suspension are in the merged result; the entry
	// after it has not run.
	require.Len(t, res, 1)
	assert.IsType(t, HealPlayer{}, res[0])
}

func TestCancelledAbilitiesDispatchNothing(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	src := prey("Silenced", 1, 1, 1)
	src.Def.Effects = map[card.Trigger][]card.EffectSpec{
		card.TriggerOnPlay: {{Op: OpDamageOpponent, Amount: 3}},
	}
	src.AbilitiesCancelled = true
	place(t, st, 0, src)

	res, sel := e.ResolveCardEffect(st, src, card.TriggerOnPlay, 0)
	assert.Nil(t, res)
	assert.Nil(t, sel)
}

func TestDryDroppedPredatorDispatchesNothing(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	src := predator("Hungry Wolf", 3, 3)
	src.Def.Effects = map[card.Trigger][]card.EffectSpec{
		card.TriggerOnPlay: {{Op: OpDamageOpponent, Amount: 3}},
	}
	src.DryDropped = true
	place(t, st, 0, src)

	res, sel := e.ResolveCardEffect(st, src, card.TriggerOnPlay, 0)
	assert.Nil(t, res)
	assert.Nil(t, sel)
	assert.Equal(t, MaxPlayerHP, st.Players[1].HP)
}

func TestDryDropDoesNotSuppressPrey(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	src := prey("Odd Prey", 1, 1, 1)
	src.Def.Effects = map[card.Trigger][]card.EffectSpec{
		card.TriggerOnPlay: {{Op: OpDamageOpponent, Amount: 1}},
	}
	src.DryDropped = true
	place(t, st, 0, src)

	res, _ := e.ResolveCardEffect(st, src, card.TriggerOnPlay, 0)
	assert.Len(t, res, 1)
}

func TestInstanceEffectsOverrideDefinition(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	src := prey("Shifter", 1, 1, 1)
	src.Def.Effects = map[card.Trigger][]card.EffectSpec{
		card.TriggerOnPlay: {{Op: OpDamageOpponent, Amount: 3}},
	}
	src.Effects = map[card.Trigger][]card.EffectSpec{
		card.TriggerOnPlay: {{Op: OpHealPlayer, Amount: 1}},
	}
	place(t, st, 0, src)

	res, _ := e.ResolveCardEffect(st, src, card.TriggerOnPlay, 0)
	require.Len(t, res, 1)
	assert.IsType(t, HealPlayer{}, res[0])
}

func TestFireTriggerAppliesImmediately(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	src := prey("Stinger", 1, 1, 1)
	src.Def.Effects = map[card.Trigger][]card.EffectSpec{
		card.TriggerOnPlay: {{Op: OpDamageOpponent, Amount: 2}},
	}
	place(t, st, 0, src)

	sel, err := e.FireTrigger(st, src, card.TriggerOnPlay, 0)
	require.NoError(t, err)
	assert.Nil(t, sel)
	assert.Equal(t, MaxPlayerHP-2, st.Players[1].HP)
}
