package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godeaux/predation/internal/game/card"
)

func TestFaceAttackDealsEffectiveAttack(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	wolf := predator("Wolf", 3, 3)
	place(t, st, 0, wolf)

	sel, err := e.ResolveAttack(st, wolf, nil)
	require.NoError(t, err)
	assert.Nil(t, sel)
	assert.Equal(t, MaxPlayerHP-3, st.Players[1].HP)
	assert.True(t, wolf.HasAttacked)
}

func TestSimultaneousExchangeBothSidesHit(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	wolf := predator("Wolf", 3, 4)
	bear := predator("Bear", 2, 5)
	place(t, st, 0, wolf)
	place(t, st, 1, bear)

	_, err := e.ResolveAttack(st, wolf, bear)
	require.NoError(t, err)
	assert.Equal(t, 2, bear.CurrentHP)
	assert.Equal(t, 2, wolf.CurrentHP)
}

func TestMutualDestructionBothReachCarrion(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	wolf := predator("Wolf", 3, 2)
	bear := predator("Bear", 2, 3)
	place(t, st, 0, wolf)
	place(t, st, 1, bear)

	_, err := e.ResolveAttack(st, wolf, bear)
	require.NoError(t, err)
	assert.Nil(t, st.Players[0].Field[0])
	assert.Nil(t, st.Players[1].Field[0])
	assert.Len(t, st.Players[0].Carrion, 1)
	assert.Len(t, st.Players[1].Carrion, 1)
}

func TestCreatureCannotAttackTwice(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	wolf := predator("Wolf", 3, 3)
	place(t, st, 0, wolf)

	_, err := e.ResolveAttack(st, wolf, nil)
	require.NoError(t, err)
	_, err = e.ResolveAttack(st, wolf, nil)
	require.NoError(t, err)
	assert.Equal(t, MaxPlayerHP-3, st.Players[1].HP, "second attack must be refused")
	assert.True(t, logContains(st, "cannot attack right now"))
}

func TestSummoningSicknessBlocksAttackUnlessSwift(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	st.Turn = 2
	slow := predator("Slowpoke", 2, 2)
	slow.SummonedTurn = 2
	quick := predator("Osprey", 3, 2, card.KeywordSwift)
	quick.SummonedTurn = 2
	place(t, st, 0, slow)
	place(t, st, 0, quick)

	assert.False(t, e.CanAttack(st, slow))
	assert.True(t, e.CanAttack(st, quick))
}

func TestFrozenAndWebbedCreaturesCannotAttack(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	frozen := predator("Frosty", 2, 2)
	frozen.Frozen = true
	webbed := predator("Stuck", 2, 2)
	webbed.Webbed = true
	place(t, st, 0, frozen)
	place(t, st, 0, webbed)

	assert.False(t, e.CanAttack(st, frozen))
	assert.False(t, e.CanAttack(st, webbed))
}

func TestSessileCreatureCannotAttack(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	barnacle := prey("Barnacle", 1, 4, 1, card.KeywordSessile)
	place(t, st, 0, barnacle)

	assert.False(t, e.CanAttack(st, barnacle))
}

func TestAttackFromOffField(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	ghost := predator("Ghost", 3, 3)

	sel, err := e.ResolveAttack(st, ghost, nil)
	require.NoError(t, err)
	assert.Nil(t, sel)
	assert.Equal(t, MaxPlayerHP, st.Players[1].HP)
}

func TestAfterCombatTriggerFiresOnlyIfAttackerSurvives(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	st.Players[0].Deck = []*card.Instance{prey("Reward", 1, 1, 1)}

	vulture := predator("Vulture", 2, 2)
	vulture.Def.Effects = map[card.Trigger][]card.EffectSpec{
		card.TriggerOnAfterCombat: {{Op: OpDrawCards, Amount: 1}},
	}
	place(t, st, 0, vulture)

	// Survives a face attack: the trigger fires.
	_, err := e.ResolveAttack(st, vulture, nil)
	require.NoError(t, err)
	assert.Len(t, st.Players[0].Hand, 1)

	// A copy that dies in the exchange draws nothing.
	st2 := NewGameState("A", "B")
	st2.Players[0].Deck = []*card.Instance{prey("Reward", 1, 1, 1)}
	vulture2 := predator("Vulture", 2, 2)
	vulture2.Def.Effects = vulture.Def.Effects
	killer := predator("Bear", 5, 9)
	place(t, st2, 0, vulture2)
	place(t, st2, 1, killer)

	_, err = e.ResolveAttack(st2, vulture2, killer)
	require.NoError(t, err)
	assert.Empty(t, st2.Players[0].Hand)
}

func TestPackBonusAppliesInCombatWithoutMutatingStats(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewGameState("A", "B")
	alpha := predator("Alpha", 3, 3, card.KeywordPack)
	alpha.Def.Tribe = "Mammal"
	beta := predator("Beta", 2, 2, card.KeywordPack)
	beta.Def.Tribe = "Mammal"
	place(t, st, 0, alpha)
	place(t, st, 0, beta)

	_, err := e.ResolveAttack(st, alpha, nil)
	require.NoError(t, err)
	assert.Equal(t, MaxPlayerHP-4, st.Players[1].HP)
	assert.Equal(t, 3, alpha.CurrentAtk, "pack bonus must not touch current attack")
}
