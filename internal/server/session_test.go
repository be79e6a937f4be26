package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/godeaux/predation/internal/game"
	"github.com/godeaux/predation/internal/game/card"
)

// newTestSession builds a started two-player session with no live
// connections; handle() tolerates absent conns, so the dispatch logic can
// be exercised directly.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	logger := zaptest.NewLogger(t)
	reg := card.NewRegistry(logger)
	s := NewSession("test", game.NewEngine(reg, logger), nil, logger)
	s.state = game.NewGameState("A", "B")
	s.started = true
	return s
}

func fieldCreature(st *game.GameState, player int, name string, cat card.Category, atk, hp int) *card.Instance {
	def := &card.Definition{ID: name, Name: name, Category: cat, Attack: atk, Health: hp}
	inst := card.NewInstance(def, 0)
	for i := range st.Players[player].Field {
		if st.Players[player].Field[i] == nil {
			st.Players[player].Field[i] = inst
			break
		}
	}
	return inst
}

func TestAttackWithOpponentCreatureIsRefused(t *testing.T) {
	s := newTestSession(t)
	theirs := fieldCreature(s.state, 1, "Wolf", card.CategoryPredator, 3, 3)

	s.handle(0, ClientMessage{Type: "attack", AttackerID: theirs.ID})

	assert.False(t, theirs.HasAttacked)
	assert.Equal(t, game.MaxPlayerHP, s.state.Players[0].HP)
}

func TestAttackOutOfTurnIsRefused(t *testing.T) {
	s := newTestSession(t)
	mine := fieldCreature(s.state, 1, "Wolf", card.CategoryPredator, 3, 3)

	s.handle(1, ClientMessage{Type: "attack", AttackerID: mine.ID})

	assert.False(t, mine.HasAttacked)
	assert.Equal(t, game.MaxPlayerHP, s.state.Players[0].HP)
}

func TestResumeByNonControllerIsRefused(t *testing.T) {
	s := newTestSession(t)
	first := fieldCreature(s.state, 1, "First Frog", card.CategoryPrey, 1, 5)
	s.pending = &game.Selection{
		Op:         game.OpDamageTarget,
		Spec:       card.EffectSpec{Op: game.OpDamageTarget, Amount: 2},
		Controller: 0,
		Candidates: []game.CreatureRef{{ID: first.ID, Name: first.Def.Name, Owner: 1}},
	}

	s.handle(1, ClientMessage{Type: "select", TargetID: first.ID})

	assert.NotNil(t, s.pending, "the choice stays with its controller")
	assert.Equal(t, 5, first.CurrentHP)
}

func TestEndTurnByInactiveSeatIsRefused(t *testing.T) {
	s := newTestSession(t)

	s.handle(1, ClientMessage{Type: "endTurn"})

	assert.Equal(t, 1, s.state.Turn)
	assert.Equal(t, 0, s.state.ActivePlayer)
}

func TestEndTurnWaitsForEndTriggerChoice(t *testing.T) {
	s := newTestSession(t)
	archer := fieldCreature(s.state, 0, "Quill Back", card.CategoryPrey, 1, 1)
	archer.Def.Effects = map[card.Trigger][]card.EffectSpec{
		card.TriggerOnEnd: {{Op: game.OpDamageTarget, Amount: 1}},
	}
	first := fieldCreature(s.state, 1, "First Frog", card.CategoryPrey, 1, 5)
	fieldCreature(s.state, 1, "Second Frog", card.CategoryPrey, 1, 5)

	s.handle(0, ClientMessage{Type: "endTurn"})
	require.NotNil(t, s.pending)
	assert.Equal(t, 1, s.state.Turn, "the next turn must wait for the choice")

	s.handle(0, ClientMessage{Type: "select", TargetID: first.ID})
	assert.Nil(t, s.pending)
	assert.Equal(t, 4, first.CurrentHP)
	assert.Equal(t, 2, s.state.Turn)
	assert.Equal(t, 1, s.state.ActivePlayer)
}

func TestEndTurnWithoutChoicesRollsOverImmediately(t *testing.T) {
	s := newTestSession(t)

	s.handle(0, ClientMessage{Type: "endTurn"})

	assert.Equal(t, 2, s.state.Turn)
	assert.Equal(t, 1, s.state.ActivePlayer)
}
