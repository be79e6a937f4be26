package game

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/godeaux/predation/internal/game/card"
)

// newTestEngine builds an engine over an empty registry. Tests that summon
// tokens register them through the returned registry first.
func newTestEngine(t *testing.T) (*Engine, *card.Registry) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	reg := card.NewRegistry(logger)
	return NewEngine(reg, logger), reg
}

// creature builds a playable instance with SummonedTurn 0, so it is never
// summoning-sick in a test starting at turn 1.
func creature(name string, cat card.Category, atk, hp int, kws ...string) *card.Instance {
	def := &card.Definition{
		ID:       strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Name:     name,
		Category: cat,
		Attack:   atk,
		Health:   hp,
		Keywords: kws,
	}
	return card.NewInstance(def, 0)
}

func prey(name string, atk, hp, nutrition int, kws ...string) *card.Instance {
	c := creature(name, card.CategoryPrey, atk, hp, kws...)
	c.Def.Nutrition = nutrition
	return c
}

func predator(name string, atk, hp int, kws ...string) *card.Instance {
	return creature(name, card.CategoryPredator, atk, hp, kws...)
}

// place puts a creature into the first empty slot of a player's field.
func place(t *testing.T, st *GameState, player int, c *card.Instance) {
	t.Helper()
	slot := st.EmptySlot(player)
	if slot < 0 {
		t.Fatalf("no empty slot for player %d", player)
	}
	st.Players[player].Field[slot] = c
}

// logContains reports whether any narration line contains the substring.
func logContains(st *GameState, sub string) bool {
	for _, line := range st.Log {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}
