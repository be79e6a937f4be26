package game

import (
	"fmt"
	"strings"

	"github.com/godeaux/predation/internal/game/card"
	"github.com/godeaux/predation/internal/game/keywords"
)

// ConsumeRequest describes one predator absorbing prey from the field and
// carrion from a pile.
type ConsumeRequest struct {
	Predator    *card.Instance
	Prey        []*card.Instance // field prey, relocated to carrion
	Carrion     []*card.Instance // carrion prey, removed outright
	PlayerIndex int
}

// nutrition returns the stat value a consumed card contributes. An Edible
// predator used as prey contributes its current attack instead of a
// nutrition stat; a predator without Edible nourishes nothing.
func nutrition(c *card.Instance) int {
	if c.Def.Category == card.CategoryPredator {
		if keywords.HasKeyword(c, card.KeywordEdible) {
			return c.CurrentAtk
		}
		return 0
	}
	return c.Def.Nutrition
}

// ConsumePrey resolves a predator eating. The summed nutrition of all prey
// is added to the predator's current attack and health, field prey move to
// their owner's carrion pile, and carrion prey are removed from the pile
// without relocation. Consumption is not death: no onSlain trigger fires
// for any consumed creature. With nothing to consume the call is a no-op.
func (e *Engine) ConsumePrey(st *GameState, req ConsumeRequest) {
	if len(req.Prey) == 0 && len(req.Carrion) == 0 {
		return
	}

	total := 0
	names := make([]string, 0, len(req.Prey)+len(req.Carrion))

	for _, prey := range req.Prey {
		total += nutrition(prey)
		names = append(names, prey.Def.Name)

		owner, _, ok := st.CreatureOwner(prey)
		if !ok {
			continue
		}
		st.RemoveFromField(prey)
		st.Players[owner].Carrion = append(st.Players[owner].Carrion, prey)
		e.publish(st, NewEvent(EventConsumed, req.Predator.ID, prey.ID, nutrition(prey)))
	}

	for _, prey := range req.Carrion {
		total += nutrition(prey)
		names = append(names, prey.Def.Name)
		pile := st.Players[req.PlayerIndex].Carrion
		for i, c := range pile {
			if c == prey {
				st.Players[req.PlayerIndex].Carrion = append(pile[:i], pile[i+1:]...)
				break
			}
		}
	}

	req.Predator.CurrentAtk += total
	req.Predator.CurrentHP += total

	st.LogMessage(fmt.Sprintf("%s consumes %s (+%d/+%d).",
		req.Predator.Def.Name, strings.Join(names, ", "), total, total))
}
