package game

import (
	"fmt"

	"github.com/godeaux/predation/internal/game/card"
)

// trapConditions maps a trap's declared condition to the event kind that
// springs it.
var trapConditions = map[string]EventKind{
	"enemyAttacks":   EventAttack,
	"enemyPlaysCard": EventCardPlayed,
	"enemySummons":   EventSummon,
	"playerDamaged":  EventDamage,
}

// springTraps fires every set trap of the non-acting player whose condition
// matches the event kind. A sprung trap is revealed, moved to its owner's
// carrion pile, and its effect resolved with the trap owner as controller.
// Trap effects that need a choice suspend like any other effect.
//
// Each trap leaves the trap row before its effect resolves; a trap effect
// that damages a player may spring that player's damage traps in turn, and
// an already-sprung trap must never refire.
func (e *Engine) springTraps(st *GameState, kind EventKind, actor int) (*Selection, error) {
	owner := Opponent(actor)
	p := st.Players[owner]

	var pending *Selection
	for {
		trap := e.takeMatchingTrap(p, kind)
		if trap == nil {
			return pending, nil
		}
		st.LogMessage(fmt.Sprintf("%s's trap is sprung: %s!", p.Name, trap.Def.Name))
		e.publish(st, NewEvent(EventTrapSprung, p.Name, trap.ID, 0))
		p.Carrion = append(p.Carrion, trap)

		sel, err := e.FireTrigger(st, trap, card.TriggerOnPlay, owner)
		if err != nil {
			return nil, err
		}
		pending = st.queueSelection(pending, sel)
	}
}

// takeMatchingTrap removes and returns the oldest set trap whose condition
// matches the event kind, or nil.
func (e *Engine) takeMatchingTrap(p *Player, kind EventKind) *card.Instance {
	for i, trap := range p.Traps {
		if trapConditions[trap.Def.TrapCondition] == kind {
			p.Traps = append(p.Traps[:i], p.Traps[i+1:]...)
			return trap
		}
	}
	return nil
}
