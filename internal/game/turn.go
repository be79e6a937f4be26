package game

import (
	"fmt"

	"github.com/godeaux/predation/internal/game/card"
	"github.com/godeaux/predation/internal/game/keywords"
)

// PlayOptions carries the caller's placement and consumption choices for a
// card play.
type PlayOptions struct {
	// Slot is the requested field slot for creatures; -1 picks the first
	// empty slot.
	Slot int
	// PreyIDs are field creatures a predator consumes on entry.
	PreyIDs []string
	// CarrionIDs are carrion-pile cards a predator consumes on entry.
	CarrionIDs []string
	// BindTo optionally binds a field spell to a creature instance ID.
	BindTo string
}

// PlayCard plays the card at a hand index. Illegal plays (wrong turn, wrong
// phase, per-turn limit, full field, inedible prey) are reported through the
// log and leave state unchanged; they are never errors.
func (e *Engine) PlayCard(st *GameState, player, handIndex int, opts PlayOptions) (*Selection, error) {
	p := st.Players[player]
	if player != st.ActivePlayer {
		st.LogMessage(fmt.Sprintf("It is not %s's turn.", p.Name))
		return nil, nil
	}
	if st.Phase != PhaseMain {
		st.LogMessage("Cards can only be played during the main phase.")
		return nil, nil
	}
	if handIndex < 0 || handIndex >= len(p.Hand) {
		st.LogMessage("No such card in hand.")
		return nil, nil
	}
	inst := p.Hand[handIndex]
	def := inst.Def

	if def.Category != card.CategoryFreeSpell && p.CardsPlayedThisTurn >= CardsPerTurn {
		st.LogMessage(fmt.Sprintf("%s has already played a card this turn.", p.Name))
		return nil, nil
	}

	switch def.Category {
	case card.CategorySpell, card.CategoryFreeSpell:
		return e.playSpell(st, player, handIndex, inst, opts)
	case card.CategoryTrap:
		return nil, e.playTrap(st, player, handIndex, inst)
	case card.CategoryPrey, card.CategoryPredator:
		return e.playCreature(st, player, handIndex, inst, opts)
	default:
		st.LogMessage(fmt.Sprintf("%s cannot be played.", def.Name))
		return nil, nil
	}
}

func (e *Engine) removeFromHand(p *Player, idx int) {
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
}

func (e *Engine) playSpell(st *GameState, player, handIndex int, inst *card.Instance, opts PlayOptions) (*Selection, error) {
	p := st.Players[player]
	e.removeFromHand(p, handIndex)
	if inst.Def.Category != card.CategoryFreeSpell {
		p.CardsPlayedThisTurn++
	}
	st.LogMessage(fmt.Sprintf("%s plays %s.", p.Name, inst.Def.Name))
	e.publish(st, NewEvent(EventCardPlayed, p.Name, inst.ID, 0))

	if inst.Def.FieldSpell {
		p.FieldSpell = inst
		p.FieldSpellBoundTo = opts.BindTo
	}

	sel, err := e.FireTrigger(st, inst, card.TriggerOnPlay, player)
	if err != nil {
		return nil, err
	}
	if !inst.Def.FieldSpell {
		p.Carrion = append(p.Carrion, inst)
	}
	trapSel, err := e.springTraps(st, EventCardPlayed, player)
	if err != nil {
		return nil, err
	}
	return st.queueSelection(sel, trapSel), nil
}

func (e *Engine) playTrap(st *GameState, player, handIndex int, inst *card.Instance) error {
	p := st.Players[player]
	e.removeFromHand(p, handIndex)
	p.CardsPlayedThisTurn++
	p.Traps = append(p.Traps, inst)
	// Trap identity stays hidden; the log only records that something was set.
	st.LogMessage(fmt.Sprintf("%s sets a trap.", p.Name))
	return nil
}

func (e *Engine) playCreature(st *GameState, player, handIndex int, inst *card.Instance, opts PlayOptions) (*Selection, error) {
	p := st.Players[player]

	slot := opts.Slot
	if slot < 0 {
		slot = st.EmptySlot(player)
	}
	if slot < 0 || slot >= FieldSize || p.Field[slot] != nil {
		st.LogMessage("There is no room on the field.")
		return nil, nil
	}

	var prey, carrionPrey []*card.Instance
	if inst.Def.Category == card.CategoryPredator {
		var ok bool
		prey, carrionPrey, ok = e.gatherPrey(st, player, inst, opts)
		if !ok {
			return nil, nil
		}
	}

	e.removeFromHand(p, handIndex)
	p.CardsPlayedThisTurn++
	inst.SummonedTurn = st.Turn
	p.Field[slot] = inst
	st.LogMessage(fmt.Sprintf("%s plays %s.", p.Name, inst.Def.Name))
	e.publish(st, NewEvent(EventCardPlayed, p.Name, inst.ID, 0))

	var consumed bool
	if inst.Def.Category == card.CategoryPredator {
		if len(prey)+len(carrionPrey) == 0 {
			inst.DryDropped = true
			st.LogMessage(fmt.Sprintf("%s enters play hungry; its abilities are dormant.", inst.Def.Name))
		} else {
			e.ConsumePrey(st, ConsumeRequest{
				Predator:    inst,
				Prey:        prey,
				Carrion:     carrionPrey,
				PlayerIndex: player,
			})
			consumed = true
		}
	}

	var pending *Selection
	if consumed {
		sel, err := e.FireTrigger(st, inst, card.TriggerOnConsume, player)
		if err != nil {
			return nil, err
		}
		pending = sel
	}
	sel, err := e.FireTrigger(st, inst, card.TriggerOnPlay, player)
	if err != nil {
		return nil, err
	}
	pending = st.queueSelection(pending, sel)
	trapSel, err := e.springTraps(st, EventCardPlayed, player)
	if err != nil {
		return nil, err
	}
	return st.queueSelection(pending, trapSel), nil
}

// gatherPrey resolves the requested prey IDs against the player's own field
// and carrion pile. A predator that cannot consume, or prey that cannot be
// consumed, makes the whole play an illegal no-op.
func (e *Engine) gatherPrey(st *GameState, player int, predator *card.Instance, opts PlayOptions) (prey, carrionPrey []*card.Instance, ok bool) {
	if len(opts.PreyIDs)+len(opts.CarrionIDs) > 0 && keywords.CantConsumeNow(predator) {
		st.LogMessage(fmt.Sprintf("%s cannot consume.", predator.Def.Name))
		return nil, nil, false
	}
	for _, id := range opts.PreyIDs {
		c, owner, _, found := st.FindCreature(id)
		if !found || owner != player {
			st.LogMessage("That prey is not on your field.")
			return nil, nil, false
		}
		if !keywords.ConsumableAsPrey(c) {
			st.LogMessage(fmt.Sprintf("%s cannot be consumed.", c.Def.Name))
			return nil, nil, false
		}
		prey = append(prey, c)
	}
	for _, id := range opts.CarrionIDs {
		var found *card.Instance
		for _, c := range st.Players[player].Carrion {
			if c.ID == id {
				found = c
				break
			}
		}
		if found == nil {
			st.LogMessage("That card is not in your carrion pile.")
			return nil, nil, false
		}
		if !keywords.ConsumableAsPrey(found) {
			st.LogMessage(fmt.Sprintf("%s cannot be consumed.", found.Def.Name))
			return nil, nil, false
		}
		carrionPrey = append(carrionPrey, found)
	}
	return prey, carrionPrey, true
}

// StartTurn begins a new turn for the given player: paralysis that expired
// is cleared, attack flags reset, one card is drawn, and onStart triggers
// fire for the player's creatures.
func (e *Engine) StartTurn(st *GameState, player int) (*Selection, error) {
	st.Turn++
	st.ActivePlayer = player
	st.Phase = PhaseDraw
	st.RecentlyDrawn = nil
	p := st.Players[player]
	p.CardsPlayedThisTurn = 0

	for side := 0; side < 2; side++ {
		for _, c := range st.FieldCreatures(side) {
			if c.ParalyzedUntil > 0 && c.ParalyzedUntil < st.Turn {
				c.ParalyzedUntil = 0
			}
		}
	}
	for _, c := range st.FieldCreatures(player) {
		c.HasAttacked = false
		c.PreCombatFired = false
	}

	e.draw(st, player, 1)
	e.publish(st, NewEvent(EventTurnStarted, p.Name, "", st.Turn))

	var pending *Selection
	for _, c := range st.FieldCreatures(player) {
		sel, err := e.FireTrigger(st, c, card.TriggerOnStart, player)
		if err != nil {
			return nil, err
		}
		pending = st.queueSelection(pending, sel)
	}
	st.Phase = PhaseMain
	return pending, nil
}

// EndTurn fires onEnd triggers for the active player's creatures and removes
// creatures that die at end of turn.
func (e *Engine) EndTurn(st *GameState) (*Selection, error) {
	player := st.ActivePlayer
	st.Phase = PhaseEnd

	var pending *Selection
	for _, c := range st.FieldCreatures(player) {
		sel, err := e.FireTrigger(st, c, card.TriggerOnEnd, player)
		if err != nil {
			return nil, err
		}
		pending = st.queueSelection(pending, sel)
	}

	var doomed Result
	for _, c := range st.FieldCreatures(player) {
		if keywords.DiesEndOfTurnNow(c) {
			doomed = append(doomed, KillCreature{Target: c})
		}
	}
	sel, err := e.Apply(st, doomed)
	if err != nil {
		return nil, err
	}
	pending = st.queueSelection(pending, sel)

	e.publish(st, NewEvent(EventTurnEnded, st.Players[player].Name, "", st.Turn))
	return pending, nil
}
