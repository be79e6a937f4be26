package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/godeaux/predation/internal/game/card"
	"github.com/godeaux/predation/internal/game/keywords"
)

// Apply resolves every mutation in the result against the game state, then
// removes any creatures left at or below zero health. A nil or empty result
// is a no-op. The only errors are data-integrity failures (unknown token
// IDs); illegal or inert mutations resolve to logged no-ops.
//
// Death triggers fired during cleanup may themselves need a choice; the
// first such selection is returned and any further ones are parked on the
// state's pending queue so no choice is ever dropped.
func (e *Engine) Apply(st *GameState, result Result) (*Selection, error) {
	if len(result) == 0 {
		return nil, nil
	}
	var pending *Selection
	for _, m := range result {
		sel, err := e.applyOne(st, m)
		if err != nil {
			return nil, err
		}
		pending = st.queueSelection(pending, sel)
	}
	sel, err := e.reap(st)
	if err != nil {
		return nil, err
	}
	return st.queueSelection(pending, sel), nil
}

func (e *Engine) applyOne(st *GameState, m Mutation) (*Selection, error) {
	switch mut := m.(type) {
	case HealPlayer:
		p := st.Players[mut.Player]
		if mut.Amount <= 0 {
			return nil, nil
		}
		before := p.HP
		p.HP += mut.Amount
		if p.HP > MaxPlayerHP {
			p.HP = MaxPlayerHP
		}
		if p.HP != before {
			e.publish(st, NewEvent(EventHeal, p.Name, p.Name, p.HP-before))
			st.LogMessage(fmt.Sprintf("%s heals %d HP.", p.Name, p.HP-before))
		}

	case DamagePlayer:
		p := st.Players[mut.Player]
		p.HP -= mut.Amount
		e.publish(st, NewEvent(EventDamage, "", p.Name, mut.Amount))
		st.LogMessage(fmt.Sprintf("%s takes %d damage.", p.Name, mut.Amount))
		// The damaged player's own damage-condition traps spring. A sprung
		// trap has already left the trap row, so this cannot recurse into
		// the same trap.
		return e.springTraps(st, EventDamage, Opponent(mut.Player))

	case DamageCreature:
		e.damageCreature(st, mut.Target, mut.Amount)

	case KillCreature:
		mut.Target.CurrentHP = 0
		st.LogMessage(fmt.Sprintf("%s is slain outright.", mut.Target.Def.Name))

	case BuffCreature:
		mut.Target.CurrentAtk += mut.Attack
		mut.Target.CurrentHP += mut.Health

	case GrantKeyword:
		if mut.Keyword == card.KeywordBarrier {
			mut.Target.HasBarrier = true
		}
		if !mut.Target.HasKeywordRaw(mut.Keyword) {
			mut.Target.Keywords = append(mut.Target.Keywords, mut.Keyword)
		}

	case RemoveKeyword:
		kept := mut.Target.Keywords[:0]
		for _, k := range mut.Target.Keywords {
			if k != mut.Keyword {
				kept = append(kept, k)
			}
		}
		mut.Target.Keywords = kept
		if mut.Keyword == card.KeywordBarrier {
			mut.Target.HasBarrier = false
		}

	case ApplyStatus:
		switch mut.Status {
		case StatusFrozen:
			mut.Target.Frozen = true
		case StatusWebbed:
			mut.Target.Webbed = true
		case StatusParalyzed:
			mut.Target.ParalyzedUntil = mut.Until
			e.publish(st, NewEvent(EventParalyzed, "", mut.Target.ID, 0))
		}

	case DrawCards:
		e.draw(st, mut.Player, mut.Count)

	case ReturnToHand:
		e.returnToHand(st, mut.Target)

	case SummonTokens:
		return e.summonTokens(st, mut.Player, mut.TokenIDs)

	case MoveToCarrion:
		owner, _, ok := st.CreatureOwner(mut.Target)
		if !ok {
			return nil, nil
		}
		st.RemoveFromField(mut.Target)
		st.Players[owner].Carrion = append(st.Players[owner].Carrion, mut.Target)

	case RecoverFromCarrion:
		p := st.Players[mut.Player]
		for i, c := range p.Carrion {
			if c == mut.Target {
				p.Carrion = append(p.Carrion[:i], p.Carrion[i+1:]...)
				c.ResetToBase()
				p.Hand = append(p.Hand, c)
				st.LogMessage(fmt.Sprintf("%s recovers %s from the carrion pile.", p.Name, c.Def.Name))
				break
			}
		}

	case CancelAbilities:
		mut.Target.AbilitiesCancelled = true
		st.LogMessage(fmt.Sprintf("%s's abilities are cancelled.", mut.Target.Def.Name))

	default:
		// Closed set; a new Mutation variant must be handled above.
		e.logger.Error("unhandled mutation variant", zap.Any("mutation", m))
	}
	return nil, nil
}

// damageCreature applies non-combat damage: Immune blocks it entirely,
// Barrier absorbs one hit and is cleared, otherwise health drops and
// web-style statuses that break on damage are removed.
func (e *Engine) damageCreature(st *GameState, target *card.Instance, amount int) {
	if amount <= 0 {
		return
	}
	if keywords.HasKeyword(target, card.KeywordImmune) {
		st.LogMessage(fmt.Sprintf("%s is immune.", target.Def.Name))
		return
	}
	if target.HasBarrier {
		target.HasBarrier = false
		e.publish(st, NewEvent(EventBarrierPop, "", target.ID, amount))
		st.LogMessage(fmt.Sprintf("%s's barrier absorbs the hit.", target.Def.Name))
		return
	}
	target.CurrentHP -= amount
	if keywords.LosesStatusOnDamageNow(target) {
		target.Webbed = false
	}
	e.publish(st, NewEvent(EventDamage, "", target.ID, amount))
	st.LogMessage(fmt.Sprintf("%s takes %d damage.", target.Def.Name, amount))
}

// draw moves up to count cards from deck to hand, recording them in the
// recently-drawn list. An empty deck is not an error.
func (e *Engine) draw(st *GameState, player, count int) {
	p := st.Players[player]
	for i := 0; i < count; i++ {
		if len(p.Deck) == 0 {
			st.LogMessage(fmt.Sprintf("%s has no cards left to draw.", p.Name))
			return
		}
		c := p.Deck[0]
		p.Deck = p.Deck[1:]
		p.Hand = append(p.Hand, c)
		st.RecentlyDrawn = append(st.RecentlyDrawn, c)
		e.publish(st, NewEvent(EventCardDrawn, p.Name, c.ID, 1))
	}
}

func (e *Engine) returnToHand(st *GameState, target *card.Instance) {
	owner, _, ok := st.CreatureOwner(target)
	if !ok {
		return
	}
	st.RemoveFromField(target)
	p := st.Players[owner]
	if target.IsToken {
		p.Exile = append(p.Exile, target)
		st.LogMessage(fmt.Sprintf("%s cannot return to hand and is exiled.", target.Def.Name))
		return
	}
	target.ResetToBase()
	p.Hand = append(p.Hand, target)
	st.LogMessage(fmt.Sprintf("%s returns to %s's hand.", target.Def.Name, p.Name))
}

// summonTokens places each requested token into the first empty slot. A
// token with no slot available is silently skipped; tokens already placed
// keep their slots and their onPlay effects still fire.
func (e *Engine) summonTokens(st *GameState, player int, tokenIDs []string) (*Selection, error) {
	var pending *Selection
	for _, id := range tokenIDs {
		def, err := e.registry.Token(id)
		if err != nil {
			return nil, fmt.Errorf("summon token: %w", err)
		}
		slot := st.EmptySlot(player)
		if slot < 0 {
			continue
		}
		inst := card.NewInstance(def, st.Turn)
		st.Players[player].Field[slot] = inst
		e.publish(st, NewEvent(EventSummon, st.Players[player].Name, inst.ID, 0))
		st.LogMessage(fmt.Sprintf("%s summons %s.", st.Players[player].Name, def.Name))

		res, sel := e.ResolveCardEffect(st, inst, card.TriggerOnPlay, player)
		nested, err := e.Apply(st, res)
		if err != nil {
			return nil, err
		}
		pending = st.queueSelection(pending, sel)
		pending = st.queueSelection(pending, nested)

		trapSel, err := e.springTraps(st, EventSummon, player)
		if err != nil {
			return nil, err
		}
		pending = st.queueSelection(pending, trapSel)
	}
	return pending, nil
}

// reap removes creatures at or below zero health, firing their onSlain
// effects. It loops until no further deaths occur, since a death trigger
// may kill other creatures.
func (e *Engine) reap(st *GameState) (*Selection, error) {
	var pending *Selection
	for {
		var dead *card.Instance
		var owner int
		for p := 0; p < 2 && dead == nil; p++ {
			for _, c := range st.Players[p].Field {
				if c != nil && c.CurrentHP <= 0 {
					dead = c
					owner = p
					break
				}
			}
		}
		if dead == nil {
			return pending, nil
		}

		st.RemoveFromField(dead)
		e.publish(st, NewEvent(EventDeath, "", dead.ID, 0))
		st.LogMessage(fmt.Sprintf("%s dies.", dead.Def.Name))
		if !dead.IsToken {
			st.Players[owner].Carrion = append(st.Players[owner].Carrion, dead)
		}

		res, sel := e.ResolveCardEffect(st, dead, card.TriggerOnSlain, owner)
		pending = st.queueSelection(pending, sel)
		for _, m := range res {
			nested, err := e.applyOne(st, m)
			if err != nil {
				return pending, err
			}
			pending = st.queueSelection(pending, nested)
		}
	}
}
