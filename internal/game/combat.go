package game

import (
	"fmt"

	"github.com/godeaux/predation/internal/game/card"
	"github.com/godeaux/predation/internal/game/keywords"
)

// TargetSet is the legal attack targets against one side: the creatures
// that may be struck and whether the player may be attacked directly.
type TargetSet struct {
	Creatures []*card.Instance
	Player    bool
}

// ValidTargets computes the legal targets on the defending side. Hidden
// creatures are excluded before anything else, so a concealed Lure creature
// forces nothing. If any visible creature has an active Lure, attacks are
// restricted to exactly the Lure creatures and the player cannot be
// attacked, regardless of the attacker's own abilities.
func (e *Engine) ValidTargets(st *GameState, defender int) TargetSet {
	var visible []*card.Instance
	for _, c := range st.FieldCreatures(defender) {
		if keywords.CantBeTargetedNow(c) {
			continue
		}
		visible = append(visible, c)
	}

	var lures []*card.Instance
	for _, c := range visible {
		if keywords.HasKeyword(c, card.KeywordLure) {
			lures = append(lures, c)
		}
	}
	if len(lures) > 0 {
		return TargetSet{Creatures: lures, Player: false}
	}
	return TargetSet{Creatures: visible, Player: true}
}

// CanAttack reports whether a creature is currently able to declare an
// attack: it has not attacked this turn, no cannot-attack primitive is
// active, and it is past summoning sickness unless Swift.
func (e *Engine) CanAttack(st *GameState, inst *card.Instance) bool {
	if inst.HasAttacked {
		return false
	}
	if keywords.CantAttackNow(inst, st.Turn) {
		return false
	}
	if inst.SummonedTurn == st.Turn && !keywords.HasKeyword(inst, card.KeywordSwift) {
		return false
	}
	return true
}

// ResolveAttack resolves one attack from attacker to target (nil target
// means the defending player). The machine runs target-selection, an
// optional pre-combat trigger, the simultaneous damage exchange with its
// keyword interactions, and post-combat cleanup.
//
// A selection returned from the pre-combat trigger suspends the attack; the
// caller resolves the choice and calls ResolveAttack again, and the
// per-attack flag guarantees the pre-combat ability does not fire twice.
func (e *Engine) ResolveAttack(st *GameState, attacker *card.Instance, target *card.Instance) (*Selection, error) {
	owner, _, ok := st.CreatureOwner(attacker)
	if !ok {
		st.LogMessage("That creature is not on the field.")
		return nil, nil
	}
	if !e.CanAttack(st, attacker) {
		st.LogMessage(fmt.Sprintf("%s cannot attack right now.", attacker.Def.Name))
		return nil, nil
	}

	defender := Opponent(owner)
	targets := e.ValidTargets(st, defender)
	if target == nil {
		if !targets.Player {
			st.LogMessage("The player cannot be attacked while a Lure creature defends.")
			return nil, nil
		}
	} else {
		legal := false
		for _, c := range targets.Creatures {
			if c == target {
				legal = true
				break
			}
		}
		if !legal {
			st.LogMessage(fmt.Sprintf("%s is not a legal target.", target.Def.Name))
			return nil, nil
		}
	}

	// Pre-combat: exactly one resolution per attack. The flag survives a
	// suspension so a retried attack does not re-trigger the ability.
	if !attacker.PreCombatFired && len(attacker.EffectSpecs(card.TriggerOnBeforeCombat)) > 0 && !keywords.Suppressed(attacker) {
		attacker.PreCombatFired = true
		sel, err := e.FireTrigger(st, attacker, card.TriggerOnBeforeCombat, owner)
		if err != nil {
			return nil, err
		}
		if sel != nil {
			return sel, nil
		}
		// The pre-combat resolution may have removed the defender; then the
		// attack ends with no counter-damage.
		if target != nil {
			if _, _, onField := st.CreatureOwner(target); !onField {
				e.finishAttack(st, attacker)
				return nil, nil
			}
		}
	}

	e.publish(st, NewEvent(EventAttack, attacker.ID, targetID(target, st.Players[defender].Name), 0))

	// A defender's attack-condition traps spring before damage. A trap may
	// remove the attacker or the target, either of which ends the attack.
	trapSel, err := e.springTraps(st, EventAttack, owner)
	if err != nil {
		return nil, err
	}
	if trapSel != nil {
		return trapSel, nil
	}
	if _, _, alive := st.CreatureOwner(attacker); !alive {
		return nil, nil
	}
	if target != nil {
		if _, _, alive := st.CreatureOwner(target); !alive {
			e.finishAttack(st, attacker)
			return nil, nil
		}
	}

	if target == nil {
		dmg := keywords.EffectiveAttack(attacker, st.FieldSlice(owner))
		st.Players[defender].HP -= dmg
		e.publish(st, NewEvent(EventDamage, attacker.ID, st.Players[defender].Name, dmg))
		st.LogMessage(fmt.Sprintf("%s attacks %s for %d.", attacker.Def.Name, st.Players[defender].Name, dmg))
		// Face damage springs the defender's damage-condition traps.
		trapSel, err := e.springTraps(st, EventDamage, owner)
		if err != nil {
			return nil, err
		}
		sel, err := e.afterCombat(st, attacker, owner)
		if err != nil {
			return nil, err
		}
		return st.queueSelection(trapSel, sel), nil
	}

	// Damage exchange is simultaneous: both effective attacks are computed
	// before either hit is applied.
	atkPow := keywords.EffectiveAttack(attacker, st.FieldSlice(owner))
	defPow := keywords.EffectiveAttack(target, st.FieldSlice(defender))
	dmgToTarget := max(0, atkPow-keywords.Magnitude(target, card.KeywordHide))
	dmgToAttacker := max(0, defPow-keywords.Magnitude(attacker, card.KeywordHide))

	st.LogMessage(fmt.Sprintf("%s attacks %s.", attacker.Def.Name, target.Def.Name))

	landed := e.combatHit(st, target, dmgToTarget)
	if landed && keywords.HasKeyword(attacker, card.KeywordVenomous) {
		target.CurrentHP = 0
		st.LogMessage(fmt.Sprintf("%s's venom overwhelms %s.", attacker.Def.Name, target.Def.Name))
	}
	if keywords.HasKeyword(attacker, card.KeywordNeurotoxic) {
		target.ParalyzedUntil = st.Turn + 1
		e.publish(st, NewEvent(EventParalyzed, attacker.ID, target.ID, 0))
	}

	// Ambush attackers strike without retaliation: no counter-damage, no
	// defender venom or paralysis, and no reactive on-defend trigger. This
	// is enforced here rather than left to callers.
	var defendSel *Selection
	if !keywords.HasKeyword(attacker, card.KeywordAmbush) {
		counterLanded := e.combatHit(st, attacker, dmgToAttacker)
		if counterLanded && keywords.HasKeyword(target, card.KeywordVenomous) {
			attacker.CurrentHP = 0
			st.LogMessage(fmt.Sprintf("%s's venom overwhelms %s.", target.Def.Name, attacker.Def.Name))
		}
		if keywords.HasKeyword(target, card.KeywordNeurotoxic) {
			attacker.ParalyzedUntil = st.Turn + 1
			e.publish(st, NewEvent(EventParalyzed, target.ID, attacker.ID, 0))
		}
		if target.CurrentHP > 0 {
			res, sel := e.ResolveCardEffect(st, target, card.TriggerOnDefend, defender)
			defendSel = sel
			for _, mu := range res {
				if _, err := e.applyOne(st, mu); err != nil {
					return nil, err
				}
			}
		}
	}

	sel, err := e.afterCombat(st, attacker, owner)
	if err != nil {
		return nil, err
	}
	return st.queueSelection(defendSel, sel), nil
}

// combatHit applies one combat hit and reports whether damage actually
// landed (not zero, not blocked by Immune, not absorbed by Barrier).
func (e *Engine) combatHit(st *GameState, dst *card.Instance, amount int) bool {
	if amount <= 0 {
		return false
	}
	if keywords.HasKeyword(dst, card.KeywordImmune) {
		st.LogMessage(fmt.Sprintf("%s is immune.", dst.Def.Name))
		return false
	}
	if dst.HasBarrier {
		dst.HasBarrier = false
		e.publish(st, NewEvent(EventBarrierPop, "", dst.ID, amount))
		st.LogMessage(fmt.Sprintf("%s's barrier absorbs the hit.", dst.Def.Name))
		return false
	}
	dst.CurrentHP -= amount
	if keywords.LosesStatusOnDamageNow(dst) {
		dst.Webbed = false
	}
	e.publish(st, NewEvent(EventDamage, "", dst.ID, amount))
	return true
}

// afterCombat runs post-combat cleanup: dead creatures leave their slots
// (unbinding any field spell), the attacker is marked as having attacked,
// and its after-combat trigger fires if it survived.
func (e *Engine) afterCombat(st *GameState, attacker *card.Instance, owner int) (*Selection, error) {
	sel, err := e.reap(st)
	if err != nil {
		return nil, err
	}
	e.finishAttack(st, attacker)

	if _, _, alive := st.CreatureOwner(attacker); alive {
		afterSel, err := e.FireTrigger(st, attacker, card.TriggerOnAfterCombat, owner)
		if err != nil {
			return nil, err
		}
		sel = st.queueSelection(sel, afterSel)
	}
	return sel, nil
}

func (e *Engine) finishAttack(st *GameState, attacker *card.Instance) {
	attacker.HasAttacked = true
	attacker.PreCombatFired = false
}

func targetID(target *card.Instance, playerName string) string {
	if target == nil {
		return playerName
	}
	return target.ID
}
