package ai

import (
	"github.com/godeaux/predation/internal/game"
	"github.com/godeaux/predation/internal/game/card"
	"github.com/godeaux/predation/internal/game/keywords"
)

// Reasons annotate why the planner chose a target. Survival-mode decisions
// are distinguished from ordinary value-maximizing ones.
const (
	ReasonSurvivalKill   = "survival-kill"
	ReasonSurvivalSoften = "survival-soften"
	ReasonLethal         = "lethal"
	ReasonTrade          = "trade"
	ReasonFace           = "face"
	ReasonForced         = "forced"
)

// PlannedAttack is one attacker-to-target assignment. A nil Target means
// the defending player's face.
type PlannedAttack struct {
	Attacker *card.Instance
	Target   *card.Instance
	Reason   string
}

// PlanCombatPhase assigns every available attacker for one combat phase.
// When the player is in danger, attackers are coordinated onto the lethal
// threat before any face damage is considered: a kill if a combination
// exists, otherwise the heaviest available hit to soften it.
func PlanCombatPhase(e *game.Engine, st *game.GameState, player int) []PlannedAttack {
	var available []*card.Instance
	for _, c := range st.FieldCreatures(player) {
		if e.CanAttack(st, c) {
			available = append(available, c)
		}
	}
	if len(available) == 0 {
		return nil
	}

	var plan []PlannedAttack
	assigned := make(map[*card.Instance]bool)

	survival := AnalyzeSurvivalOptions(e, st, player)
	if survival.InDanger {
		if survival.KillPlan.CanKill {
			for _, a := range survival.KillPlan.BestSolution.Attackers {
				plan = append(plan, PlannedAttack{Attacker: a, Target: survival.TopThreat, Reason: ReasonSurvivalKill})
				assigned[a] = true
			}
		} else if canStrike(e, st, player, survival.TopThreat) {
			// No combination kills it; soften it with the heaviest hit.
			heaviest := heaviestAttacker(st, player, available)
			plan = append(plan, PlannedAttack{Attacker: heaviest, Target: survival.TopThreat, Reason: ReasonSurvivalSoften})
			assigned[heaviest] = true
		}
	}

	for _, a := range available {
		if assigned[a] {
			continue
		}
		plan = append(plan, FindBestTarget(e, st, a, player))
	}
	return plan
}

// FindBestTarget picks a target for a single attacker: immediate lethal
// face damage first, then favorable creature trades, then face damage,
// then the least-bad forced target.
func FindBestTarget(e *game.Engine, st *game.GameState, attacker *card.Instance, player int) PlannedAttack {
	opp := game.Opponent(player)
	targets := e.ValidTargets(st, opp)
	atk := keywords.EffectiveAttack(attacker, st.FieldSlice(player))

	if targets.Player && atk >= st.Players[opp].HP {
		return PlannedAttack{Attacker: attacker, Reason: ReasonLethal}
	}

	// A favorable trade kills the defender without losing the attacker:
	// either the counter-hit cannot kill us, or there is no counter-hit.
	for _, t := range targets.Creatures {
		if keywords.HasKeyword(t, card.KeywordImmune) || t.HasBarrier {
			continue
		}
		kills := atk >= t.CurrentHP || (keywords.HasKeyword(attacker, card.KeywordVenomous) && atk > 0)
		if !kills {
			continue
		}
		counter := keywords.EffectiveAttack(t, st.FieldSlice(opp))
		survives := keywords.HasKeyword(attacker, card.KeywordAmbush) ||
			attacker.HasBarrier ||
			keywords.HasKeyword(attacker, card.KeywordImmune) ||
			counter < attacker.CurrentHP
		if survives {
			return PlannedAttack{Attacker: attacker, Target: t, Reason: ReasonTrade}
		}
	}

	if targets.Player {
		return PlannedAttack{Attacker: attacker, Reason: ReasonFace}
	}

	// Lure forces a creature target; pick the one we hurt most relative to
	// the counter-damage we take.
	var forced *card.Instance
	for _, t := range targets.Creatures {
		if forced == nil || t.CurrentHP < forced.CurrentHP {
			forced = t
		}
	}
	return PlannedAttack{Attacker: attacker, Target: forced, Reason: ReasonForced}
}

func canStrike(e *game.Engine, st *game.GameState, player int, threat *card.Instance) bool {
	for _, t := range e.ValidTargets(st, game.Opponent(player)).Creatures {
		if t == threat {
			return true
		}
	}
	return false
}

func heaviestAttacker(st *game.GameState, player int, available []*card.Instance) *card.Instance {
	best := available[0]
	field := st.FieldSlice(player)
	for _, a := range available[1:] {
		if keywords.EffectiveAttack(a, field) > keywords.EffectiveAttack(best, field) {
			best = a
		}
	}
	return best
}
