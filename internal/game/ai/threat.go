// Package ai plans combat for a computer opponent using only the combat
// state machine's public predicates; it never mutates game state.
package ai

import (
	"sort"

	"github.com/godeaux/predation/internal/game"
	"github.com/godeaux/predation/internal/game/card"
	"github.com/godeaux/predation/internal/game/keywords"
)

// ThreatReport is the outcome of lethal detection against one player.
type ThreatReport struct {
	IsLethal bool
	Damage   int
}

// DetectLethal sums the attack of all opposing creatures legally able to
// attack the given player directly this turn and compares it to the
// player's HP. Summoning sickness and Swift are respected, and a Lure
// creature on the player's own field blocks all face damage.
func DetectLethal(e *game.Engine, st *game.GameState, player int) ThreatReport {
	opp := game.Opponent(player)
	targets := e.ValidTargets(st, player)
	if !targets.Player {
		return ThreatReport{}
	}

	total := 0
	for _, c := range st.FieldCreatures(opp) {
		if !readyToAttack(st, c) {
			continue
		}
		total += keywords.EffectiveAttack(c, st.FieldSlice(opp))
	}
	return ThreatReport{
		IsLethal: total >= st.Players[player].HP,
		Damage:   total,
	}
}

// readyToAttack mirrors the combat machine's attacker eligibility without
// the per-turn has-attacked flag, which resets before the threat matters.
func readyToAttack(st *game.GameState, c *card.Instance) bool {
	if keywords.CantAttackNow(c, st.Turn) {
		return false
	}
	if c.SummonedTurn == st.Turn && !keywords.HasKeyword(c, card.KeywordSwift) {
		return false
	}
	return true
}

// FindMustKillTargets returns the opposing creatures that make next-turn
// lethal possible, ranked by effective attack descending. Nil when the
// opponent cannot reach lethal even with everything alive.
func FindMustKillTargets(e *game.Engine, st *game.GameState, player int) []*card.Instance {
	opp := game.Opponent(player)
	hp := st.Players[player].HP

	var contributors []*card.Instance
	total := 0
	for _, c := range st.FieldCreatures(opp) {
		// Paralysis lasting through the opponent's next turn keeps the
		// creature out of the threat count.
		if c.ParalyzedUntil > st.Turn {
			continue
		}
		if keywords.Has(c, keywords.CantAttack, 0) && !c.Frozen && !c.Webbed {
			continue
		}
		atk := keywords.EffectiveAttack(c, st.FieldSlice(opp))
		if atk <= 0 {
			continue
		}
		contributors = append(contributors, c)
		total += atk
	}
	if total < hp {
		return nil
	}
	sort.Slice(contributors, func(i, j int) bool {
		return keywords.EffectiveAttack(contributors[i], st.FieldSlice(opp)) >
			keywords.EffectiveAttack(contributors[j], st.FieldSlice(opp))
	})
	return contributors
}

// KillSolution describes a set of attackers that can bring down a threat.
type KillSolution struct {
	AttackerCount int
	Attackers     []*card.Instance
	Overkill      int
}

// KillAnalysis is the result of searching attacker combinations against one
// threat.
type KillAnalysis struct {
	CanKill      bool
	BestSolution *KillSolution
}

// AnalyzeKillOptions searches subsets of the player's available attackers,
// in increasing group size, for a combination whose combined attack kills
// the threat. A single-attacker solution is preferred, then the smallest
// group, then the least overkill. Barrier costs the group its weakest hit;
// an Immune threat cannot be killed by combat at all.
func AnalyzeKillOptions(e *game.Engine, st *game.GameState, threat *card.Instance, player int) KillAnalysis {
	opp := game.Opponent(player)
	if keywords.HasKeyword(threat, card.KeywordImmune) {
		return KillAnalysis{}
	}
	targets := e.ValidTargets(st, opp)
	legal := false
	for _, c := range targets.Creatures {
		if c == threat {
			legal = true
			break
		}
	}
	if !legal {
		return KillAnalysis{}
	}

	var attackers []*card.Instance
	for _, c := range st.FieldCreatures(player) {
		if e.CanAttack(st, c) {
			attackers = append(attackers, c)
		}
	}
	if len(attackers) == 0 {
		return KillAnalysis{}
	}

	field := st.FieldSlice(player)
	needed := threat.CurrentHP

	for size := 1; size <= len(attackers); size++ {
		var best *KillSolution
		combinations(attackers, size, func(group []*card.Instance) {
			dealt, kills := groupDamage(st, group, field, threat)
			if !kills || dealt < 0 {
				return
			}
			overkill := dealt - needed
			if overkill < 0 {
				overkill = 0
			}
			if best == nil || overkill < best.Overkill {
				chosen := make([]*card.Instance, len(group))
				copy(chosen, group)
				best = &KillSolution{AttackerCount: size, Attackers: chosen, Overkill: overkill}
			}
		})
		if best != nil {
			return KillAnalysis{CanKill: true, BestSolution: best}
		}
	}
	return KillAnalysis{}
}

// groupDamage computes the damage a group lands on the threat and whether
// it is lethal, accounting for Barrier (the weakest hit is sacrificed to
// pop it) and Venomous (any landed hit kills).
func groupDamage(st *game.GameState, group []*card.Instance, field []*card.Instance, threat *card.Instance) (dealt int, kills bool) {
	hits := len(group)
	sum := 0
	minHit := 0
	venomous := false
	for i, a := range group {
		atk := keywords.EffectiveAttack(a, field)
		sum += atk
		if i == 0 || atk < minHit {
			minHit = atk
		}
		if keywords.HasKeyword(a, card.KeywordVenomous) && atk > 0 {
			venomous = true
		}
	}
	if threat.HasBarrier {
		if hits < 2 {
			return 0, false
		}
		sum -= minHit
	}
	if venomous && sum > 0 {
		return sum, true
	}
	return sum, sum >= threat.CurrentHP
}

// combinations calls fn for every subset of the given size.
func combinations(items []*card.Instance, size int, fn func([]*card.Instance)) {
	group := make([]*card.Instance, 0, size)
	var walk func(start int)
	walk = func(start int) {
		if len(group) == size {
			fn(group)
			return
		}
		for i := start; i <= len(items)-(size-len(group)); i++ {
			group = append(group, items[i])
			walk(i + 1)
			group = group[:len(group)-1]
		}
	}
	walk(0)
}

// SurvivalReport composes lethal detection and kill-option search into a
// single verdict.
type SurvivalReport struct {
	InDanger  bool
	Threats   []*card.Instance
	TopThreat *card.Instance
	KillPlan  KillAnalysis
}

// AnalyzeSurvivalOptions reports whether the player dies to the board next
// turn and, if so, how the top threat could be removed.
func AnalyzeSurvivalOptions(e *game.Engine, st *game.GameState, player int) SurvivalReport {
	threats := FindMustKillTargets(e, st, player)
	if len(threats) == 0 {
		return SurvivalReport{}
	}
	top := threats[0]
	return SurvivalReport{
		InDanger:  true,
		Threats:   threats,
		TopThreat: top,
		KillPlan:  AnalyzeKillOptions(e, st, top, player),
	}
}
