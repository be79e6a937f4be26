// Package keywords canonicalizes named keywords and ad-hoc status flags into
// a small set of behavioral primitives consulted by combat and the AI.
package keywords

import (
	"strconv"
	"strings"

	"github.com/godeaux/predation/internal/game/card"
)

// Primitive is a canonical behavioral tag. Multiple keywords and status
// flags may imply the same primitive.
type Primitive int

const (
	CantAttack Primitive = iota
	CantBeConsumed
	CantConsume
	LosesStatusOnDamage
	CantBeTargeted
	DiesEndOfTurn
)

// keywordPrimitives maps keyword names to the primitives they imply.
// Numeric-suffixed keywords carry a magnitude but map to no primitive.
var keywordPrimitives = map[string][]Primitive{
	card.KeywordSessile:    {CantAttack},
	card.KeywordInedible:   {CantBeConsumed},
	card.KeywordGorged:     {CantConsume},
	card.KeywordCamouflage: {CantBeTargeted},
	card.KeywordEphemeral:  {DiesEndOfTurn},
}

// Suppressed reports whether the creature's keyword-derived abilities are
// inactive. A Predator that entered play without consuming (dry-dropped)
// loses all keyword abilities, as does a creature whose abilities were
// cancelled. Boolean status flags are never suppressed.
func Suppressed(inst *card.Instance) bool {
	if inst.AbilitiesCancelled {
		return true
	}
	return inst.DryDropped && inst.Def.Category == card.CategoryPredator
}

// HasKeyword reports whether the named keyword is currently active on the
// instance, honoring suppression.
func HasKeyword(inst *card.Instance, name string) bool {
	if Suppressed(inst) {
		return false
	}
	return inst.HasKeywordRaw(name)
}

// Magnitude returns the numeric suffix of a stacking keyword ("Hide 2" -> 2),
// or 0 when the keyword is absent, suppressed, or carries no number.
func Magnitude(inst *card.Instance, name string) int {
	if Suppressed(inst) {
		return 0
	}
	for _, k := range inst.Keywords {
		base, rest, found := strings.Cut(k, " ")
		if base != name || !found {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// Has reports whether a primitive is active on the instance at the given
// turn. Status flags are consulted unconditionally; the keyword table only
// when abilities are not suppressed.
func Has(inst *card.Instance, p Primitive, turn int) bool {
	switch p {
	case CantAttack:
		if inst.Frozen || inst.Webbed {
			return true
		}
		if inst.ParalyzedUntil >= turn && inst.ParalyzedUntil > 0 {
			return true
		}
	case LosesStatusOnDamage:
		if inst.Webbed {
			return true
		}
	}
	if Suppressed(inst) {
		return false
	}
	for _, k := range inst.Keywords {
		base, _, _ := strings.Cut(k, " ")
		for _, kp := range keywordPrimitives[base] {
			if kp == p {
				return true
			}
		}
	}
	return false
}

// ActivePrimitives returns the set of primitives currently active on the
// instance.
func ActivePrimitives(inst *card.Instance, turn int) map[Primitive]bool {
	out := make(map[Primitive]bool)
	for _, p := range []Primitive{CantAttack, CantBeConsumed, CantConsume, LosesStatusOnDamage, CantBeTargeted, DiesEndOfTurn} {
		if Has(inst, p, turn) {
			out[p] = true
		}
	}
	return out
}

// ConsumableAsPrey reports whether a card may be consumed by a predator.
// Prey are consumable unless something forbids it; a predator additionally
// needs an active Edible keyword to be eaten at all.
func ConsumableAsPrey(inst *card.Instance) bool {
	if CantBeConsumedNow(inst) {
		return false
	}
	if inst.Def.Category == card.CategoryPredator {
		return HasKeyword(inst, card.KeywordEdible)
	}
	return true
}

// Named convenience queries.

func CantAttackNow(inst *card.Instance, turn int) bool { return Has(inst, CantAttack, turn) }
func CantBeConsumedNow(inst *card.Instance) bool       { return Has(inst, CantBeConsumed, 0) }
func CantConsumeNow(inst *card.Instance) bool          { return Has(inst, CantConsume, 0) }
func LosesStatusOnDamageNow(inst *card.Instance) bool  { return Has(inst, LosesStatusOnDamage, 0) }
func CantBeTargetedNow(inst *card.Instance) bool       { return Has(inst, CantBeTargeted, 0) }
func DiesEndOfTurnNow(inst *card.Instance) bool        { return Has(inst, DiesEndOfTurn, 0) }
