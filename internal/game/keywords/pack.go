package keywords

import (
	"github.com/godeaux/predation/internal/game/card"
)

// PackBonus returns the attack bonus a Pack creature gets from other
// same-tribe creatures on its own field. Only creatures whose abilities are
// currently active count toward the bonus, and the bearer itself must have
// an active Pack keyword. Base and current attack are never mutated by the
// bonus.
func PackBonus(inst *card.Instance, field []*card.Instance) int {
	if !HasKeyword(inst, card.KeywordPack) || inst.Def.Tribe == "" {
		return 0
	}
	bonus := 0
	for _, other := range field {
		if other == nil || other == inst {
			continue
		}
		if other.Def.Tribe != inst.Def.Tribe {
			continue
		}
		if Suppressed(other) {
			continue
		}
		bonus++
	}
	return bonus
}

// EffectiveAttack returns the attack value used for combat damage: current
// attack plus any pack bonus from the given field.
func EffectiveAttack(inst *card.Instance, field []*card.Instance) int {
	return inst.CurrentAtk + PackBonus(inst, field)
}
