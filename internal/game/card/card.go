package card

import (
	"github.com/google/uuid"
)

// Category classifies a card definition.
type Category string

const (
	CategoryPrey      Category = "Prey"
	CategoryPredator  Category = "Predator"
	CategorySpell     Category = "Spell"
	CategoryFreeSpell Category = "FreeSpell"
	CategoryTrap      Category = "Trap"
)

// Trigger names the moments a card effect can fire at.
type Trigger string

const (
	TriggerOnPlay         Trigger = "onPlay"
	TriggerOnConsume      Trigger = "onConsume"
	TriggerOnSlain        Trigger = "onSlain"
	TriggerOnDefend       Trigger = "onDefend"
	TriggerOnBeforeCombat Trigger = "onBeforeCombat"
	TriggerOnAfterCombat  Trigger = "onAfterCombat"
	TriggerOnStart        Trigger = "onStart"
	TriggerOnEnd          Trigger = "onEnd"
	TriggerDiscard        Trigger = "discardEffect"
)

// Keyword name constants. Keywords are stored as strings on definitions and
// instances; numeric-suffixed keywords ("Hide 2") carry a magnitude after a
// single space.
const (
	KeywordLure       = "Lure"
	KeywordAmbush     = "Ambush"
	KeywordVenomous   = "Venomous"
	KeywordNeurotoxic = "Neurotoxic"
	KeywordBarrier    = "Barrier"
	KeywordImmune     = "Immune"
	KeywordCamouflage = "Camouflage"
	KeywordPack       = "Pack"
	KeywordEdible     = "Edible"
	KeywordInedible   = "Inedible"
	KeywordGorged     = "Gorged"
	KeywordSessile    = "Sessile"
	KeywordEphemeral  = "Ephemeral"
	KeywordSwift      = "Swift"
	KeywordHide       = "Hide"
)

// EffectSpec is the declarative parameter record for one effect. The effect
// generator library interprets the Op tag; everything else is operand data.
// Specs are data so that card sets can be authored in YAML and so that a
// pending selection can be resumed by re-invoking its generator with the
// original parameters.
type EffectSpec struct {
	Op      string       `yaml:"op"`
	Amount  int          `yaml:"amount,omitempty"`
	Attack  int          `yaml:"attack,omitempty"`
	Health  int          `yaml:"health,omitempty"`
	Keyword string       `yaml:"keyword,omitempty"`
	Status  string       `yaml:"status,omitempty"`
	Tokens  []string     `yaml:"tokens,omitempty"`
	Label   string       `yaml:"label,omitempty"`
	Options []EffectSpec `yaml:"options,omitempty"`
}

// Definition is the immutable, registry-owned description of a card.
type Definition struct {
	ID            string                   `yaml:"id"`
	Name          string                   `yaml:"name"`
	Category      Category                 `yaml:"category"`
	Tribe         string                   `yaml:"tribe,omitempty"`
	Attack        int                      `yaml:"attack,omitempty"`
	Health        int                      `yaml:"health,omitempty"`
	Nutrition     int                      `yaml:"nutrition,omitempty"`
	Keywords      []string                 `yaml:"keywords,omitempty"`
	Effects       map[Trigger][]EffectSpec `yaml:"effects,omitempty"`
	TrapCondition string                   `yaml:"trapCondition,omitempty"`
	Token         bool                     `yaml:"token,omitempty"`
	FieldSpell    bool                     `yaml:"fieldSpell,omitempty"`
}

// IsCreature reports whether the definition goes to a field slot when played.
func (d *Definition) IsCreature() bool {
	return d.Category == CategoryPrey || d.Category == CategoryPredator
}

// Instance is one copy of a definition in play. It is owned by whichever
// zone currently holds it and carries all mutable runtime state.
type Instance struct {
	ID  string
	Def *Definition

	CurrentAtk int
	CurrentHP  int
	Keywords   []string

	// Effect overrides; nil means the origin definition's table is used.
	Effects map[Trigger][]EffectSpec

	Frozen             bool
	Webbed             bool
	HasBarrier         bool
	HasAttacked        bool
	DryDropped         bool
	AbilitiesCancelled bool
	IsToken            bool
	ParalyzedUntil     int // turn number the paralysis lasts through; 0 = none
	SummonedTurn       int

	// Per-attack transient: the before-combat ability already fired for the
	// attack currently being resolved.
	PreCombatFired bool
}

// NewInstance creates a playable copy of a definition stamped with the turn
// it entered play. The keyword list is copied so grants and removals never
// touch the definition.
func NewInstance(def *Definition, turn int) *Instance {
	kw := make([]string, len(def.Keywords))
	copy(kw, def.Keywords)
	inst := &Instance{
		ID:           uuid.NewString(),
		Def:          def,
		CurrentAtk:   def.Attack,
		CurrentHP:    def.Health,
		Keywords:     kw,
		IsToken:      def.Token,
		SummonedTurn: turn,
	}
	for _, k := range kw {
		if k == KeywordBarrier {
			inst.HasBarrier = true
		}
	}
	return inst
}

// EffectSpecs returns the effect definitions for a trigger, preferring the
// instance's own table over the origin definition.
func (c *Instance) EffectSpecs(trig Trigger) []EffectSpec {
	if c.Effects != nil {
		if specs, ok := c.Effects[trig]; ok {
			return specs
		}
	}
	return c.Def.Effects[trig]
}

// HasKeywordRaw reports whether the raw keyword list contains the named
// keyword, matching numeric-suffixed forms by their base name. It ignores
// ability suppression; callers that care use the keywords package.
func (c *Instance) HasKeywordRaw(name string) bool {
	for _, k := range c.Keywords {
		if k == name || baseKeyword(k) == name {
			return true
		}
	}
	return false
}

// ResetToBase restores the instance to its printed stats and clears all
// transient statuses. Used when a creature returns to hand.
func (c *Instance) ResetToBase() {
	c.CurrentAtk = c.Def.Attack
	c.CurrentHP = c.Def.Health
	c.Keywords = make([]string, len(c.Def.Keywords))
	copy(c.Keywords, c.Def.Keywords)
	c.Frozen = false
	c.Webbed = false
	c.HasBarrier = hasKeyword(c.Def.Keywords, KeywordBarrier)
	c.HasAttacked = false
	c.DryDropped = false
	c.AbilitiesCancelled = false
	c.ParalyzedUntil = 0
	c.PreCombatFired = false
	c.Effects = nil
}

func hasKeyword(list []string, name string) bool {
	for _, k := range list {
		if k == name {
			return true
		}
	}
	return false
}

func baseKeyword(k string) string {
	for i := 0; i < len(k); i++ {
		if k[i] == ' ' {
			return k[:i]
		}
	}
	return k
}
