package game

import (
	"github.com/godeaux/predation/internal/game/card"
)

// Mutation is one atomic state change. The resolver applies mutations with
// an exhaustive switch so that adding a variant without resolver support is
// caught at review time rather than at runtime.
type Mutation interface {
	mutation()
}

// HealPlayer raises a player's HP, clamped at MaxPlayerHP.
type HealPlayer struct {
	Player int
	Amount int
}

// DamagePlayer lowers a player's HP. There is no floor; negative HP is the
// lose condition detected by the turn controller.
type DamagePlayer struct {
	Player int
	Amount int
}

// DamageCreature deals non-combat damage to a creature, honoring Immune and
// Barrier.
type DamageCreature struct {
	Target *card.Instance
	Amount int
}

// KillCreature sets a creature's health to exactly 0.
type KillCreature struct {
	Target *card.Instance
}

// BuffCreature cumulatively adjusts current attack and health.
type BuffCreature struct {
	Target *card.Instance
	Attack int
	Health int
}

// GrantKeyword adds a keyword to the target's list. Granting a keyword the
// target already has is a no-op; granting Barrier sets the barrier flag.
type GrantKeyword struct {
	Target  *card.Instance
	Keyword string
}

// RemoveKeyword removes a keyword; removing one backed by a boolean flag
// clears the flag.
type RemoveKeyword struct {
	Target  *card.Instance
	Keyword string
}

// Status names a boolean/timed status a mutation can apply.
type Status string

const (
	StatusFrozen    Status = "frozen"
	StatusWebbed    Status = "webbed"
	StatusParalyzed Status = "paralyzed"
)

// ApplyStatus sets a status flag on a creature. Paralysis carries the turn
// number it lasts through.
type ApplyStatus struct {
	Target *card.Instance
	Status Status
	Until  int
}

// DrawCards moves cards from deck to hand. Drawing from an empty deck draws
// zero cards and logs the miss.
type DrawCards struct {
	Player int
	Count  int
}

// ReturnToHand resets a creature to base stats and moves it to its owner's
// hand. Tokens cannot return to hand and are exiled instead.
type ReturnToHand struct {
	Target *card.Instance
}

// SummonTokens places tokens into empty field slots in order. A token that
// finds no empty slot is silently skipped; earlier tokens keep their slots
// and their onPlay effects.
type SummonTokens struct {
	Player   int
	TokenIDs []string
}

// MoveToCarrion relocates a creature from its field slot to its owner's
// carrion pile without firing death triggers.
type MoveToCarrion struct {
	Target *card.Instance
}

// RecoverFromCarrion moves a card from a player's carrion pile to their hand.
type RecoverFromCarrion struct {
	Player int
	Target *card.Instance
}

// CancelAbilities permanently suppresses a creature's abilities.
type CancelAbilities struct {
	Target *card.Instance
}

func (HealPlayer) mutation()         {}
func (DamagePlayer) mutation()       {}
func (DamageCreature) mutation()     {}
func (KillCreature) mutation()       {}
func (BuffCreature) mutation()       {}
func (GrantKeyword) mutation()       {}
func (RemoveKeyword) mutation()      {}
func (ApplyStatus) mutation()        {}
func (DrawCards) mutation()          {}
func (ReturnToHand) mutation()       {}
func (SummonTokens) mutation()       {}
func (MoveToCarrion) mutation()      {}
func (RecoverFromCarrion) mutation() {}
func (CancelAbilities) mutation()    {}

// Result is an ordered list of mutations produced by one effect resolution.
// An empty or nil result is a valid no-op.
type Result []Mutation

// Merge appends another result, preserving order.
func (r Result) Merge(other Result) Result {
	return append(r, other...)
}

// Selection is a suspended player choice. It carries the candidates, the
// generator that produced it, and the generator's original declarative
// parameters, so resumption re-enters the generator with the chosen
// candidate instead of holding a closure over mutable state.
type Selection struct {
	Op         string
	Spec       card.EffectSpec
	Source     *card.Instance
	Controller int

	// Candidates is set for target selections.
	Candidates []CreatureRef
	// Options is set for choose-one selections.
	Options []string
}

// IsOption reports whether this selection picks among effect options rather
// than creature targets.
func (s *Selection) IsOption() bool {
	return len(s.Options) > 0
}
