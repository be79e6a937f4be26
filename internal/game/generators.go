package game

import (
	"fmt"

	"github.com/godeaux/predation/internal/game/card"
	"github.com/godeaux/predation/internal/game/keywords"
)

// Context is the execution context handed to effect generators.
type Context struct {
	State      *GameState
	Self       *card.Instance
	Controller int
}

// Generator produces an effect result, or a selection when a choice is
// needed, from an execution context. Generators never mutate state; only
// the resolver does.
type Generator func(ctx *Context) (Result, *Selection)

// Generator op names. These form the closed vocabulary card sets are
// authored against, and key the resumption registry for selections.
const (
	OpDamageOpponent     = "damageOpponent"
	OpHealPlayer         = "healPlayer"
	OpDamageTarget       = "damageTarget"
	OpDamageAllEnemies   = "damageAllEnemies"
	OpKillTarget         = "killTarget"
	OpBuffTarget         = "buffTarget"
	OpBuffSelf           = "buffSelf"
	OpGrantKeywordTarget = "grantKeywordTarget"
	OpApplyStatusTarget  = "applyStatusTarget"
	OpReturnTargetToHand = "returnTargetToHand"
	OpCancelTarget       = "cancelTarget"
	OpDrawCards          = "drawCards"
	OpSummonTokens       = "summonTokens"
	OpRecoverCarrion     = "recoverCarrion"
	OpChooseOne          = "chooseOne"
)

// targetResolvers maps a selection-producing op to the function that turns
// a chosen candidate into a concrete result. Resumption re-enters here with
// the selection's original parameters.
var targetResolvers = map[string]func(ctx *Context, spec card.EffectSpec, target *card.Instance) Result{
	OpDamageTarget: func(ctx *Context, spec card.EffectSpec, target *card.Instance) Result {
		return Result{DamageCreature{Target: target, Amount: spec.Amount}}
	},
	OpKillTarget: func(ctx *Context, spec card.EffectSpec, target *card.Instance) Result {
		return Result{KillCreature{Target: target}}
	},
	OpBuffTarget: func(ctx *Context, spec card.EffectSpec, target *card.Instance) Result {
		return Result{BuffCreature{Target: target, Attack: spec.Attack, Health: spec.Health}}
	},
	OpGrantKeywordTarget: func(ctx *Context, spec card.EffectSpec, target *card.Instance) Result {
		return Result{GrantKeyword{Target: target, Keyword: spec.Keyword}}
	},
	OpApplyStatusTarget: func(ctx *Context, spec card.EffectSpec, target *card.Instance) Result {
		return Result{statusMutation(ctx, spec, target)}
	},
	OpReturnTargetToHand: func(ctx *Context, spec card.EffectSpec, target *card.Instance) Result {
		return Result{ReturnToHand{Target: target}}
	},
	OpCancelTarget: func(ctx *Context, spec card.EffectSpec, target *card.Instance) Result {
		return Result{CancelAbilities{Target: target}}
	},
	OpRecoverCarrion: func(ctx *Context, spec card.EffectSpec, target *card.Instance) Result {
		return Result{RecoverFromCarrion{Player: ctx.Controller, Target: target}}
	},
}

func statusMutation(ctx *Context, spec card.EffectSpec, target *card.Instance) Mutation {
	status := Status(spec.Status)
	until := 0
	if status == StatusParalyzed {
		until = ctx.State.Turn + 1
	}
	return ApplyStatus{Target: target, Status: status, Until: until}
}

// Build compiles a declarative effect spec into a generator. Unknown ops
// compile to a logged no-op rather than failing the whole card set.
func Build(spec card.EffectSpec) Generator {
	switch spec.Op {
	case OpDamageOpponent:
		return func(ctx *Context) (Result, *Selection) {
			return Result{DamagePlayer{Player: Opponent(ctx.Controller), Amount: spec.Amount}}, nil
		}
	case OpHealPlayer:
		return func(ctx *Context) (Result, *Selection) {
			return Result{HealPlayer{Player: ctx.Controller, Amount: spec.Amount}}, nil
		}
	case OpDamageAllEnemies:
		return func(ctx *Context) (Result, *Selection) {
			var res Result
			for _, c := range ctx.State.FieldCreatures(Opponent(ctx.Controller)) {
				res = append(res, DamageCreature{Target: c, Amount: spec.Amount})
			}
			return res, nil
		}
	case OpBuffSelf:
		return func(ctx *Context) (Result, *Selection) {
			if ctx.Self == nil {
				return nil, nil
			}
			return Result{BuffCreature{Target: ctx.Self, Attack: spec.Attack, Health: spec.Health}}, nil
		}
	case OpDrawCards:
		return func(ctx *Context) (Result, *Selection) {
			return Result{DrawCards{Player: ctx.Controller, Count: spec.Amount}}, nil
		}
	case OpSummonTokens:
		return func(ctx *Context) (Result, *Selection) {
			return Result{SummonTokens{Player: ctx.Controller, TokenIDs: spec.Tokens}}, nil
		}
	case OpDamageTarget, OpKillTarget, OpApplyStatusTarget, OpReturnTargetToHand, OpCancelTarget:
		return func(ctx *Context) (Result, *Selection) {
			return selectCreature(ctx, spec, ctx.State.FieldCreatures(Opponent(ctx.Controller)))
		}
	case OpBuffTarget, OpGrantKeywordTarget:
		return func(ctx *Context) (Result, *Selection) {
			return selectCreature(ctx, spec, ctx.State.FieldCreatures(ctx.Controller))
		}
	case OpRecoverCarrion:
		return func(ctx *Context) (Result, *Selection) {
			return selectCarrion(ctx, spec)
		}
	case OpChooseOne:
		return func(ctx *Context) (Result, *Selection) {
			if len(spec.Options) == 0 {
				return nil, nil
			}
			if len(spec.Options) == 1 {
				return Build(spec.Options[0])(ctx)
			}
			labels := make([]string, len(spec.Options))
			for i, opt := range spec.Options {
				labels[i] = opt.Label
				if labels[i] == "" {
					labels[i] = opt.Op
				}
			}
			return nil, &Selection{
				Op:         OpChooseOne,
				Spec:       spec,
				Source:     ctx.Self,
				Controller: ctx.Controller,
				Options:    labels,
			}
		}
	default:
		return func(ctx *Context) (Result, *Selection) {
			ctx.State.LogMessage(fmt.Sprintf("Nothing happens (unknown effect %q).", spec.Op))
			return nil, nil
		}
	}
}

// selectCreature implements the selection contract: zero eligible
// candidates resolve to an empty result, a single candidate auto-resolves,
// and anything more suspends into a Selection. Creatures that cannot be
// legally targeted are excluded before counting.
func selectCreature(ctx *Context, spec card.EffectSpec, pool []*card.Instance) (Result, *Selection) {
	resolve := targetResolvers[spec.Op]
	var eligible []*card.Instance
	for _, c := range pool {
		if keywords.CantBeTargetedNow(c) {
			continue
		}
		eligible = append(eligible, c)
	}
	switch len(eligible) {
	case 0:
		return nil, nil
	case 1:
		return resolve(ctx, spec, eligible[0]), nil
	}
	refs := make([]CreatureRef, len(eligible))
	for i, c := range eligible {
		refs[i] = ctx.State.RefFor(c)
	}
	return nil, &Selection{
		Op:         spec.Op,
		Spec:       spec,
		Source:     ctx.Self,
		Controller: ctx.Controller,
		Candidates: refs,
	}
}

// selectCarrion selects among the controller's carrion pile.
func selectCarrion(ctx *Context, spec card.EffectSpec) (Result, *Selection) {
	pile := ctx.State.Players[ctx.Controller].Carrion
	switch len(pile) {
	case 0:
		return nil, nil
	case 1:
		return targetResolvers[OpRecoverCarrion](ctx, spec, pile[0]), nil
	}
	refs := make([]CreatureRef, len(pile))
	for i, c := range pile {
		refs[i] = CreatureRef{ID: c.ID, Name: c.Def.Name, Owner: ctx.Controller, Slot: -1}
	}
	return nil, &Selection{
		Op:         spec.Op,
		Spec:       spec,
		Source:     ctx.Self,
		Controller: ctx.Controller,
		Candidates: refs,
	}
}

// ResumeTarget resumes a pending target selection with the chosen candidate
// and applies the resulting effect. A candidate that has since left play is
// a logged no-op; an ID outside the candidate list is rejected. When the
// resumption itself needs no further choice, the oldest parked selection
// (if any) comes back in flight.
func (e *Engine) ResumeTarget(st *GameState, sel *Selection, targetID string) (*Selection, error) {
	if sel.IsOption() {
		return nil, fmt.Errorf("selection %s expects an option choice", sel.Op)
	}
	valid := false
	for _, ref := range sel.Candidates {
		if ref.ID == targetID {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("target %q is not a candidate of selection %s", targetID, sel.Op)
	}
	target := findSelectable(st, targetID)
	if target == nil {
		st.LogMessage("The chosen target is gone; nothing happens.")
		return st.nextPending(), nil
	}
	resolve, ok := targetResolvers[sel.Op]
	if !ok {
		return nil, fmt.Errorf("no resolver registered for op %q", sel.Op)
	}
	ctx := &Context{State: st, Self: sel.Source, Controller: sel.Controller}
	next, err := e.Apply(st, resolve(ctx, sel.Spec, target))
	if err != nil {
		return nil, err
	}
	if next != nil {
		return next, nil
	}
	return st.nextPending(), nil
}

// ResumeOption resumes a pending choose-one selection with the chosen
// option index. The chosen branch may itself suspend into a new selection;
// otherwise the oldest parked selection (if any) comes back in flight.
func (e *Engine) ResumeOption(st *GameState, sel *Selection, index int) (*Selection, error) {
	if !sel.IsOption() {
		return nil, fmt.Errorf("selection %s expects a target choice", sel.Op)
	}
	if index < 0 || index >= len(sel.Spec.Options) {
		return nil, fmt.Errorf("option index %d out of range for selection %s", index, sel.Op)
	}
	ctx := &Context{State: st, Self: sel.Source, Controller: sel.Controller}
	res, nested := Build(sel.Spec.Options[index])(ctx)
	if nested != nil {
		return nested, nil
	}
	next, err := e.Apply(st, res)
	if err != nil {
		return nil, err
	}
	if next != nil {
		return next, nil
	}
	return st.nextPending(), nil
}

// findSelectable locates a selection candidate by ID on either field or in
// either carrion pile.
func findSelectable(st *GameState, id string) *card.Instance {
	if inst, _, _, ok := st.FindCreature(id); ok {
		return inst
	}
	for p := 0; p < 2; p++ {
		for _, c := range st.Players[p].Carrion {
			if c.ID == id {
				return c
			}
		}
	}
	return nil
}
