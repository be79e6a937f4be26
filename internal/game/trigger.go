package game

import (
	"github.com/godeaux/predation/internal/game/card"
	"github.com/godeaux/predation/internal/game/keywords"
)

// ResolveCardEffect looks up and runs the instance's effect definitions for
// a trigger. Every entry of the array runs, in order, with the results
// merged; entries that suspend contribute a Selection instead, the first of
// which is returned while the rest are parked on the state's pending queue.
// Generators never mutate state, so later entries observe the same state
// regardless of how many earlier entries suspended.
//
// A creature with cancelled abilities, or a dry-dropped predator, dispatches
// nothing; callers must not invoke the resolver in that case. onConsume can
// never fire for a dry-dropped predator by construction, since dry-drop
// means the predator entered play without consuming.
func (e *Engine) ResolveCardEffect(st *GameState, inst *card.Instance, trig card.Trigger, controller int) (Result, *Selection) {
	if keywords.Suppressed(inst) {
		return nil, nil
	}
	specs := inst.EffectSpecs(trig)
	if len(specs) == 0 {
		return nil, nil
	}

	ctx := &Context{State: st, Self: inst, Controller: controller}
	var merged Result
	var pending *Selection
	for _, spec := range specs {
		res, sel := Build(spec)(ctx)
		merged = merged.Merge(res)
		pending = st.queueSelection(pending, sel)
	}
	return merged, pending
}

// FireTrigger dispatches a trigger and applies its result in one step,
// returning any pending selection. Convenience for call sites that do not
// need to inspect the raw result.
func (e *Engine) FireTrigger(st *GameState, inst *card.Instance, trig card.Trigger, controller int) (*Selection, error) {
	res, sel := e.ResolveCardEffect(st, inst, trig, controller)
	nested, err := e.Apply(st, res)
	if err != nil {
		return nil, err
	}
	return st.queueSelection(sel, nested), nil
}
