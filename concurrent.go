// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"code.hybscloud.com/kont"
)

// concurrent runs operations as child runs on the caller's context.
// Children are independent stacks on the same executor, so they
// interleave with their parent at suspension points.
type concurrent struct {
	e *engine
}

func concurrentPlugin(e *engine) Plugin {
	p := &concurrent{e: e}
	return Plugin{
		Namespace: ConcurrentNamespace,
		Handlers: map[string][]Handler{
			"all":        {p.all},
			"allSettled": {p.allSettled},
			"fork":       {p.fork},
			"join":       {p.join},
		},
	}
}

// spawnAll starts one child run per operation.
func (e *engine) spawnAll(ctx *Context, ops []Operation) []*Future {
	futures := make([]*Future, len(ops))
	for i, op := range ops {
		if op == nil {
			futures[i] = rejected(ErrNilOperation)
			continue
		}
		futures[i] = e.spawn(ctx, Perform(op))
	}
	return futures
}

func (p *concurrent) all(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(All)
	if !ok {
		return mismatched(op)
	}
	if len(o.Operations) == 0 {
		return kont.Pure[any]([]any{})
	}
	return Await(func(resolve Resolve) {
		futures := p.e.spawnAll(ctx, o.Operations)
		results := make([]any, len(futures))
		pending := len(futures)
		for i, f := range futures {
			f.then(func(value any, err error) {
				if err != nil {
					resolve(nil, err)
					return
				}
				results[i] = value
				pending--
				if pending == 0 {
					resolve(results, nil)
				}
			})
		}
	})
}

func (p *concurrent) allSettled(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(AllSettled)
	if !ok {
		return mismatched(op)
	}
	if len(o.Operations) == 0 {
		return kont.Pure[any]([]Settled{})
	}
	return Await(func(resolve Resolve) {
		futures := p.e.spawnAll(ctx, o.Operations)
		results := make([]Settled, len(futures))
		pending := len(futures)
		for i, f := range futures {
			f.then(func(value any, err error) {
				results[i] = Settled{Value: value, Err: err}
				pending--
				if pending == 0 {
					resolve(results, nil)
				}
			})
		}
	})
}

func (p *concurrent) fork(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(Fork)
	if !ok {
		return mismatched(op)
	}
	if o.Operation == nil {
		return Throw[any](ErrNilOperation)
	}
	return kont.Pure[any](p.e.spawn(ctx, Perform(o.Operation)))
}

func (p *concurrent) join(op Operation, _ *Context) kont.Eff[any] {
	o, ok := op.(Join)
	if !ok {
		return mismatched(op)
	}
	if o.Future == nil {
		return Throw[any](ErrNilFuture)
	}
	return Await(func(resolve Resolve) {
		o.Future.then(resolve)
	})
}
