// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"errors"

	"code.hybscloud.com/kont"
)

// batch waits for every operation of a [Batch] and collects the
// failures instead of failing fast.
type batch struct {
	e *engine
}

func batchPlugin(e *engine) Plugin {
	p := &batch{e: e}
	return Plugin{
		Namespace: BatchNamespace,
		Handlers: map[string][]Handler{
			"batch": {p.run},
		},
	}
}

func (p *batch) run(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(Batch)
	if !ok {
		return mismatched(op)
	}
	if len(o.Operations) == 0 {
		return kont.Pure[any]([]any{})
	}
	return Await(func(resolve Resolve) {
		futures := p.e.spawnAll(ctx, o.Operations)
		results := make([]any, len(futures))
		errs := make([]error, len(futures))
		pending := len(futures)
		for i, f := range futures {
			f.then(func(value any, err error) {
				results[i], errs[i] = value, err
				pending--
				if pending > 0 {
					return
				}
				if err := errors.Join(errs...); err != nil {
					resolve(nil, err)
					return
				}
				resolve(results, nil)
			})
		}
	})
}
