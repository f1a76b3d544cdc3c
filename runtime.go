// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"code.hybscloud.com/kont"
)

// engine is the shared state of one runtime instance:
// the immutable registry, the executor all its runs share, and the
// tie-break randomness used on that executor.
type engine struct {
	reg  *registry
	exec executor
	log  *slog.Logger
	rand *rand.Rand
}

// Runtime is a runtime facade bound to one [Context].
type Runtime struct {
	e   *engine
	ctx *Context
}

// facadeMu guards the facade caches held by contexts.
var facadeMu sync.Mutex

// New builds a runtime from the configured plugins followed by the
// built-in batch, concurrent, context and channels plugins.
// A malformed plugin fails construction with a [*RegistrationError].
//
// The returned facade is bound to a fresh private [Context].
func New(opts ...Option) (*Runtime, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &engine{log: o.logger}
	if o.source != nil {
		e.rand = rand.New(o.source)
	} else {
		e.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	plugins := make([]Plugin, 0, len(o.plugins)+4)
	plugins = append(plugins, o.plugins...)
	plugins = append(plugins, batchPlugin(e), concurrentPlugin(e), contextPlugin(), channelsPlugin(e))
	reg, err := newRegistry(plugins)
	if err != nil {
		e.log.Debug("registration failed", slog.Any("err", err))
		return nil, err
	}
	e.reg = reg
	e.log.Debug("runtime ready", slog.Int("plugins", len(plugins)), slog.Int("kinds", reg.kinds()))
	return e.bind(NewContext()), nil
}

// Must returns rt, panicking if err is non-nil.
func Must(rt *Runtime, err error) *Runtime {
	if err != nil {
		panic(err)
	}
	return rt
}

// bind returns the facade of e for ctx, creating it on first use.
func (e *engine) bind(ctx *Context) *Runtime {
	facadeMu.Lock()
	defer facadeMu.Unlock()
	if rt, ok := ctx.facades[e]; ok {
		return rt
	}
	if ctx.facades == nil {
		ctx.facades = make(map[*engine]*Runtime)
	}
	rt := &Runtime{e: e, ctx: ctx}
	ctx.facades[e] = rt
	return rt
}

// spawn starts a new stack for root on ctx.
func (e *engine) spawn(ctx *Context, root kont.Eff[any]) *Future {
	s := newStack(e, ctx, root)
	e.exec.post(func() {
		s.resume(outcome{})
	})
	return s.future
}

// WithContext returns the facade of this runtime bound to ctx.
// The same ctx always yields the same facade. A nil ctx yields a
// facade bound to a fresh context.
func (rt *Runtime) WithContext(ctx *Context) *Runtime {
	if ctx == nil {
		ctx = NewContext()
	}
	return rt.e.bind(ctx)
}

// Context returns the context this facade is bound to.
func (rt *Runtime) Context() *Context {
	return rt.ctx
}

// Start runs op as the root operation of a new run.
// When any plugin handles [Start], op is wrapped in one first.
//
// Start makes as much progress as it can on the calling goroutine and
// returns once the run settles or parks.
func (rt *Runtime) Start(op Operation) *Future {
	if op == nil {
		return rejected(ErrNilOperation)
	}
	if rt.e.reg.has(KindStart) {
		op = Start{Operation: op}
	}
	return rt.e.spawn(rt.ctx, Perform(op))
}

// Call runs routine with args as a new run.
func (rt *Runtime) Call(routine Routine, args ...any) *Future {
	return rt.Start(Call{Routine: routine, Args: args})
}

// Execute runs the computation m as a new run.
func (rt *Runtime) Execute(m kont.Eff[any]) *Future {
	return rt.Call(func(...any) kont.Eff[any] { return m })
}
