// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"fmt"
	"log/slog"

	"code.hybscloud.com/kont"
)

// frame is one active computation on a stack.
// op is the operation the computation resolves (nil for the root) and
// index its handler's position in op's chain. Before the first step the
// computation is eff; afterwards it is the pending suspension.
type frame struct {
	op    Operation
	index int
	eff   kont.Eff[any]
	susp  *kont.Suspension[any]
}

// stack drives one root computation to completion.
// All of its methods run on the engine's executor.
type stack struct {
	e      *engine
	ctx    *Context
	frames []*frame
	future *Future
}

func newStack(e *engine, ctx *Context, root kont.Eff[any]) *stack {
	return &stack{
		e:      e,
		ctx:    ctx,
		frames: []*frame{{eff: root}},
		future: newFuture(),
	}
}

func (s *stack) top() *frame {
	return s.frames[len(s.frames)-1]
}

// pop removes the top frame, discarding its pending suspension.
func (s *stack) pop() {
	n := len(s.frames) - 1
	if f := s.frames[n]; f.susp != nil {
		f.susp.Discard()
		f.susp = nil
	}
	s.frames[n] = nil
	s.frames = s.frames[:n]
}

// step advances the top frame with in.
// Returns the final value, or the suspension it stopped at.
func (s *stack) step(f *frame, in outcome) (any, *kont.Suspension[any]) {
	if f.eff != nil {
		eff := f.eff
		f.eff = nil
		return kont.Step(eff)
	}
	susp := f.susp
	f.susp = nil
	return susp.Resume(in)
}

// resume runs the stack until it settles or parks.
func (s *stack) resume(in outcome) {
	for {
		f := s.top()
		v, susp := s.step(f, in)
		if susp == nil {
			s.pop()
			if len(s.frames) == 0 {
				s.settle(v, nil)
				return
			}
			in = outcome{value: v}
			continue
		}
		f.susp = susp

		switch y := susp.Op().(type) {
		case yielded:
			in = outcome{}
			if err := s.dispatch(y.op, 0); err != nil {
				in = outcome{err: err}
			}
		case delegated:
			if f.op == nil {
				in = outcome{err: ErrDelegateOutsideHandler}
				continue
			}
			next := 0
			if y.op != nil && y.op.Kind() == f.op.Kind() {
				next = f.index + 1
			}
			s.pop()
			in = outcome{}
			if err := s.dispatch(y.op, next); err != nil {
				in = outcome{err: err}
			}
		case thrown:
			s.pop()
			if len(s.frames) == 0 {
				s.settle(nil, y.err)
				return
			}
			in = outcome{err: y.err}
		case awaiting:
			s.park(y.register)
			return
		default:
			s.pop()
			err := &UnhandledOperationError{Kind: fmt.Sprintf("%T", y)}
			if len(s.frames) == 0 {
				s.settle(nil, err)
				return
			}
			in = outcome{err: err}
		}
	}
}

// dispatch pushes a frame running the index-th handler of op's chain.
// When the chain is exhausted, the core intrinsics take over.
// A returned error belongs to the frame currently on top.
// Every dispatch validates op, including a delegation that continues
// the chain of the same kind with a rewritten operation.
func (s *stack) dispatch(op Operation, index int) error {
	if op == nil {
		return ErrNilOperation
	}
	if err := s.e.reg.validate(op); err != nil {
		s.e.log.Debug("operation rejected", slog.String("kind", op.Kind()), slog.Any("err", err))
		return err
	}
	h, ok := s.e.reg.handler(op.Kind(), index)
	if !ok {
		h, ok = intrinsic(op)
	}
	if !ok {
		err := &UnhandledOperationError{Kind: op.Kind()}
		s.e.log.Debug("operation unhandled", slog.String("kind", op.Kind()), slog.Int("index", index))
		return err
	}
	eff := h(op, s.ctx)
	if eff == nil {
		return ErrNilComputation
	}
	s.frames = append(s.frames, &frame{op: op, index: index, eff: eff})
	return nil
}

// intrinsic returns the built-in fallback for core operations.
func intrinsic(op Operation) (Handler, bool) {
	switch op.(type) {
	case Call:
		return callRoutine, true
	case Start:
		return startOperation, true
	}
	return nil, false
}

func callRoutine(op Operation, _ *Context) kont.Eff[any] {
	o := op.(Call)
	if o.Routine == nil {
		return Throw[any](ErrNilRoutine)
	}
	return o.Routine(o.Args...)
}

func startOperation(op Operation, _ *Context) kont.Eff[any] {
	return Delegate(op.(Start).Operation)
}

// park suspends the top frame until the resolver fires.
// The resolver posts the resumption back onto the executor.
func (s *stack) park(register func(Resolve)) {
	resolve := onceResolve(func(value any, err error) {
		s.e.exec.post(func() {
			s.resume(outcome{value: value, err: err})
		})
	})
	register(resolve)
}

func (s *stack) settle(value any, err error) {
	if err != nil {
		s.e.log.Debug("run failed", slog.String("context", s.ctx.String()), slog.Any("err", err))
	}
	s.future.resolve(value, err)
}
