// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"fmt"
	"reflect"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/kont"
)

// Routine is a resumable computation constructor.
// The returned computation yields operations with [Perform] and friends
// and is driven to completion by a [Runtime].
type Routine func(args ...any) kont.Eff[any]

// outcome is the resume value of every suspension the stack drives.
// A struct keeps nil results and errors safe across kont's typed resumption.
type outcome struct {
	value any
	err   error
}

// yielded carries an application operation to the stack.
type yielded struct {
	kont.Phantom[outcome]
	op Operation
}

// delegated replaces the current handler frame's operation.
type delegated struct {
	kont.Phantom[outcome]
	op Operation
}

// thrown unwinds the current frame. It is never resumed.
type thrown struct {
	kont.Phantom[outcome]
	err error
}

// awaiting parks the current frame until the registered resolver fires.
type awaiting struct {
	kont.Phantom[outcome]
	register func(Resolve)
}

// Resolve completes a parked computation with a value or an error.
// Only the first call has an effect; it may be made from any goroutine.
type Resolve func(value any, err error)

// settle converts an outcome back into the computation's control flow.
func settle(o outcome) kont.Eff[any] {
	if o.err != nil {
		return Throw[any](o.err)
	}
	return kont.Pure(o.value)
}

// Perform yields op to the runtime and resumes with its result.
// An error raised while resolving op unwinds the calling computation;
// use [Attempt] or [Catch] to recover it locally.
func Perform(op Operation) kont.Eff[any] {
	return kont.Bind(kont.Perform(yielded{op: op}), settle)
}

// Do performs op and asserts its result to A.
// A nil result yields the zero value of A; a result of another type
// raises [ErrResultType].
func Do[A any](op Operation) kont.Eff[A] {
	return kont.Bind(Perform(op), func(v any) kont.Eff[A] {
		a, err := as[A](op, v)
		if err != nil {
			return Throw[A](err)
		}
		return kont.Pure(a)
	})
}

// as asserts the result v of op to A. nil converts to the zero value.
func as[A any](op Operation, v any) (A, error) {
	if a, ok := v.(A); ok || v == nil {
		return a, nil
	}
	var zero A
	return zero, fmt.Errorf("%w: %s resumed with %T, want %s", ErrResultType, op.Kind(), v, reflect.TypeFor[A]())
}

// Attempt yields op and resumes with Right(result), or Left(err) when
// resolving op failed. Nothing is unwound.
func Attempt(op Operation) kont.Eff[kont.Either[error, any]] {
	return kont.Map(kont.Perform(yielded{op: op}), func(o outcome) kont.Either[error, any] {
		if o.err != nil {
			return kont.Left[error, any](o.err)
		}
		return kont.Right[error](o.value)
	})
}

// Throw raises err, unwinding the current frame.
// The frame below receives err as the outcome of the operation it yielded.
func Throw[A any](err error) kont.Eff[A] {
	return kont.Bind(kont.Perform(thrown{err: err}), func(outcome) kont.Eff[A] {
		panic("spoon: thrown computation resumed")
	})
}

// Catch runs body as a nested routine. If body fails, handler runs with
// the error and its result replaces body's.
func Catch(body kont.Eff[any], handler func(error) kont.Eff[any]) kont.Eff[any] {
	call := Call{Routine: func(...any) kont.Eff[any] { return body }}
	return kont.Bind(Attempt(call), func(e kont.Either[error, any]) kont.Eff[any] {
		if err, ok := e.GetLeft(); ok {
			return handler(err)
		}
		v, _ := e.GetRight()
		return kont.Pure(v)
	})
}

// Delegate replaces the operation the current handler is resolving with
// op, without adding a frame. The handler's computation is abandoned and
// the caller receives op's result directly. Delegating an operation of
// the same kind passes it to the next handler in the chain.
func Delegate(op Operation) kont.Eff[any] {
	return kont.Bind(kont.Perform(delegated{op: op}), settle)
}

// Await parks the current computation. register is called once, on the
// runtime's executor, with the resolver that resumes the computation.
// Handlers use Await to wait on external completions such as a channel
// rendezvous.
func Await(register func(Resolve)) kont.Eff[any] {
	return kont.Bind(kont.Perform(awaiting{register: register}), settle)
}

// onceResolve guards r so that only its first invocation runs.
func onceResolve(r Resolve) Resolve {
	var used atomix.Uint32
	return func(value any, err error) {
		if used.Add(1) != 1 {
			return
		}
		r(value, err)
	}
}
