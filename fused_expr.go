// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"code.hybscloud.com/kont"
)

var exprReturnFrame kont.Frame = kont.ReturnFrame{}

// identityResume is the identity resume function for EffectFrame construction.
func identityResume(v kont.Erased) kont.Erased { return v }

// exprYield suspends on op and continues with f applied to the outcome.
// Fuses ExprPerform(yielded{}) + ExprBind.
func exprYield[B any](op Operation, f func(outcome) kont.Expr[B]) kont.Expr[B] {
	return kont.ExprSuspend[B](&kont.EffectFrame[kont.Erased]{
		Operation: yielded{op: op},
		Resume:    identityResume,
		Next: &kont.BindFrame[kont.Erased, kont.Erased]{
			F: func(a kont.Erased) kont.Expr[kont.Erased] {
				r := f(a.(outcome))
				return kont.Expr[kont.Erased]{Value: kont.Erased(r.Value), Frame: r.Frame}
			},
			Next: exprReturnFrame,
		},
	})
}

// exprYieldThen suspends on op and continues with next, rethrowing a
// failure of op.
func exprYieldThen[B any](op Operation, next kont.Expr[B]) kont.Expr[B] {
	return exprYield(op, func(o outcome) kont.Expr[B] {
		if o.err != nil {
			return ExprThrow[B](o.err)
		}
		return next
	})
}

// exprYieldBind suspends on op and passes its result, asserted to T, to f.
func exprYieldBind[T, B any](op Operation, f func(T) kont.Expr[B]) kont.Expr[B] {
	return exprYield(op, func(o outcome) kont.Expr[B] {
		if o.err != nil {
			return ExprThrow[B](o.err)
		}
		v, err := as[T](op, o.value)
		if err != nil {
			return ExprThrow[B](err)
		}
		return f(v)
	})
}

// ExprChanBind allocates a channel and passes its handle to f.
func ExprChanBind[B any](capacity int, f func(Handle) kont.Expr[B]) kont.Expr[B] {
	return exprYieldBind(MakeChan{Capacity: capacity}, f)
}

// ExprSendThen sends v on h and then continues with next.
// Fuses ExprPerform(Send{}) + ExprThen.
func ExprSendThen[B any](h Handle, v any, next kont.Expr[B]) kont.Expr[B] {
	return exprYieldThen(Send{Chan: h, Value: v}, next)
}

// ExprRecvBind receives a value from h and passes it to f.
// Fuses ExprPerform(Recv{}) + ExprBind.
func ExprRecvBind[T, B any](h Handle, f func(T) kont.Expr[B]) kont.Expr[B] {
	return exprYieldBind(Recv{Chan: h}, f)
}

// ExprRecvOKBind receives from h and passes the value and the ok flag to f.
func ExprRecvOKBind[T, B any](h Handle, f func(T, bool) kont.Expr[B]) kont.Expr[B] {
	op := Recv{Chan: h, Detail: true}
	return exprYieldBind(op, func(r Received) kont.Expr[B] {
		v, err := as[T](op, r.Value)
		if err != nil {
			return ExprThrow[B](err)
		}
		return f(v, r.OK)
	})
}

// ExprCloseThen closes h and then continues with next.
func ExprCloseThen[B any](h Handle, next kont.Expr[B]) kont.Expr[B] {
	return exprYieldThen(Close{Chan: h}, next)
}

// ExprSelectBind waits on cases and passes the winning [Selected] to f.
func ExprSelectBind[B any](f func(Selected) kont.Expr[B], cases ...Case) kont.Expr[B] {
	return exprYieldBind(Select{Cases: cases}, f)
}

// ExprGetBind reads key from the context and passes the value to f.
func ExprGetBind[T, B any](key any, f func(T) kont.Expr[B]) kont.Expr[B] {
	return exprYieldBind(Get{Key: key}, f)
}

// ExprSetThen writes key in the context and then continues with next.
func ExprSetThen[B any](key, value any, next kont.Expr[B]) kont.Expr[B] {
	return exprYieldThen(Set{Key: key, Value: value}, next)
}

// ExprLoop runs a recursive Expr-world computation.
// step returns Left(nextState) to continue or Right(result) to finish.
// A step that completes without suspending is unrolled in place.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	m := step(initial)
	for {
		if _, ok := m.Frame.(kont.ReturnFrame); !ok {
			break
		}
		left, ok := m.Value.GetLeft()
		if !ok {
			right, _ := m.Value.GetRight()
			return kont.ExprReturn(right)
		}
		m = step(left)
	}
	return kont.ExprBind(m, func(e kont.Either[S, A]) kont.Expr[A] {
		if left, ok := e.GetLeft(); ok {
			return ExprLoop(left, step)
		}
		right, _ := e.GetRight()
		return kont.ExprReturn(right)
	})
}
