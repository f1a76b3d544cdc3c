// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"code.hybscloud.com/kont"
)

// ExprDo performs op from an Expr-world computation and asserts its
// result to A. A failure raised while resolving op unwinds the run as
// with [Perform].
//
// Expr frames assert every intermediate value, so A should be a
// concrete type whenever the result may be nil.
func ExprDo[A any](op Operation) kont.Expr[A] {
	return exprYieldBind(op, kont.ExprReturn[A])
}

// ExprThrow raises err from an Expr-world computation.
func ExprThrow[A any](err error) kont.Expr[A] {
	return kont.ExprBind(kont.ExprPerform(thrown{err: err}), func(outcome) kont.Expr[A] {
		panic("spoon: thrown computation resumed")
	})
}

// Reify converts a Cont-world computation to Expr-world.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world computation to Cont-world so that it
// can run as a [Routine] body.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}

// ExecuteExpr runs the Expr-world computation m as a new run on rt.
func ExecuteExpr[A any](rt *Runtime, m kont.Expr[A]) *Future {
	return rt.Execute(kont.Map(kont.Reflect(m), func(a A) any {
		return a
	}))
}
