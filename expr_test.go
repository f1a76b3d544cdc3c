// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon_test

import (
	"errors"
	"fmt"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/spoon"
)

func TestExprSendRecv(t *testing.T) {
	rt := newRuntime(t)
	prog := spoon.ExprChanBind(1, func(h spoon.Handle) kont.Expr[string] {
		return spoon.ExprSendThen(h, 42,
			spoon.ExprRecvBind(h, func(n int) kont.Expr[string] {
				return kont.ExprReturn(fmt.Sprintf("got %d", n))
			}),
		)
	})
	if v := mustAwait(t, spoon.ExecuteExpr(rt, prog)); v != "got 42" {
		t.Fatalf("got %v, want got 42", v)
	}
}

func TestExprCloseAndRecvOK(t *testing.T) {
	rt := newRuntime(t)
	prog := spoon.ExprChanBind(0, func(h spoon.Handle) kont.Expr[bool] {
		return spoon.ExprCloseThen(h, spoon.ExprRecvOKBind(h, func(_ int, ok bool) kont.Expr[bool] {
			return kont.ExprReturn(ok)
		}))
	})
	if v := mustAwait(t, spoon.ExecuteExpr(rt, prog)); v != false {
		t.Fatalf("got %v, want false", v)
	}
}

func TestExprContext(t *testing.T) {
	rt := newRuntime(t)
	prog := spoon.ExprSetThen("n", 20, spoon.ExprGetBind("n", func(n int) kont.Expr[int] {
		return kont.ExprReturn(n + 1)
	}))
	if v := mustAwait(t, spoon.ExecuteExpr(rt, prog)); v != 21 {
		t.Fatalf("got %v, want 21", v)
	}
}

func TestExprSelect(t *testing.T) {
	rt := newRuntime(t)
	h := makeChan(t, rt, 0)
	prog := spoon.ExprSelectBind(func(s spoon.Selected) kont.Expr[int] {
		return kont.ExprReturn(s.Index)
	}, spoon.Recv{Chan: h}, spoon.Default{})
	if v := mustAwait(t, spoon.ExecuteExpr(rt, prog)); v != 1 {
		t.Fatalf("got %v, want 1", v)
	}
}

func TestExprThrowPropagates(t *testing.T) {
	rt := newRuntime(t)
	prog := spoon.ExprChanBind(0, func(h spoon.Handle) kont.Expr[int] {
		return spoon.ExprCloseThen(h, spoon.ExprCloseThen(h, kont.ExprReturn(1)))
	})
	_, err := await(t, spoon.ExecuteExpr(rt, prog))
	if !errors.Is(err, spoon.ErrCloseOnClosed) {
		t.Fatalf("got %v, want ErrCloseOnClosed", err)
	}

	_, err = await(t, spoon.ExecuteExpr(rt, spoon.ExprThrow[int](errBoom)))
	if !errors.Is(err, errBoom) {
		t.Fatalf("got %v, want boom", err)
	}
}

func TestExprDo(t *testing.T) {
	rt := newRuntime(t)
	rt.Context().SetValue("k", "v")
	if v := mustAwait(t, spoon.ExecuteExpr(rt, spoon.ExprDo[string](spoon.Get{Key: "k"}))); v != "v" {
		t.Fatalf("got %v, want v", v)
	}
}

func TestExprLoop(t *testing.T) {
	rt := newRuntime(t)
	prog := spoon.ExprChanBind(4, func(h spoon.Handle) kont.Expr[int] {
		fill := spoon.ExprLoop(0, func(i int) kont.Expr[kont.Either[int, int]] {
			if i == 4 {
				return kont.ExprReturn(kont.Right[int, int](i))
			}
			return spoon.ExprSendThen(h, i, kont.ExprReturn(kont.Left[int, int](i+1)))
		})
		return kont.ExprBind(fill, func(int) kont.Expr[int] {
			return spoon.ExprCloseThen(h, spoon.ExprLoop(0, func(acc int) kont.Expr[kont.Either[int, int]] {
				return spoon.ExprRecvOKBind(h, func(n int, ok bool) kont.Expr[kont.Either[int, int]] {
					if !ok {
						return kont.ExprReturn(kont.Right[int, int](acc))
					}
					return kont.ExprReturn(kont.Left[int, int](acc + n))
				})
			}))
		})
	})
	if v := mustAwait(t, spoon.ExecuteExpr(rt, prog)); v != 6 {
		t.Fatalf("got %v, want 6", v)
	}
}

func TestReifyReflect(t *testing.T) {
	rt := newRuntime(t)
	cont := spoon.ChanBind(1, func(h spoon.Handle) kont.Eff[int] {
		return spoon.SendThen(h, 7, spoon.RecvBind(h, func(n int) kont.Eff[int] {
			return kont.Pure(n * 3)
		}))
	})
	roundTrip := spoon.Reflect(spoon.Reify(cont))
	v := mustAwait(t, rt.Execute(kont.Map(roundTrip, func(n int) any { return n })))
	if v != 21 {
		t.Fatalf("got %v, want 21", v)
	}
}
