// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon_test

import (
	"errors"
	"strings"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/spoon"
)

func TestGetSet(t *testing.T) {
	rt := newRuntime(t)
	main := routine(func() kont.Eff[any] {
		return spoon.SetThen("user", "ada", spoon.GetBind("user", func(name string) kont.Eff[any] {
			return kont.Pure[any](name)
		}))
	})
	if v := mustAwait(t, rt.Call(main)); v != "ada" {
		t.Fatalf("got %v, want ada", v)
	}
	if v, ok := rt.Context().Value("user"); !ok || v != "ada" {
		t.Fatalf("context holds %v, want ada", v)
	}
}

func TestTypedGetRejectsOtherType(t *testing.T) {
	rt := newRuntime(t)
	main := routine(func() kont.Eff[any] {
		return spoon.SetThen("n", "seven", kont.Map(spoon.Do[int](spoon.Get{Key: "n"}), func(n int) any {
			return n
		}))
	})
	_, err := await(t, rt.Call(main))
	if !errors.Is(err, spoon.ErrResultType) {
		t.Fatalf("got %v, want ErrResultType", err)
	}
	if !strings.Contains(err.Error(), spoon.KindGet) {
		t.Fatalf("error %q does not name the operation", err)
	}

	expr := spoon.ExprGetBind("n", func(n int) kont.Expr[int] { return kont.ExprReturn(n) })
	if _, err := await(t, spoon.ExecuteExpr(rt, expr)); !errors.Is(err, spoon.ErrResultType) {
		t.Fatalf("expr: got %v, want ErrResultType", err)
	}

	missing := kont.Map(spoon.Do[int](spoon.Get{Key: "missing"}), func(n int) any { return n })
	if v := mustAwait(t, rt.Execute(missing)); v != 0 {
		t.Fatalf("missing key: got %v, want 0", v)
	}
}

func TestGetMissingKey(t *testing.T) {
	rt := newRuntime(t)
	if v := mustAwait(t, rt.Start(spoon.Get{Key: "missing"})); v != nil {
		t.Fatalf("got %v, want nil", v)
	}
}

func TestContextsAreIsolated(t *testing.T) {
	rt := newRuntime(t)
	other := rt.WithContext(spoon.NewContext())
	mustAwait(t, rt.Start(spoon.Set{Key: "k", Value: 1}))
	if v := mustAwait(t, other.Start(spoon.Get{Key: "k"})); v != nil {
		t.Fatalf("got %v, want nil", v)
	}
}

func TestRunsShareContext(t *testing.T) {
	rt := newRuntime(t)
	mustAwait(t, rt.Start(spoon.Set{Key: "k", Value: 1}))
	if v := mustAwait(t, rt.Start(spoon.Get{Key: "k"})); v != 1 {
		t.Fatalf("got %v, want 1", v)
	}
}

func TestFacadeCache(t *testing.T) {
	rt := newRuntime(t)
	ctx := spoon.NewContext()
	a := rt.WithContext(ctx)
	b := rt.WithContext(ctx)
	if a != b {
		t.Fatalf("same context yielded different facades")
	}
	if a.Context() != ctx {
		t.Fatalf("facade bound to the wrong context")
	}
	if rt.WithContext(rt.Context()) != rt {
		t.Fatalf("rebinding to the own context yielded a new facade")
	}

	other := newRuntime(t)
	if other.WithContext(ctx) == a {
		t.Fatalf("different runtimes share a facade")
	}
	if rt.WithContext(nil).Context() == nil {
		t.Fatalf("nil context was not replaced")
	}
}

func TestContextString(t *testing.T) {
	ctx := spoon.NewContext()
	if !strings.HasPrefix(ctx.String(), "context #") {
		t.Fatalf("got %q", ctx.String())
	}
	if spoon.NewContext().Serial() <= ctx.Serial() {
		t.Fatalf("context serials are not increasing")
	}
}
