// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon_test

import (
	"errors"
	"reflect"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/spoon"
)

func failing(...any) kont.Eff[any] { return spoon.Throw[any](errBoom) }

func TestAll(t *testing.T) {
	rt := newRuntime(t)
	h := makeChan(t, rt, 0)
	// The receive only completes once its sibling sends, so the children
	// must run concurrently.
	got := mustAwait(t, rt.Start(spoon.All{Operations: []spoon.Operation{
		spoon.Recv{Chan: h},
		spoon.Send{Chan: h, Value: "x"},
		spoon.Call{Routine: add, Args: []any{1, 2}},
	}}))
	want := []any{"x", nil, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAllFailFast(t *testing.T) {
	rt := newRuntime(t)
	h := makeChan(t, rt, 0)
	_, err := await(t, rt.Start(spoon.All{Operations: []spoon.Operation{
		spoon.Recv{Chan: h},
		spoon.Call{Routine: failing},
	}}))
	if !errors.Is(err, errBoom) {
		t.Fatalf("got %v, want boom", err)
	}
}

func TestAllEmpty(t *testing.T) {
	rt := newRuntime(t)
	got := mustAwait(t, rt.Start(spoon.All{}))
	if s, ok := got.([]any); !ok || len(s) != 0 {
		t.Fatalf("got %v, want empty slice", got)
	}
}

func TestAllSettled(t *testing.T) {
	rt := newRuntime(t)
	got := mustAwait(t, rt.Start(spoon.AllSettled{Operations: []spoon.Operation{
		spoon.Call{Routine: add, Args: []any{1, 1}},
		spoon.Call{Routine: failing},
	}})).([]spoon.Settled)
	if len(got) != 2 {
		t.Fatalf("got %d slots, want 2", len(got))
	}
	if got[0].Value != 2 || got[0].Err != nil {
		t.Fatalf("slot 0: got %+v", got[0])
	}
	if !errors.Is(got[1].Err, errBoom) {
		t.Fatalf("slot 1: got %+v", got[1])
	}
}

func TestBatch(t *testing.T) {
	rt := newRuntime(t)
	got := mustAwait(t, rt.Start(spoon.Batch{Operations: []spoon.Operation{
		spoon.Call{Routine: add, Args: []any{1, 1}},
		spoon.Set{Key: "k", Value: "v"},
		spoon.Get{Key: "missing"},
	}}))
	if !reflect.DeepEqual(got, []any{2, nil, nil}) {
		t.Fatalf("got %v", got)
	}
}

func TestBatchCollectsFailures(t *testing.T) {
	rt := newRuntime(t)
	errOther := errors.New("other")
	other := func(...any) kont.Eff[any] { return spoon.Throw[any](errOther) }
	_, err := await(t, rt.Start(spoon.Batch{Operations: []spoon.Operation{
		spoon.Call{Routine: failing},
		spoon.Call{Routine: add, Args: []any{0, 0}},
		spoon.Call{Routine: other},
	}}))
	if !errors.Is(err, errBoom) || !errors.Is(err, errOther) {
		t.Fatalf("got %v, want both failures", err)
	}
}

func TestForkJoin(t *testing.T) {
	rt := newRuntime(t)
	main := routine(func() kont.Eff[any] {
		return spoon.ChanBind(0, func(h spoon.Handle) kont.Eff[any] {
			return kont.Bind(spoon.Do[*spoon.Future](spoon.Fork{Operation: spoon.Recv{Chan: h}}), func(f *spoon.Future) kont.Eff[any] {
				return spoon.SendThen(h, "forked", spoon.Perform(spoon.Join{Future: f}))
			})
		})
	})
	if v := mustAwait(t, rt.Call(main)); v != "forked" {
		t.Fatalf("got %v, want forked", v)
	}
}

func TestJoinFailure(t *testing.T) {
	rt := newRuntime(t)
	f := rt.Call(failing)
	_, err := await(t, rt.Start(spoon.Join{Future: f}))
	if !errors.Is(err, errBoom) {
		t.Fatalf("got %v, want boom", err)
	}
	if _, err := await(t, rt.Start(spoon.Join{})); !errors.Is(err, spoon.ErrNilFuture) {
		t.Fatalf("got %v, want ErrNilFuture", err)
	}
}

func TestForkedRunOutlivesParent(t *testing.T) {
	rt := newRuntime(t)
	h := makeChan(t, rt, 0)
	child := mustAwait(t, rt.Start(spoon.Fork{Operation: spoon.Recv{Chan: h}})).(*spoon.Future)
	if child.Settled() {
		t.Fatalf("child settled without a sender")
	}
	mustAwait(t, rt.Start(spoon.Send{Chan: h, Value: 1}))
	if v := mustAwait(t, child); v != 1 {
		t.Fatalf("got %v, want 1", v)
	}
}
