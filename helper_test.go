// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon_test

import (
	"context"
	"testing"
	"time"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/spoon"
)

// await waits for f with a deadline so that a lost wakeup fails the
// test instead of hanging it.
func await(tb testing.TB, f *spoon.Future) (any, error) {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v, err := f.Await(ctx)
	if err == context.DeadlineExceeded {
		tb.Fatalf("run did not settle")
	}
	return v, err
}

// mustAwait is await for runs that must succeed.
func mustAwait(tb testing.TB, f *spoon.Future) any {
	tb.Helper()
	v, err := await(tb, f)
	if err != nil {
		tb.Fatalf("unexpected error: %v", err)
	}
	return v
}

func newRuntime(tb testing.TB, opts ...spoon.Option) *spoon.Runtime {
	tb.Helper()
	rt, err := spoon.New(opts...)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	return rt
}

// routine adapts a computation to a Routine ignoring its arguments.
func routine(m func() kont.Eff[any]) spoon.Routine {
	return func(...any) kont.Eff[any] { return m() }
}
