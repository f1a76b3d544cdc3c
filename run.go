// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"context"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Future is the asynchronous result of a run.
// It settles exactly once, with a value or an error.
type Future struct {
	settled   atomix.Uint32
	mu        sync.Mutex
	value     any
	err       error
	callbacks []Resolve
}

func newFuture() *Future {
	return &Future{}
}

// rejected returns a future already settled with err.
func rejected(err error) *Future {
	f := newFuture()
	f.resolve(nil, err)
	return f
}

// resolve settles the future and runs its callbacks.
// Later calls are ignored.
func (f *Future) resolve(value any, err error) {
	f.mu.Lock()
	if f.settled.Load() != 0 {
		f.mu.Unlock()
		return
	}
	f.value, f.err = value, err
	f.settled.Add(1)
	callbacks := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()
	for _, cb := range callbacks {
		cb(value, err)
	}
}

// then calls cb once the future settles; immediately if it already has.
func (f *Future) then(cb Resolve) {
	f.mu.Lock()
	if f.settled.Load() != 0 {
		value, err := f.value, f.err
		f.mu.Unlock()
		cb(value, err)
		return
	}
	f.callbacks = append(f.callbacks, cb)
	f.mu.Unlock()
}

// Settled reports whether the future has settled.
func (f *Future) Settled() bool {
	return f.settled.Load() != 0
}

// Poll returns the outcome of a settled future without blocking.
// Returns iox.ErrWouldBlock while the run is still in flight.
func (f *Future) Poll() (any, error) {
	if f.settled.Load() == 0 {
		return nil, iox.ErrWouldBlock
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Await waits until the future settles or ctx is done.
// Waits with adaptive backoff (iox.Backoff), without creating channels.
func (f *Future) Await(ctx context.Context) (any, error) {
	var bo iox.Backoff
	for !f.Settled() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bo.Wait()
	}
	return f.Poll()
}
