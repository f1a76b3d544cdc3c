// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import "sync"

// executor runs posted tasks one at a time, in posting order.
//
// It owns no goroutine: the goroutine that posts into an idle executor
// drains it until the queue is empty, and tasks posted meanwhile, from
// any goroutine, are picked up by that drain. Handler bodies of one
// runtime therefore never run simultaneously, only interleaved at
// suspension points.
type executor struct {
	mu       sync.Mutex
	tasks    []func()
	spare    []func()
	draining bool
}

// post enqueues task and drains the executor if it is idle.
func (x *executor) post(task func()) {
	x.mu.Lock()
	x.tasks = append(x.tasks, task)
	if x.draining {
		x.mu.Unlock()
		return
	}
	x.draining = true
	x.mu.Unlock()
	x.drain()
}

// drain runs batches until the queue is empty. A panicking task
// propagates to the caller; the rest of its batch stays queued ahead
// of later posts and runs on the next drain.
func (x *executor) drain() {
	var rest []func()
	defer func() {
		if r := recover(); r != nil {
			x.mu.Lock()
			if len(rest) > 0 {
				x.tasks = append(append([]func(){}, rest...), x.tasks...)
			}
			x.draining = false
			x.mu.Unlock()
			panic(r)
		}
	}()
	for {
		x.mu.Lock()
		if len(x.tasks) == 0 {
			x.draining = false
			x.mu.Unlock()
			return
		}
		batch := x.tasks
		x.tasks = x.spare[:0]
		x.spare = nil
		x.mu.Unlock()

		for i, task := range batch {
			batch[i] = nil
			rest = batch[i+1:]
			task()
		}
		rest = nil

		x.mu.Lock()
		if x.spare == nil {
			x.spare = batch[:0]
		}
		x.mu.Unlock()
	}
}
