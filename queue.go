// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

// selection is shared by every waiter one blocked Select registered.
// Firing any of them marks the selection, which cancels the siblings.
type selection struct {
	fired bool
}

// waiter is a blocked send, recv or select participant.
// Exactly one of give and take is set.
type waiter struct {
	sel *selection
	// give completes a blocked send and returns the value handed over.
	give func() any
	// take completes a blocked receive.
	take func(v any, ok bool)
}

func (w *waiter) cancelled() bool {
	return w.sel != nil && w.sel.fired
}

// waitQueue is a FIFO of waiters with lazy cancellation:
// cancelled entries stay queued and are dropped when they reach the head.
type waitQueue struct {
	items []*waiter
	head  int
}

func (q *waitQueue) push(w *waiter) {
	q.items = append(q.items, w)
}

// peek drops cancelled heads and returns the first live waiter, or nil.
func (q *waitQueue) peek() *waiter {
	for q.head < len(q.items) {
		w := q.items[q.head]
		if !w.cancelled() {
			return w
		}
		q.items[q.head] = nil
		q.head++
	}
	q.reset()
	return nil
}

// shift removes and returns the first live waiter, or nil.
func (q *waitQueue) shift() *waiter {
	w := q.peek()
	if w == nil {
		return nil
	}
	q.items[q.head] = nil
	q.head++
	switch {
	case q.head == len(q.items):
		q.reset()
	case q.head >= compactThreshold && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return w
}

// compactThreshold is the number of consumed slots that triggers moving
// the live tail of a waitQueue back to the front.
const compactThreshold = 32

// ready reports whether a live waiter is queued.
func (q *waitQueue) ready() bool {
	return q.peek() != nil
}

// len returns the number of queued entries, cancelled ones included.
func (q *waitQueue) len() int {
	return len(q.items) - q.head
}

func (q *waitQueue) reset() {
	q.items = q.items[:0]
	q.head = 0
}
