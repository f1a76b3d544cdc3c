// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// channel is the state behind one [Handle].
// All access happens on the owning runtime's executor.
//
// The state is referenced only by its handles, so it is reclaimed with
// the last of them. table records the owner for lookups.
//
// The ring is a bounded SPSC queue from lfq. It starts small and doubles
// when full until it can hold capacity values; size enforces the
// logical capacity.
type channel struct {
	handle   Handle
	table    *chanTable
	capacity int
	size     int
	ring     *lfq.SPSC[any]
	ringCap  int
	slot     any
	sendq    waitQueue
	recvq    waitQueue
	closed   bool
}

// MaxChanCapacity is the largest capacity a [MakeChan] may request.
const MaxChanCapacity = 1 << 30

// initialRing is the physical size of a fresh channel ring.
const initialRing = 16

// ringCapacity is the smallest power of two, at least 2, that holds
// capacity values. It saturates at MaxChanCapacity.
func ringCapacity(capacity int) int {
	n := 2
	for n < capacity && n < MaxChanCapacity {
		n <<= 1
	}
	return n
}

func newRing(n int) *lfq.SPSC[any] {
	r := new(lfq.SPSC[any])
	r.Init(n)
	return r
}

func newChannel(t *chanTable, capacity int) *channel {
	ch := &channel{table: t, capacity: capacity}
	ch.handle = Handle{serial: nextChanSerial(), ch: ch}
	if capacity > 0 {
		ch.ringCap = ringCapacity(min(capacity, initialRing))
		ch.ring = newRing(ch.ringCap)
	}
	return ch
}

// grow moves the buffered values into a ring twice the size.
func (ch *channel) grow() {
	n := min(ch.ringCap*2, ringCapacity(ch.capacity))
	ring := newRing(n)
	for {
		v, err := ch.ring.Dequeue()
		if err != nil {
			break
		}
		ch.slot = v
		if err := ring.Enqueue(&ch.slot); err != nil {
			panic("spoon: channel ring overflow")
		}
	}
	ch.slot = nil
	ch.ring, ch.ringCap = ring, n
}

// push buffers v. The caller has checked the logical capacity and
// counts v in size afterwards.
func (ch *channel) push(v any) {
	if ch.size == ch.ringCap {
		ch.grow()
	}
	ch.slot = v
	if err := ch.ring.Enqueue(&ch.slot); err != nil {
		panic("spoon: channel ring overflow")
	}
	ch.slot = nil
}

func (ch *channel) pop() any {
	v, err := ch.ring.Dequeue()
	if err != nil {
		panic("spoon: channel ring underflow")
	}
	return v
}

// trySend completes a send without blocking.
// A waiting receiver takes the value directly; otherwise it is buffered
// while capacity remains. Returns iox.ErrWouldBlock when the send must wait.
func (ch *channel) trySend(v any) error {
	if ch.closed {
		return &ChannelStateError{Op: "send", Chan: ch.handle, Err: ErrSendOnClosed}
	}
	if r := ch.recvq.shift(); r != nil {
		r.take(v, true)
		return nil
	}
	if ch.size < ch.capacity {
		ch.push(v)
		ch.size++
		return nil
	}
	return iox.ErrWouldBlock
}

// tryRecv completes a receive without blocking.
// The oldest buffered value wins; a waiting sender then refills the freed
// slot. Without buffered values a waiting sender hands over directly.
// A closed, drained channel yields the closed outcome.
// Returns iox.ErrWouldBlock when the receive must wait.
func (ch *channel) tryRecv() (Received, error) {
	if ch.size > 0 {
		v := ch.pop()
		ch.size--
		if s := ch.sendq.shift(); s != nil {
			ch.push(s.give())
			ch.size++
		}
		return Received{Value: v, OK: true}, nil
	}
	if s := ch.sendq.shift(); s != nil {
		return Received{Value: s.give(), OK: true}, nil
	}
	if ch.closed {
		return Received{}, nil
	}
	return Received{}, iox.ErrWouldBlock
}

// sendReady reports whether a send would complete without blocking.
func (ch *channel) sendReady() (bool, error) {
	if ch.closed {
		return false, &ChannelStateError{Op: "send", Chan: ch.handle, Err: ErrSendOnClosed}
	}
	return ch.recvq.ready() || ch.size < ch.capacity, nil
}

// recvReady reports whether a receive would complete without blocking.
func (ch *channel) recvReady() bool {
	return ch.size > 0 || ch.sendq.ready() || ch.closed
}

// close marks the channel closed and wakes every queued receiver with
// the closed outcome. Queued senders stay queued.
func (ch *channel) close() error {
	if ch.closed {
		return &ChannelStateError{Op: "close", Chan: ch.handle, Err: ErrCloseOnClosed}
	}
	ch.closed = true
	for r := ch.recvq.shift(); r != nil; r = ch.recvq.shift() {
		r.take(nil, false)
	}
	return nil
}

// chanTable is the owner identity of the channels made by runs sharing
// one [Context]. It holds no reference to them.
type chanTable struct {
	// non-zero size keeps distinct tables at distinct addresses
	_ byte
}

func newChanTable() *chanTable {
	return &chanTable{}
}

func (t *chanTable) alloc(capacity int) Handle {
	return newChannel(t, capacity).handle
}

func (t *chanTable) lookup(op string, h Handle) (*channel, error) {
	if h.ch != nil && h.ch.table == t {
		return h.ch, nil
	}
	return nil, &ChannelStateError{Op: op, Chan: h, Err: ErrUnknownChannel}
}
