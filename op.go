// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

// NamespacePrefix is the reserved prefix of every plugin namespace and
// of every fully qualified operation kind.
const NamespacePrefix = "@"

// Namespaces of the built-in plugins.
const (
	CoreNamespace       = "@spoon/core"
	ChannelsNamespace   = "@spoon/channels"
	ContextNamespace    = "@spoon/context"
	ConcurrentNamespace = "@spoon/concurrent"
	BatchNamespace      = "@spoon/batch"
)

// Qualified kinds of the built-in operations.
const (
	KindCall       = CoreNamespace + "/call"
	KindStart      = CoreNamespace + "/start"
	KindChan       = ChannelsNamespace + "/chan"
	KindSend       = ChannelsNamespace + "/send"
	KindRecv       = ChannelsNamespace + "/recv"
	KindClose      = ChannelsNamespace + "/close"
	KindRange      = ChannelsNamespace + "/range"
	KindSelect     = ChannelsNamespace + "/select"
	KindGet        = ContextNamespace + "/get"
	KindSet        = ContextNamespace + "/set"
	KindAll        = ConcurrentNamespace + "/all"
	KindAllSettled = ConcurrentNamespace + "/allSettled"
	KindFork       = ConcurrentNamespace + "/fork"
	KindJoin       = ConcurrentNamespace + "/join"
	KindBatch      = BatchNamespace + "/batch"
)

// Operation is a request for an effect.
// Kind returns the fully qualified, namespaced tag used for dispatch;
// it must return the same value for the lifetime of the operation.
// Operations are plain values: build them with composite literals and
// never mutate them after they are yielded.
type Operation interface {
	Kind() string
}

// Call is the operation for invoking a routine as a nested computation.
// Its result is the routine's return value.
type Call struct {
	Routine Routine
	Args    []any
}

func (Call) Kind() string { return KindCall }

// Start wraps the root operation of a run.
// Plugins may register for KindStart to perform per-run setup and then
// Delegate the Start operation onward; when no handler remains, the
// inner Operation is executed in place.
type Start struct {
	Operation Operation
}

func (Start) Kind() string { return KindStart }

// MakeChan is the operation for allocating a channel.
// Capacity 0 makes a synchronous rendezvous channel.
// The result is a fresh [Handle].
type MakeChan struct {
	Capacity int
}

func (MakeChan) Kind() string { return KindChan }

// Send is the operation for sending Value on a channel.
// It is also a [Select] case.
type Send struct {
	Chan  Handle
	Value any
}

func (Send) Kind() string { return KindSend }
func (Send) selectCase()  {}

// Recv is the operation for receiving from a channel.
// The result is the bare value, or a [Received] when Detail is set.
// It is also a [Select] case.
type Recv struct {
	Chan   Handle
	Detail bool
}

func (Recv) Kind() string { return KindRecv }
func (Recv) selectCase()  {}

// Close is the operation for closing a channel.
type Close struct {
	Chan Handle
}

func (Close) Kind() string { return KindClose }

// Range is the operation for iterating over a channel until it is
// closed and drained. The result is an [*Iterator].
type Range struct {
	Chan Handle
}

func (Range) Kind() string { return KindRange }

// Default is the default case marker of a [Select].
type Default struct{}

func (Default) selectCase() {}

// Case is one branch of a [Select]: a [Send], a [Recv] or [Default].
type Case interface {
	selectCase()
}

// Select is the operation for waiting on several channel cases at once.
// The result is a [Selected] naming the winning case.
type Select struct {
	Cases []Case
}

func (Select) Kind() string { return KindSelect }

// Received is the detailed outcome of a receive.
// OK is false once the channel is closed and drained.
type Received struct {
	Value any
	OK    bool
}

// Selected is the outcome of a [Select].
// Value holds the received value (or [Received] for a detailed [Recv]
// case) when the winning case is a receive.
type Selected struct {
	Index int
	Value any
}

// Get is the operation for reading a context key.
type Get struct {
	Key any
}

func (Get) Kind() string { return KindGet }

// Set is the operation for writing a context key.
type Set struct {
	Key   any
	Value any
}

func (Set) Kind() string { return KindSet }

// All runs Operations concurrently and resolves to their results in
// input order. The first failure rejects the whole operation.
type All struct {
	Operations []Operation
}

func (All) Kind() string { return KindAll }

// AllSettled runs Operations concurrently and resolves to one
// [Settled] per operation, in input order, once all of them finished.
type AllSettled struct {
	Operations []Operation
}

func (AllSettled) Kind() string { return KindAllSettled }

// Settled is one slot of an [AllSettled] result.
type Settled struct {
	Value any
	Err   error
}

// Fork starts Operation as a detached child run sharing the caller's
// context and resolves immediately to the child's [*Future].
type Fork struct {
	Operation Operation
}

func (Fork) Kind() string { return KindFork }

// Join waits for Future to settle and resolves to its outcome.
type Join struct {
	Future *Future
}

func (Join) Kind() string { return KindJoin }

// Batch runs Operations concurrently, waits for all of them, and
// resolves to their results in input order. Failures are aggregated
// with [errors.Join].
type Batch struct {
	Operations []Operation
}

func (Batch) Kind() string { return KindBatch }
