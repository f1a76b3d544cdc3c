// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"errors"
	"fmt"
)

var (
	// ErrSendOnClosed is wrapped by a [ChannelStateError] raised by a send
	// (or a select send case) on a closed channel.
	ErrSendOnClosed = errors.New("spoon: send on closed channel")

	// ErrCloseOnClosed is wrapped by a [ChannelStateError] raised by
	// closing a channel twice.
	ErrCloseOnClosed = errors.New("spoon: close of closed channel")

	// ErrInvalidCapacity is wrapped by a [ChannelStateError] raised by a
	// [MakeChan] with a negative capacity.
	ErrInvalidCapacity = errors.New("spoon: invalid channel capacity")

	// ErrUnknownChannel is wrapped by a [ChannelStateError] raised when a
	// handle does not belong to the run's channel table.
	ErrUnknownChannel = errors.New("spoon: unknown channel")

	// ErrDelegateOutsideHandler is raised when the root routine of a run
	// yields a delegation.
	ErrDelegateOutsideHandler = errors.New("spoon: delegate outside of a handler")

	// ErrNilRoutine is raised by a [Call] without a routine.
	ErrNilRoutine = errors.New("spoon: call of nil routine")

	// ErrNilOperation is raised when a nil operation is performed.
	ErrNilOperation = errors.New("spoon: nil operation")

	// ErrNilComputation is raised when a handler or a routine returns a
	// nil computation.
	ErrNilComputation = errors.New("spoon: nil computation")

	// ErrNilFuture is raised by a [Join] without a future.
	ErrNilFuture = errors.New("spoon: join of nil future")

	// ErrResultType is raised when a typed combinator such as [Do]
	// receives a non-nil result of another type.
	ErrResultType = errors.New("spoon: unexpected result type")
)

// RegistrationError reports a malformed plugin. It is returned by [New];
// no run is possible with the offending plugin set.
type RegistrationError struct {
	Namespace string
	Kind      string
	Reason    string
}

func (e *RegistrationError) Error() string {
	switch {
	case e.Kind != "":
		return fmt.Sprintf("spoon: plugin %q: %s, found %q", e.Namespace, e.Reason, e.Kind)
	case e.Namespace != "":
		return fmt.Sprintf("spoon: plugin %q: %s", e.Namespace, e.Reason)
	}
	return "spoon: plugin: " + e.Reason
}

// ValidationError reports an operation rejected by its namespace's validator.
type ValidationError struct {
	Kind      string
	Namespace string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("spoon: invalid operation %q for plugin %q", e.Kind, e.Namespace)
}

// UnhandledOperationError reports an operation for which no handler is left.
type UnhandledOperationError struct {
	Kind string
}

func (e *UnhandledOperationError) Error() string {
	return fmt.Sprintf("spoon: no handler for %q", e.Kind)
}

// ChannelStateError reports a channel operation that is illegal in the
// channel's current state. Err is one of [ErrSendOnClosed],
// [ErrCloseOnClosed], [ErrUnknownChannel] or [ErrInvalidCapacity].
type ChannelStateError struct {
	Op   string
	Chan Handle
	Err  error
}

func (e *ChannelStateError) Error() string {
	return fmt.Sprintf("%v (%s on %s)", e.Err, e.Op, e.Chan)
}

func (e *ChannelStateError) Unwrap() error { return e.Err }
