// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spoon is an effect-interpretation runtime with CSP channels, built on
// algebraic effects from [code.hybscloud.com/kont].
//
// Routines are resumable computations that yield operations instead of
// performing side effects. A [Runtime] resolves every yielded operation by
// dispatching it through a chain of handlers contributed by plugins.
//
// # Architecture
//
//   - Dispatch: Operations carry a namespaced kind ("@ns/name"). Handlers of one kind form a chain in plugin order; a handler may [Delegate] to the next one.
//   - Stack: Each run is an explicit stack of computations stepped with [code.hybscloud.com/kont.Step]. Nested [Call]s and handler bodies push frames; nothing recurses on the Go stack.
//   - Scheduling: Runs of one runtime share a serial executor and interleave only at suspension points. Blocked operations park the run and resume through a [Resolve].
//   - Channels: Buffered and rendezvous channels backed by bounded [code.hybscloud.com/lfq] rings, with FIFO wait queues and a randomized [Select].
//   - Errors: Failures unwind frame by frame. [Attempt] and [Catch] recover locally via [code.hybscloud.com/kont.Either].
//
// # API Topologies
//
//   - Core: [Call], [Start], [Perform], [Do], [Attempt], [Catch], [Throw], [Delegate], [Await].
//   - Channels: [MakeChan], [Send], [Recv], [Close], [Range], [Select] with [Default].
//   - Context: [Get], [Set] on the [Context] a facade is bound to.
//   - Concurrency: [All], [AllSettled], [Batch], [Fork], [Join].
//   - Cont-world: [ChanBind], [SendThen], [RecvBind], [SelectBind], [Loop], [ForRange] and friends.
//   - Expr-world: [ExprSendThen], [ExprRecvBind], [ExprLoop] and friends. Bridge via [Reify], [Reflect] and [ExecuteExpr].
//
// # Integration
//
//   - Runs: [Runtime.Start], [Runtime.Call] and [Runtime.Execute] return a [*Future] after making as much progress as possible on the calling goroutine.
//   - Waiting: [Future.Poll] returns [code.hybscloud.com/iox.ErrWouldBlock] while a run is in flight; [Future.Await] waits with adaptive backoff.
//   - Extension: [WithPlugins] adds handlers and validators ahead of the built-ins.
//
// # Example
//
//	rt := spoon.Must(spoon.New())
//	pingPong := func(...any) kont.Eff[any] {
//		return spoon.ChanBind(0, func(ch spoon.Handle) kont.Eff[any] {
//			return kont.Then(
//				spoon.Perform(spoon.Fork{Operation: spoon.Send{Chan: ch, Value: "ping"}}),
//				spoon.Perform(spoon.Recv{Chan: ch}),
//			)
//		})
//	}
//	v, err := rt.Call(pingPong).Await(context.Background())
package spoon
