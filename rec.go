// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"code.hybscloud.com/kont"
)

// Iterator yields the values received from a channel until it is
// closed and drained. Obtain one with a [Range] operation.
type Iterator struct {
	ch   Handle
	done bool
}

// Chan returns the channel the iterator reads.
func (it *Iterator) Chan() Handle {
	return it.ch
}

// Done reports whether the iterator has observed the closed channel.
func (it *Iterator) Done() bool {
	return it.done
}

// Next receives the next value. The result has OK false once the
// channel is closed and drained; after that Next does not receive again.
func (it *Iterator) Next() kont.Eff[Received] {
	if it.done {
		return kont.Pure(Received{})
	}
	return kont.Map(Do[Received](Recv{Chan: it.ch, Detail: true}), func(r Received) Received {
		if !r.OK {
			it.done = true
		}
		return r
	})
}

// Loop runs a recursive computation.
// step returns Left(nextState) to continue or Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return kont.Pure(right)
	})
}

// ForRange calls body with every value received from h until h is
// closed and drained.
func ForRange(h Handle, body func(v any) kont.Eff[any]) kont.Eff[any] {
	return kont.Bind(Do[*Iterator](Range{Chan: h}), func(it *Iterator) kont.Eff[any] {
		return Loop(it, func(it *Iterator) kont.Eff[kont.Either[*Iterator, any]] {
			return kont.Bind(it.Next(), func(r Received) kont.Eff[kont.Either[*Iterator, any]] {
				if !r.OK {
					return kont.Pure(kont.Right[*Iterator, any](nil))
				}
				return kont.Map(body(r.Value), func(any) kont.Either[*Iterator, any] {
					return kont.Left[*Iterator, any](it)
				})
			})
		})
	})
}
