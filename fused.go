// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"code.hybscloud.com/kont"
)

// ChanBind allocates a channel and passes its handle to f.
// Fuses Do[Handle](MakeChan{}) + Bind.
func ChanBind[B any](capacity int, f func(Handle) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(Do[Handle](MakeChan{Capacity: capacity}), f)
}

// SendThen sends v on h and then continues with next.
// Fuses Perform(Send{}) + Then.
func SendThen[B any](h Handle, v any, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(Perform(Send{Chan: h, Value: v}), next)
}

// RecvBind receives a value from h and passes it to f.
// A closed and drained channel yields the zero value of T.
func RecvBind[T, B any](h Handle, f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(Do[T](Recv{Chan: h}), f)
}

// RecvOKBind receives from h and passes the value and the ok flag to f.
func RecvOKBind[T, B any](h Handle, f func(T, bool) kont.Eff[B]) kont.Eff[B] {
	op := Recv{Chan: h, Detail: true}
	return kont.Bind(Do[Received](op), func(r Received) kont.Eff[B] {
		v, err := as[T](op, r.Value)
		if err != nil {
			return Throw[B](err)
		}
		return f(v, r.OK)
	})
}

// CloseThen closes h and then continues with next.
func CloseThen[B any](h Handle, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(Perform(Close{Chan: h}), next)
}

// SelectBind waits on cases and passes the winning [Selected] to f.
func SelectBind[B any](f func(Selected) kont.Eff[B], cases ...Case) kont.Eff[B] {
	return kont.Bind(Do[Selected](Select{Cases: cases}), f)
}

// GetBind reads key from the context and passes the value to f.
// A missing key yields the zero value of T.
func GetBind[T, B any](key any, f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(Do[T](Get{Key: key}), f)
}

// SetThen writes key in the context and then continues with next.
func SetThen[B any](key, value any, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(Perform(Set{Key: key, Value: value}), next)
}

// CallBind calls routine with args and passes its result to f.
func CallBind[T, B any](routine Routine, f func(T) kont.Eff[B], args ...any) kont.Eff[B] {
	return kont.Bind(Do[T](Call{Routine: routine, Args: args}), f)
}
