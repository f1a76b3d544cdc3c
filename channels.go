// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// channels implements the channel operations on the contexts' channel
// tables. Synchronous completions go through trySend/tryRecv; anything
// that returns iox.ErrWouldBlock parks on the channel's wait queues.
type channels struct {
	e *engine
}

func channelsPlugin(e *engine) Plugin {
	p := &channels{e: e}
	return Plugin{
		Namespace: ChannelsNamespace,
		Handlers: map[string][]Handler{
			KindStart: {p.start},
			"chan":    {p.makeChan},
			"send":    {p.send},
			"recv":    {p.recv},
			"close":   {p.close},
			"range":   {p.rangeChan},
			"select":  {p.selectCases},
		},
	}
}

// start installs the context's channel table and hands the run on.
func (p *channels) start(op Operation, ctx *Context) kont.Eff[any] {
	ctx.channels()
	return Delegate(op)
}

func (p *channels) makeChan(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(MakeChan)
	if !ok {
		return mismatched(op)
	}
	if o.Capacity < 0 || o.Capacity > MaxChanCapacity {
		return Throw[any](&ChannelStateError{Op: "chan", Err: ErrInvalidCapacity})
	}
	return kont.Pure[any](ctx.channels().alloc(o.Capacity))
}

func (p *channels) send(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(Send)
	if !ok {
		return mismatched(op)
	}
	ch, err := ctx.channels().lookup("send", o.Chan)
	if err != nil {
		return Throw[any](err)
	}
	if err := ch.trySend(o.Value); !iox.IsWouldBlock(err) {
		if err != nil {
			return Throw[any](err)
		}
		return kont.Pure[any](nil)
	}
	return Await(func(resolve Resolve) {
		ch.sendq.push(&waiter{give: func() any {
			resolve(nil, nil)
			return o.Value
		}})
	})
}

// receive completes a receive on ch, parking when nothing is available.
func receive(ch *channel) kont.Eff[Received] {
	if r, err := ch.tryRecv(); !iox.IsWouldBlock(err) {
		return kont.Pure(r)
	}
	return kont.Map(Await(func(resolve Resolve) {
		ch.recvq.push(&waiter{take: func(v any, ok bool) {
			resolve(Received{Value: v, OK: ok}, nil)
		}})
	}), func(v any) Received {
		return v.(Received)
	})
}

func (p *channels) recv(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(Recv)
	if !ok {
		return mismatched(op)
	}
	ch, err := ctx.channels().lookup("recv", o.Chan)
	if err != nil {
		return Throw[any](err)
	}
	return kont.Map(receive(ch), func(r Received) any {
		return detail(r, o.Detail)
	})
}

// detail shapes a receive outcome for a Recv with the given Detail flag.
func detail(r Received, full bool) any {
	if full {
		return r
	}
	return r.Value
}

func (p *channels) close(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(Close)
	if !ok {
		return mismatched(op)
	}
	ch, err := ctx.channels().lookup("close", o.Chan)
	if err != nil {
		return Throw[any](err)
	}
	if err := ch.close(); err != nil {
		return Throw[any](err)
	}
	return kont.Pure[any](nil)
}

func (p *channels) rangeChan(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(Range)
	if !ok {
		return mismatched(op)
	}
	if _, err := ctx.channels().lookup("range", o.Chan); err != nil {
		return Throw[any](err)
	}
	return kont.Pure[any](&Iterator{ch: o.Chan})
}
