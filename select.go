// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"fmt"

	"code.hybscloud.com/kont"
)

// selectCase is one non-default case of a Select, bound to its channel.
type selectCase struct {
	index int
	ch    *channel
	send  bool
	value any
	full  bool
}

// selectGroup collects the cases of one direction on one channel.
// A blocked Select registers one waiter per group.
type selectGroup struct {
	ch    *channel
	sends []selectCase
	recvs []selectCase
}

// pick returns a uniformly random element of cases.
// A single case is chosen without consuming randomness.
func (p *channels) pick(cases []selectCase) selectCase {
	if len(cases) == 1 {
		return cases[0]
	}
	return cases[p.e.rand.IntN(len(cases))]
}

func (p *channels) selectCases(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(Select)
	if !ok {
		return mismatched(op)
	}
	table := ctx.channels()
	cases := make([]selectCase, 0, len(o.Cases))
	def := -1
	for i, c := range o.Cases {
		switch c := c.(type) {
		case Send:
			ch, err := table.lookup("select send", c.Chan)
			if err != nil {
				return Throw[any](err)
			}
			cases = append(cases, selectCase{index: i, ch: ch, send: true, value: c.Value})
		case Recv:
			ch, err := table.lookup("select recv", c.Chan)
			if err != nil {
				return Throw[any](err)
			}
			cases = append(cases, selectCase{index: i, ch: ch, full: c.Detail})
		case Default:
			def = i
		default:
			return Throw[any](fmt.Errorf("spoon: unknown select case %T", c))
		}
	}

	ready := make([]selectCase, 0, len(cases))
	for _, c := range cases {
		if !c.send {
			if c.ch.recvReady() {
				ready = append(ready, c)
			}
			continue
		}
		ok, err := c.ch.sendReady()
		if err != nil {
			return Throw[any](err)
		}
		if ok {
			ready = append(ready, c)
		}
	}
	if len(ready) > 0 {
		return p.complete(p.pick(ready))
	}
	if def >= 0 {
		return kont.Pure[any](Selected{Index: def})
	}
	return Await(func(resolve Resolve) {
		p.block(cases, resolve)
	})
}

// complete performs a ready case synchronously.
func (p *channels) complete(c selectCase) kont.Eff[any] {
	if c.send {
		if err := c.ch.trySend(c.value); err != nil {
			return Throw[any](err)
		}
		return kont.Pure[any](Selected{Index: c.index})
	}
	r, err := c.ch.tryRecv()
	if err != nil {
		return Throw[any](err)
	}
	return kont.Pure[any](Selected{Index: c.index, Value: detail(r, c.full)})
}

// block registers the waiters of a Select with no ready case.
// The first waiter to fire marks the shared selection, cancelling its
// siblings, and picks among the cases of its own group.
func (p *channels) block(cases []selectCase, resolve Resolve) {
	var groups []*selectGroup
	byChan := make(map[*channel]*selectGroup)
	for _, c := range cases {
		g, ok := byChan[c.ch]
		if !ok {
			g = &selectGroup{ch: c.ch}
			byChan[c.ch] = g
			groups = append(groups, g)
		}
		if c.send {
			g.sends = append(g.sends, c)
		} else {
			g.recvs = append(g.recvs, c)
		}
	}

	sel := &selection{}
	for _, g := range groups {
		if len(g.sends) > 0 {
			sends := g.sends
			g.ch.sendq.push(&waiter{sel: sel, give: func() any {
				sel.fired = true
				c := p.pick(sends)
				resolve(Selected{Index: c.index}, nil)
				return c.value
			}})
		}
		if len(g.recvs) > 0 {
			recvs := g.recvs
			g.ch.recvq.push(&waiter{sel: sel, take: func(v any, ok bool) {
				sel.fired = true
				c := p.pick(recvs)
				resolve(Selected{Index: c.index, Value: detail(Received{Value: v, OK: ok}, c.full)}, nil)
			}})
		}
	}
}
