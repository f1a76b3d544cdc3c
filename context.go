// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"strconv"

	"code.hybscloud.com/kont"
)

// Context is the per-run key/value store.
//
// Routines reach it only through the [Get] and [Set] operations, so
// plugins may observe or virtualize context access. Handlers receive the
// Context directly and may keep private state in it under unexported key
// types.
//
// A Context is identity-addressed: [Runtime.WithContext] returns the same
// facade for the same Context. Channels made by its runs belong to it and
// are rejected by runs of other contexts; each channel is released with
// the last copy of its handle. The facade cache is released with the
// Context.
//
// A Context is not safe for concurrent use by runs of different runtimes.
type Context struct {
	serial  Serial
	values  map[any]any
	chans   *chanTable
	facades map[*engine]*Runtime
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{
		serial: nextContextSerial(),
		values: make(map[any]any),
	}
}

// Serial returns the allocation serial of the context.
func (c *Context) Serial() Serial {
	return c.serial
}

// Value returns the value stored under key.
func (c *Context) Value(key any) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// SetValue stores value under key.
func (c *Context) SetValue(key, value any) {
	c.values[key] = value
}

func (c *Context) String() string {
	return "context #" + strconv.FormatUint(uint64(c.serial), 10)
}

// channels returns the context's channel owner, creating it on first use.
func (c *Context) channels() *chanTable {
	if c.chans == nil {
		c.chans = newChanTable()
	}
	return c.chans
}

func contextPlugin() Plugin {
	return Plugin{
		Namespace: ContextNamespace,
		Handlers: map[string][]Handler{
			"get": {contextGet},
			"set": {contextSet},
		},
	}
}

func contextGet(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(Get)
	if !ok {
		return mismatched(op)
	}
	v, _ := ctx.Value(o.Key)
	return kont.Pure(v)
}

func contextSet(op Operation, ctx *Context) kont.Eff[any] {
	o, ok := op.(Set)
	if !ok {
		return mismatched(op)
	}
	ctx.SetValue(o.Key, o.Value)
	return kont.Pure[any](nil)
}
