// Package callctx implements the per-call value stack, temporary string
// arena, and deferred-allocation list shared by every marshaling
// operation in a single in-flight call (spec §3 "Call context", §4.C).
package callctx

import (
	"fmt"

	"github.com/componentize-go/jsc/internal/jsvalue"
)

// DeferredFree is one registered host allocation awaiting release, in
// the (pointer, size, alignment) shape spec §3 requires.
type DeferredFree struct {
	Ptr   uint32
	Size  uint32
	Align uint32
}

// Context is the per-call scratch state described in spec §3. A Context
// must never be observed across a call boundary: create one with New,
// use it for the duration of a single export/import call, then Close it.
type Context struct {
	engine  jsvalue.Engine
	stack   []jsvalue.Handle
	strings []*string
	frees   []DeferredFree
	free    func(DeferredFree)
	closed  bool
}

// New creates an empty call context bound to engine. free is invoked once
// per registered deallocation when the context is Closed; it may be nil
// if the caller never registers one via Defer — as internal/interpreter
// does, since only adapter-generated code (spec §4.G, external) actually
// owns guest linear memory and calls Defer against it.
func New(engine jsvalue.Engine, free func(DeferredFree)) *Context {
	return &Context{engine: engine, free: free}
}

// Push places a value handle on top of the stack.
func (c *Context) Push(h jsvalue.Handle) {
	c.stack = append(c.stack, h)
}

// Pop removes and returns the topmost value handle. Popping past the
// bottom of the stack is a programming error in a generated adapter and
// is therefore fatal (spec §4.C, §7 ABIProtocolError), never surfaced to
// the guest as a regular error.
func (c *Context) Pop() jsvalue.Handle {
	n := len(c.stack)
	if n == 0 {
		panic(fmt.Errorf("callctx: stack underflow"))
	}
	h := c.stack[n-1]
	c.stack = c.stack[:n-1]
	return h
}

// Len reports the current stack depth (spec invariant 3: never negative
// by construction, since Pop panics instead of underflowing).
func (c *Context) Len() int {
	return len(c.stack)
}

// Keep copies s into the context's temporary string arena and returns a
// pointer to the stored copy, stable for the remainder of the context's
// lifetime (spec §3 "Temporary strings outlive any reference handed out
// during the same call"). Each kept string is individually heap-allocated
// so that growing the arena never invalidates a pointer returned earlier.
func (c *Context) Keep(s string) *string {
	p := new(string)
	*p = s
	c.strings = append(c.strings, p)
	return p
}

// Defer registers a host allocation to be released exactly once when the
// context is closed, regardless of whether the call succeeds or traps.
func (c *Context) Defer(d DeferredFree) {
	c.frees = append(c.frees, d)
}

// Close releases every deferred allocation in insertion order (spec
// invariant 2 and 3). Close is idempotent: a second call is a no-op, so
// defer-and-explicit-close patterns never double-free.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, d := range c.frees {
		if c.free != nil {
			c.free(d)
		}
	}
	c.frees = nil
}
