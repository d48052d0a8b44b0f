// Package jsvaluetest provides an in-memory jsvalue.Engine test double so
// internal/marshal, internal/interpreter, and internal/initentry can be
// exercised without the real embedded JS engine, which is an external
// collaborator (spec §1).
package jsvaluetest

import (
	"context"
	"fmt"

	"github.com/componentize-go/jsc/internal/jsvalue"
)

type cell struct {
	kind string // "bool", "number", "string", "null", "undefined", "object", "array", "function"
	b    bool
	n    float64
	s    string
	obj  map[string]jsvalue.Handle
	arr  []jsvalue.Handle
	fn   func(ctx context.Context, this jsvalue.Handle, args []jsvalue.Handle) (jsvalue.Handle, error)
}

// Engine is a deterministic, single-threaded jsvalue.Engine backed by a
// plain Go slice of cells, indexed by Handle.
type Engine struct {
	cells   []cell
	globals map[string]jsvalue.Handle
}

// New creates an empty fake engine. Handle 0 is reserved for undefined.
func New() *Engine {
	e := &Engine{
		cells:   []cell{{kind: "undefined"}},
		globals: make(map[string]jsvalue.Handle),
	}
	return e
}

// RegisterFunction installs a host-observable guest function under name,
// used by tests to stand in for the JS source's exported functions.
func (e *Engine) RegisterFunction(name string, fn func(ctx context.Context, this jsvalue.Handle, args []jsvalue.Handle) (jsvalue.Handle, error)) {
	e.globals[name] = e.NewHostFunction(fn)
}

// NewHostFunction implements jsvalue.Engine.
func (e *Engine) NewHostFunction(fn jsvalue.HostFunc) jsvalue.Handle {
	return e.alloc(cell{kind: "function", fn: fn})
}

func (e *Engine) alloc(c cell) jsvalue.Handle {
	e.cells = append(e.cells, c)
	return jsvalue.Handle(len(e.cells) - 1)
}

func (e *Engine) cell(h jsvalue.Handle) *cell {
	if int(h) >= len(e.cells) {
		return &e.cells[0]
	}
	return &e.cells[h]
}

func (e *Engine) Eval(ctx context.Context, js string) error { return nil }

func (e *Engine) NewBool(v bool) jsvalue.Handle     { return e.alloc(cell{kind: "bool", b: v}) }
func (e *Engine) NewNumber(v float64) jsvalue.Handle { return e.alloc(cell{kind: "number", n: v}) }
func (e *Engine) NewString(s string) jsvalue.Handle { return e.alloc(cell{kind: "string", s: s}) }
func (e *Engine) NewNull() jsvalue.Handle           { return e.alloc(cell{kind: "null"}) }
func (e *Engine) NewUndefined() jsvalue.Handle      { return jsvalue.Undefined }

func (e *Engine) NewObject() jsvalue.Handle {
	return e.alloc(cell{kind: "object", obj: make(map[string]jsvalue.Handle)})
}

func (e *Engine) NewArray() jsvalue.Handle {
	return e.alloc(cell{kind: "array"})
}

func (e *Engine) Bool(h jsvalue.Handle) (bool, bool) {
	c := e.cell(h)
	return c.b, c.kind == "bool"
}

func (e *Engine) Number(h jsvalue.Handle) (float64, bool) {
	c := e.cell(h)
	return c.n, c.kind == "number"
}

func (e *Engine) String(h jsvalue.Handle) (string, bool) {
	c := e.cell(h)
	return c.s, c.kind == "string"
}

func (e *Engine) IsNullish(h jsvalue.Handle) bool {
	k := e.cell(h).kind
	return k == "null" || k == "undefined"
}

func (e *Engine) Get(obj jsvalue.Handle, key string) jsvalue.Handle {
	c := e.cell(obj)
	if c.obj == nil {
		return jsvalue.Undefined
	}
	if h, ok := c.obj[key]; ok {
		return h
	}
	return jsvalue.Undefined
}

func (e *Engine) Set(obj jsvalue.Handle, key string, v jsvalue.Handle) {
	c := &e.cells[obj]
	if c.obj == nil {
		c.obj = make(map[string]jsvalue.Handle)
	}
	c.obj[key] = v
}

func (e *Engine) ArrayPush(arr jsvalue.Handle, v jsvalue.Handle) {
	c := &e.cells[arr]
	c.arr = append(c.arr, v)
}

func (e *Engine) ArrayLen(arr jsvalue.Handle) int {
	return len(e.cell(arr).arr)
}

func (e *Engine) ArrayGet(arr jsvalue.Handle, i int) jsvalue.Handle {
	c := e.cell(arr)
	if i < 0 || i >= len(c.arr) {
		return jsvalue.Undefined
	}
	return c.arr[i]
}

func (e *Engine) Global() jsvalue.Handle {
	return e.alloc(cell{kind: "object", obj: e.globals})
}

func (e *Engine) GetGlobal(name string) (jsvalue.Handle, bool) {
	h, ok := e.globals[name]
	return h, ok
}

func (e *Engine) SetGlobal(name string, v jsvalue.Handle) {
	e.globals[name] = v
}

func (e *Engine) CallFunction(ctx context.Context, fn jsvalue.Handle, this jsvalue.Handle, args []jsvalue.Handle) (jsvalue.Handle, error) {
	c := e.cell(fn)
	if c.kind != "function" || c.fn == nil {
		return jsvalue.Undefined, fmt.Errorf("jsvaluetest: handle %d is not callable", fn)
	}
	return c.fn(ctx, this, args)
}

func (e *Engine) Release(h jsvalue.Handle) {
	// The fake engine never frees cells: its lifetime is one test.
}
