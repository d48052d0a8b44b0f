package callctx

import (
	"testing"

	"github.com/componentize-go/jsc/internal/jsvalue"
	"github.com/componentize-go/jsc/internal/jsvalue/jsvaluetest"
)

func TestPushPopLIFO(t *testing.T) {
	e := jsvaluetest.New()
	cx := New(e, nil)

	a := e.NewNumber(1)
	b := e.NewNumber(2)
	cx.Push(a)
	cx.Push(b)

	if got := cx.Pop(); got != b {
		t.Fatalf("Pop() = %v, want %v (LIFO)", got, b)
	}
	if got := cx.Pop(); got != a {
		t.Fatalf("Pop() = %v, want %v (LIFO)", got, a)
	}
	if cx.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", cx.Len())
	}
}

func TestPopUnderflowPanics(t *testing.T) {
	cx := New(jsvaluetest.New(), nil)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on stack underflow")
		}
	}()
	cx.Pop()
}

func TestCloseFreesExactlyOnceInOrder(t *testing.T) {
	var released []DeferredFree
	cx := New(jsvaluetest.New(), func(d DeferredFree) {
		released = append(released, d)
	})

	cx.Defer(DeferredFree{Ptr: 10, Size: 4, Align: 4})
	cx.Defer(DeferredFree{Ptr: 20, Size: 8, Align: 8})

	cx.Close()
	cx.Close() // idempotent

	if len(released) != 2 {
		t.Fatalf("released %d allocations, want 2 (no double free)", len(released))
	}
	if released[0].Ptr != 10 || released[1].Ptr != 20 {
		t.Fatalf("released out of insertion order: %+v", released)
	}
}

func TestKeepStableAcrossFurtherKeeps(t *testing.T) {
	cx := New(jsvaluetest.New(), nil)
	p1 := cx.Keep("hello")
	cx.Keep("world")
	if *p1 != "hello" {
		t.Fatalf("first Keep pointer corrupted: %q", *p1)
	}
}

var _ = jsvalue.Undefined
