package interpreter_test

import (
	"context"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/componentize-go/jsc/internal/callctx"
	"github.com/componentize-go/jsc/internal/interpreter"
	"github.com/componentize-go/jsc/internal/jsvalue"
	"github.com/componentize-go/jsc/internal/jsvalue/jsvaluetest"
)

type testOptions struct {
	engine   jsvalue.Engine
	dispatch interpreter.ImportDispatcher
}

func (o testOptions) GetEngine() jsvalue.Engine                  { return o.engine }
func (o testOptions) GetImportDispatcher() interpreter.ImportDispatcher { return o.dispatch }
func (o testOptions) GetResourceDtor() func(string, jsvalue.Handle) { return nil }

// TestExportCallRoundTrip covers spec §8 end-to-end scenario 1: a simple
// add(a,b) export invoked through the Interpreter lifecycle.
func TestExportCallRoundTrip(t *testing.T) {
	eng := jsvaluetest.New()
	eng.RegisterFunction("add", func(ctx context.Context, this jsvalue.Handle, args []jsvalue.Handle) (jsvalue.Handle, error) {
		a, _ := eng.Number(args[0])
		b, _ := eng.Number(args[1])
		return eng.NewNumber(a + b), nil
	})

	ip := interpreter.New(testOptions{engine: eng})
	world := &wit.World{Name: "test", Imports: map[string]wit.WorldItem{}, Exports: map[string]wit.WorldItem{}}
	ip.Initialize(&wit.Resolve{}, world)

	fn := &wit.Function{Name: "add", Params: []wit.Param{{Name: "a", Type: wit.U32{}}, {Name: "b", Type: wit.U32{}}}, Results: []wit.Param{{Type: wit.U32{}}}}

	cx := ip.ExportStart()
	cx.Push(eng.NewNumber(2))
	cx.Push(eng.NewNumber(3))
	if err := ip.ExportCall(context.Background(), fn, cx); err != nil {
		t.Fatalf("ExportCall: %v", err)
	}
	if cx.Len() != 1 {
		t.Fatalf("stack depth after ExportCall = %d, want 1", cx.Len())
	}
	result := cx.Pop()
	n, ok := eng.Number(result)
	if !ok || n != 5 {
		t.Fatalf("add(2,3) = %v, want 5", n)
	}
	ip.ExportFinish(cx)
}

// TestInitializeTwiceIsProtocolError exercises spec §3's "subsequent sets
// are a programming error."
func TestInitializeTwiceIsProtocolError(t *testing.T) {
	eng := jsvaluetest.New()
	ip := interpreter.New(testOptions{engine: eng})
	world := &wit.World{Name: "test", Imports: map[string]wit.WorldItem{}, Exports: map[string]wit.WorldItem{}}
	ip.Initialize(&wit.Resolve{}, world)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second Initialize")
		}
	}()
	ip.Initialize(&wit.Resolve{}, world)
}

// TestCallImportDispatches exercises spec §4.E call_import: arguments are
// pushed in reverse, the dispatcher pops them in forward order, and the
// result is returned from the top of the stack.
func TestCallImportDispatches(t *testing.T) {
	eng := jsvaluetest.New()
	var gotIndex int
	var gotArgs []float64
	dispatch := func(index int, cx *callctx.Context) error {
		gotIndex = index
		for cx.Len() > 0 {
			n, _ := eng.Number(cx.Pop())
			gotArgs = append(gotArgs, n)
		}
		cx.Push(eng.NewNumber(42))
		return nil
	}

	ip := interpreter.New(testOptions{engine: eng, dispatch: dispatch})
	world := &wit.World{Name: "test", Imports: map[string]wit.WorldItem{}, Exports: map[string]wit.WorldItem{}}
	ip.Initialize(&wit.Resolve{}, world)

	result, err := ip.CallImport(3, []jsvalue.Handle{eng.NewNumber(1), eng.NewNumber(2)})
	if err != nil {
		t.Fatalf("CallImport: %v", err)
	}
	if gotIndex != 3 {
		t.Fatalf("dispatcher index = %d, want 3", gotIndex)
	}
	if len(gotArgs) != 2 || gotArgs[0] != 1 || gotArgs[1] != 2 {
		t.Fatalf("dispatcher args = %v, want [1 2]", gotArgs)
	}
	n, ok := eng.Number(result)
	if !ok || n != 42 {
		t.Fatalf("CallImport result = %v, want 42", n)
	}
}
