package initentry_test

import (
	"context"
	"testing"

	"github.com/componentize-go/jsc/internal/initentry"
	"github.com/componentize-go/jsc/internal/jsvalue/jsvaluetest"
)

type fakeResetter struct {
	preopens, adapter int
}

func (f *fakeResetter) ResetPreopens()     { f.preopens++ }
func (f *fakeResetter) ResetAdapterState() { f.adapter++ }

func TestInitEvaluatesAndResetsOnce(t *testing.T) {
	eng := jsvaluetest.New()
	r := &fakeResetter{}
	e := initentry.New(eng, r)

	if err := e.Init(context.Background(), "function add(a,b){return a+b}"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if r.preopens != 1 || r.adapter != 1 {
		t.Fatalf("reset counts = (%d,%d), want (1,1)", r.adapter, r.preopens)
	}
}

// TestDoubleInitReturnsError exercises spec §4.F step 1: double-init is
// an error, not a panic, on the *second* call.
func TestDoubleInitReturnsError(t *testing.T) {
	eng := jsvaluetest.New()
	e := initentry.New(eng, nil)

	if err := e.Init(context.Background(), "var x = 1;"); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if err := e.Init(context.Background(), "var x = 1;"); err == nil {
		t.Fatal("expected error on second Init")
	}
}
