// Package initentry implements the fixed `init(js: string) -> result<_,
// string>` component export of spec §4.F: the dedicated entry point that
// evaluates the user's JavaScript source exactly once during
// pre-initialization, then resets any state that must not leak into the
// snapshot.
package initentry

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/componentize-go/jsc/internal/jsvalue"
)

// Resetter resets whatever adapter-internal or WASI-host state must not
// persist into the snapshot (spec §4.F step 3; spec §9.1's supplemented
// "preopen-table reset is explicit, not implicit"). Implemented by the
// WASI host and the adapter's runtime support, both external to this
// module — a nil Resetter makes Reset a no-op.
type Resetter interface {
	ResetPreopens()
	ResetAdapterState()
}

// Entry drives the one-shot "evaluated" flag. Implemented as an explicit
// CAS on an atomic.Bool rather than sync.Once: spec §4.F requires the
// *second* call to observe and report "already evaluated" as a typed
// error, which sync.Once cannot report back to its caller.
type Entry struct {
	engine    jsvalue.Engine
	resetter  Resetter
	evaluated atomic.Bool
}

// New constructs an Entry bound to engine. resetter may be nil if the
// embedding host has no WASI-side state to reset.
func New(engine jsvalue.Engine, resetter Resetter) *Entry {
	return &Entry{engine: engine, resetter: resetter}
}

// Init implements spec §4.F's three-step contract: atomically claim the
// "evaluated" transition, evaluate js, then reset state that must not
// leak into the snapshot. Evaluation panics from the engine are recovered
// and reported as an error, grounded on the teacher's
// callDWScriptFunctionSafe panic-to-error translation.
func (e *Entry) Init(ctx context.Context, js string) (err error) {
	if !e.evaluated.CompareAndSwap(false, true) {
		return fmt.Errorf("initentry: already evaluated")
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("initentry: panic evaluating source: %v", r)
		}
	}()

	if evalErr := e.engine.Eval(ctx, js); evalErr != nil {
		return fmt.Errorf("initentry: %w", evalErr)
	}

	e.Reset()
	return nil
}

// Reset clears WASI-side state that must not persist into the snapshot
// (spec §4.F step 3). Exposed separately so cerrors.InitError-producing
// callers can still reset state after a failed init (spec §4.H requires
// the snapshot to start clean regardless of how init concluded).
func (e *Entry) Reset() {
	if e.resetter == nil {
		return
	}
	e.resetter.ResetAdapterState()
	e.resetter.ResetPreopens()
}
