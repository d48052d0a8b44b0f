// Package interpreter implements the Interpreter capability of spec §4.E:
// the fixed protocol between the ABI adapter and the embedded JS engine
// (initialize, export_start/call/finish, resource_dtor, call_import).
// Grounded on the teacher's internal/interp/interpreter.go lifecycle shape
// (a single struct holding engine + singleton state, exposing one method
// per lifecycle step) and its options.go interface-seam pattern.
package interpreter

import (
	"context"
	"fmt"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/componentize-go/jsc/internal/callctx"
	"github.com/componentize-go/jsc/internal/ident"
	"github.com/componentize-go/jsc/internal/jsvalue"
	"github.com/componentize-go/jsc/internal/logging"
)

// Interpreter holds the process-wide runtime singletons of spec §3: the
// engine handle, the WIT resolve/world (set exactly once), and the
// "current scope" re-entrancy guard. It is not safe for concurrent use —
// spec §5 guarantees a single host thread per component instance.
type Interpreter struct {
	engine     jsvalue.Engine
	dispatch   ImportDispatcher
	resourceDtor func(resourceType string, handle jsvalue.Handle)
	log        *zap.Logger

	resolve *wit.Resolve
	world   *wit.World
	inScope bool // re-entrant-call guard (spec §4.E "current engine scope")
}

// New constructs an Interpreter bound to opts' engine. It does not yet
// have a world; call Initialize before ExportStart/ExportCall.
func New(opts Options) *Interpreter {
	return &Interpreter{
		engine:       opts.GetEngine(),
		dispatch:     opts.GetImportDispatcher(),
		resourceDtor: opts.GetResourceDtor(),
		log:          logging.L(),
	}
}

// Initialize sets the world singleton and wires every import onto
// globals (spec §4.E). A second call is a programming error — the WIT
// singleton is set exactly once (spec §3) — and panics as an
// ABIProtocolError rather than returning, matching internal/marshal's
// treatment of generated-adapter bugs.
func (ip *Interpreter) Initialize(resolve *wit.Resolve, world *wit.World) {
	if ip.world != nil {
		panic(fmt.Errorf("interpreter: ABI protocol error: Initialize called twice"))
	}
	ip.resolve = resolve
	ip.world = world
	ip.log.Debug("initializing interpreter", zap.String("world", world.Name))
	ip.bindImports(world)
}

// ExportStart begins a new call context for invoking an export function
// (spec §4.E "export_start(func) -> new call context"). The context's
// host-dealloc callback is nil here: registering a deferred free
// (cx.Defer) against actual guest linear memory is the generated
// adapter's job (spec §4.G, external), never this interpreter's — cx is
// handed to that adapter code as-is for the duration of the call.
func (ip *Interpreter) ExportStart() *callctx.Context {
	return callctx.New(ip.engine, nil)
}

// ExportCall looks up the guest function named by fn's lower-camel-case
// name, drains cx into positional arguments in declaration order, invokes
// it, and — if fn declares a result — pushes the return value back onto
// cx (spec §4.E "export_call").
//
// The re-entrant-scope guard follows spec §4.E: the first entrant installs
// the guard, nested calls (import calls made from within this export) reuse
// it, and the first entrant clears it on exit. Safe without a mutex under
// the single-threaded execution model of spec §5.
func (ip *Interpreter) ExportCall(ctx context.Context, fn *wit.Function, cx *callctx.Context) error {
	topLevel := !ip.inScope
	if topLevel {
		ip.inScope = true
		defer func() { ip.inScope = false }()
	}

	name := ident.ToLowerCamel(fn.Name)
	guestFn, ok := ip.engine.GetGlobal(name)
	if !ok {
		return fmt.Errorf("interpreter: export %q not found on globals", name)
	}

	n := len(fn.Params)
	args := make([]jsvalue.Handle, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = cx.Pop()
	}

	result, err := ip.engine.CallFunction(ctx, guestFn, jsvalue.Undefined, args)
	if err != nil {
		return fmt.Errorf("interpreter: calling export %q: %w", name, err)
	}
	if len(fn.Results) > 0 {
		cx.Push(result)
	}
	return nil
}

// ExportFinish destroys cx, triggering its deferred frees exactly once
// (spec §4.E "export_finish").
func (ip *Interpreter) ExportFinish(cx *callctx.Context) {
	cx.Close()
}

// ResourceDtor runs the configured resource-destructor hook, or does
// nothing if none was configured (spec §4.E default no-op).
func (ip *Interpreter) ResourceDtor(resourceType string, handle jsvalue.Handle) {
	if ip.resourceDtor != nil {
		ip.resourceDtor(resourceType, handle)
	}
}

// CallImport implements the guest-to-host direction (spec §4.E
// "call_import"): constructs a fresh call context, pushes args in reverse,
// delegates to the adapter's synchronous import dispatcher, and returns
// the top-of-stack value (or undefined if the import has no result).
func (ip *Interpreter) CallImport(index int, args []jsvalue.Handle) (jsvalue.Handle, error) {
	if ip.dispatch == nil {
		return jsvalue.Undefined, fmt.Errorf("interpreter: call_import invoked on a world with no imports")
	}
	// Same nil host-dealloc rationale as ExportStart: this context never
	// registers guest-memory frees itself.
	cx := callctx.New(ip.engine, nil)
	defer cx.Close()

	for i := len(args) - 1; i >= 0; i-- {
		cx.Push(args[i])
	}
	if err := ip.dispatch(index, cx); err != nil {
		return jsvalue.Undefined, err
	}
	if cx.Len() == 0 {
		return jsvalue.Undefined, nil
	}
	return cx.Pop(), nil
}
