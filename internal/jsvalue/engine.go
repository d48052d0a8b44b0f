// Package jsvalue defines the contract for the embedded JavaScript value
// engine (spec §2 component B). The real engine — the guest-side JS
// interpreter compiled to a WebAssembly shared library — is an external
// collaborator (spec §1); this package only describes the minimal value
// API the marshaling core and interpreter binding are built against.
package jsvalue

import "context"

// Handle is an opaque, engine-issued persistent reference to a guest JS
// value. Handles are only meaningful within the Engine that issued them
// and must never be compared across engine instances.
type Handle uint64

// Undefined is the handle value an Engine must return for the JS
// `undefined` value wherever one is needed and none was supplied.
const Undefined Handle = 0

// HostFunc is a host-implemented function exposed to the guest as a
// callable JS value (spec §4.E "initialize ... one callable per import
// function").
type HostFunc func(ctx context.Context, this Handle, args []Handle) (Handle, error)

// Engine is the capability surface this module requires from the guest
// JavaScript engine: creating and inspecting values, evaluating source,
// and invoking guest functions. It intentionally does not expose garbage
// collection, debugging, or module-loading controls — those are the
// engine's own concern.
type Engine interface {
	// Eval parses and evaluates js in the global scope. Called exactly
	// once, by internal/initentry.
	Eval(ctx context.Context, js string) error

	// NewBool, NewNumber, NewString, NewNull, NewUndefined construct a
	// fresh persistent handle for a host-side scalar.
	NewBool(v bool) Handle
	NewNumber(v float64) Handle
	NewString(s string) Handle
	NewNull() Handle
	NewUndefined() Handle

	// NewObject and NewArray construct an empty guest object/array.
	NewObject() Handle
	NewArray() Handle

	// Bool, Number, String read back a scalar handle's value. ok is
	// false if the handle does not hold a value of that JS type.
	Bool(h Handle) (v bool, ok bool)
	Number(h Handle) (v float64, ok bool)
	String(h Handle) (v string, ok bool)

	// IsNullish reports whether h is JS `null` or `undefined` — the
	// canonical "none" representation for option<T> (spec §4.D).
	IsNullish(h Handle) bool

	// Get and Set read/write a named property of a guest object.
	Get(obj Handle, key string) Handle
	Set(obj Handle, key string, v Handle)

	// ArrayPush appends v to the end of arr. ArrayLen and ArrayGet read
	// a guest array back.
	ArrayPush(arr Handle, v Handle)
	ArrayLen(arr Handle) int
	ArrayGet(arr Handle, i int) Handle

	// Global returns the handle for the JS global object.
	Global() Handle

	// GetGlobal and SetGlobal install or look up a top-level global
	// binding (spec §3 "Interface-qualified imports are exposed ... as
	// globals").
	GetGlobal(name string) (Handle, bool)
	SetGlobal(name string, v Handle)

	// CallFunction invokes fn (a guest function value) with thisArg
	// bound to `this` and args as positional arguments, in declaration
	// order (spec invariant 4).
	CallFunction(ctx context.Context, fn Handle, thisArg Handle, args []Handle) (Handle, error)

	// Release drops the engine's reference to a persistent handle once
	// the owning call context no longer needs it (spec §3 invariant 2).
	Release(h Handle)

	// NewHostFunction creates a guest-callable function value backed by a
	// host implementation, used to expose import functions on globals.
	NewHostFunction(fn HostFunc) Handle
}
