// Package component defines the externalized contract for the
// canonical-ABI component linker and WIT-binary codec (spec §1's "the
// canonical-ABI component linker" is explicitly an external collaborator,
// "referenced only by contract"). internal/link and internal/stubwasi
// depend only on Codec, never on a concrete encoder/decoder.
package component

import "go.bytecodealliance.org/wit"

// Module is a compiled WebAssembly core module: raw bytes plus the
// resolved WIT world metadata embedded in its custom section.
type Module struct {
	Bytes []byte
	World *wit.World
}

// Codec is the seam between this module and a real component-model
// encoder/decoder (e.g. a wasm-tools-go-backed implementation). It covers
// exactly the four operations the linker and the WASI-stub composer need:
// decode an embedded world, assemble a component from constituent core
// modules, compose two components along an import/export graph, and
// synthesize a trapping dummy core module.
type Codec interface {
	// DecodeWorld extracts the resolved WIT world embedded in a component's
	// custom section (spec §4.I step 1).
	DecodeWorld(componentBytes []byte) (*wit.World, error)

	// EncodeComponent assembles one or more linked core modules plus their
	// resolved imports/exports into a single component binary (spec §4.H
	// link phase, and spec §4.I step 4's "dummy core module").
	EncodeComponent(modules []Module, resolve *wit.Resolve, world *wit.World) ([]byte, error)

	// Compose plugs stub's exports into target's matching imports and
	// re-encodes the result as a single component (spec §4.I step 5).
	Compose(target, stub []byte) ([]byte, error)

	// DummyModule synthesizes a core module exporting one function per
	// export in stubWorld, each of which traps as soon as it is called
	// (spec §4.I step 4's "dummy core module whose function bodies trap
	// on entry", mirroring wit_component::dummy_module). Producing real,
	// loadable core-module bytecode from a WIT signature is itself an
	// external component-encoding concern, not something internal/
	// stubwasi can synthesize by hand.
	DummyModule(stubWorld *wit.World) ([]byte, error)
}
