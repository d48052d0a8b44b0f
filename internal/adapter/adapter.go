// Package adapter defines the consumer-side contract for the adapter
// generator (spec §2 component G), which is explicitly out of scope per
// spec §1 ("Adapter generator (external)"). internal/link and
// pkg/componentize depend only on this contract, never on a concrete
// generator implementation.
package adapter

import "go.bytecodealliance.org/wit"

// Spec is a resolved WIT world plus the embedded component-type metadata
// blob a generator would produce from it (spec §4.H "The embedded metadata
// step places the world type information inside the adapter module").
type Spec struct {
	Resolve  *wit.Resolve
	World    *wit.World
	Metadata []byte
}

// Module is a compiled, type-specific ABI glue module: core-module bytes
// plus the typed import/export signature table the linker validates
// against (spec §4.H).
type Module struct {
	Bytes   []byte
	Imports []Signature
	Exports []Signature
}

// Signature describes one canonical-ABI-facing function the adapter
// exposes or consumes.
type Signature struct {
	Name      string
	Interface string // "" for unqualified imports/exports
	Params    []wit.Type
	Result    wit.Type // nil if the function returns nothing
}

// Generator produces a type-specific ABI glue module from a resolved WIT
// world (spec §2 component G). Never implemented in this module; wired
// only as a test double in pkg/componentize/build_test.go.
type Generator interface {
	Generate(spec Spec) (Module, error)
}
