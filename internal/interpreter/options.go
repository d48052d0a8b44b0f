package interpreter

import (
	"github.com/componentize-go/jsc/internal/callctx"
	"github.com/componentize-go/jsc/internal/jsvalue"
)

// ImportDispatcher performs the guest-to-host direction of spec §4.E's
// call_import: given the resolved import index, it must pop that import's
// parameters off cx and, if the import has a result, push it back.
// Supplied by the adapter generator's runtime support (component G,
// external); this module only defines the seam.
type ImportDispatcher func(index int, cx *callctx.Context) error

// Options configures an Interpreter through an interface, following the
// seam shape of the teacher's internal/interp/options.go. The embedder
// supplies the concrete type; in this module only the tests implement it
// (internal/interpreter's and pkg/componentize's test options structs).
type Options interface {
	// GetEngine returns the JS value engine to bind globals against.
	GetEngine() jsvalue.Engine

	// GetImportDispatcher returns the host-side import dispatch function,
	// or nil if the world declares no imports.
	GetImportDispatcher() ImportDispatcher

	// GetResourceDtor returns the resource-destructor hook, or nil for the
	// spec §4.E default no-op.
	GetResourceDtor() func(resourceType string, handle jsvalue.Handle)
}
