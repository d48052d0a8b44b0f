package interpreter

import (
	"context"
	"sort"
	"strconv"

	"go.bytecodealliance.org/wit"

	"github.com/componentize-go/jsc/internal/ident"
	"github.com/componentize-go/jsc/internal/jsvalue"
	"github.com/componentize-go/jsc/internal/witload"
)

// bindImports implements spec §4.E initialize's global-object wiring:
// one sub-object per interface-qualified import (flags/enum sub-objects
// plus one callable per import function), bound under both the bare and
// versioned qualified names, with unqualified imports flattened directly
// into globals. Import indices are assigned deterministically by sorting
// world.Imports' keys, since go.bytecodealliance.org/wit's resolved World
// does not itself carry an explicit per-function index.
func (ip *Interpreter) bindImports(world *wit.World) {
	next := 0

	keys := make([]string, 0, len(world.Imports))
	for k := range world.Imports {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch it := world.Imports[key].(type) {
		case *wit.Function:
			ip.engine.SetGlobal(ident.ToLowerCamel(it.Name), ip.bindFunction(&next, it))
		case *wit.Interface:
			obj := ip.buildInterfaceObject(&next, it)
			bare, _, err := witload.QualifiedName(key)
			if err != nil {
				bare = key
			}
			ip.engine.SetGlobal(bare, obj)
			ip.engine.SetGlobal(key, obj)
		}
	}
}

func (ip *Interpreter) buildInterfaceObject(next *int, iface *wit.Interface) jsvalue.Handle {
	obj := ip.engine.NewObject()

	typeNames := make([]string, 0, len(iface.TypeDefs))
	for n := range iface.TypeDefs {
		typeNames = append(typeNames, n)
	}
	sort.Strings(typeNames)
	for _, n := range typeNames {
		td := iface.TypeDefs[n]
		switch k := td.Kind.(type) {
		case *wit.Enum:
			ip.engine.Set(obj, ident.ToUpperCamel(n), ip.buildEnumObject(k))
		case *wit.Flags:
			ip.engine.Set(obj, ident.ToUpperCamel(n), ip.buildFlagsObject(k))
		}
	}

	fnNames := make([]string, 0, len(iface.Functions))
	for n := range iface.Functions {
		fnNames = append(fnNames, n)
	}
	sort.Strings(fnNames)
	for _, n := range fnNames {
		fn := iface.Functions[n]
		ip.engine.Set(obj, ident.ToLowerCamel(fn.Name), ip.bindFunction(next, fn))
	}
	return obj
}

// buildEnumObject implements spec §4.D "the enum object on the globals
// carries both name→index and index→name bindings."
func (ip *Interpreter) buildEnumObject(e *wit.Enum) jsvalue.Handle {
	obj := ip.engine.NewObject()
	for i, c := range e.Cases {
		ip.engine.Set(obj, ident.ToUpperCamel(c.Name), ip.engine.NewNumber(float64(i)))
		ip.engine.Set(obj, strconv.Itoa(i), ip.engine.NewString(c.Name))
	}
	return obj
}

// buildFlagsObject implements spec §4.D "each named flag is exposed as
// 1 << i."
func (ip *Interpreter) buildFlagsObject(f *wit.Flags) jsvalue.Handle {
	obj := ip.engine.NewObject()
	for i, flag := range f.Flags {
		ip.engine.Set(obj, ident.ToUpperCamel(flag.Name), ip.engine.NewNumber(float64(uint32(1)<<uint(i))))
	}
	return obj
}

// bindFunction wires one import function to a guest-callable JS value that
// forwards to CallImport (spec §4.E "call_import"), assigning it the next
// sequential import index.
func (ip *Interpreter) bindFunction(next *int, fn *wit.Function) jsvalue.Handle {
	index := *next
	*next++
	return ip.engine.NewHostFunction(func(ctx context.Context, this jsvalue.Handle, args []jsvalue.Handle) (jsvalue.Handle, error) {
		return ip.CallImport(index, args)
	})
}
