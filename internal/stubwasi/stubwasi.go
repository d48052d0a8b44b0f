// Package stubwasi implements the WASI-stub composer of spec §4.I: turn a
// snapshotted component's residual `wasi:`-prefixed imports into a sibling
// component whose exports trap on entry, and compose it in, producing a
// fully self-contained component. Grounded step-for-step on
// original_source/src/stubwasi.rs's stub_wasi_imports/make_stub_component
// (decode → filter wasi: imports → transpose to a stub world's exports →
// dummy trapping core module → embed metadata → compose), re-expressed
// against this module's component.Codec seam instead of wit-component/
// wac-graph directly, since the encoder/composer is an external
// collaborator (spec §1).
package stubwasi

import (
	"context"
	"strings"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/componentize-go/jsc/internal/cerrors"
	"github.com/componentize-go/jsc/internal/component"
	"github.com/componentize-go/jsc/internal/logging"
)

// Compose implements spec §4.I's five numbered steps. If the snapshotted
// component has no `wasi:`-prefixed imports, it is returned unchanged
// (step 3).
func Compose(ctx context.Context, codec component.Codec, snapshot []byte) ([]byte, error) {
	world, err := codec.DecodeWorld(snapshot)
	if err != nil {
		return nil, cerrors.NewStubCompositionError("decode snapshot world", err)
	}

	wasiImports := wasiSubset(world)
	if len(wasiImports) == 0 {
		logging.L().Debug("no residual wasi imports; skipping stub composition")
		return snapshot, nil
	}
	logging.L().Debug("composing wasi stub", zap.Int("wasi_imports", len(wasiImports)))

	stubWorld := &wit.World{
		Name:    world.Name + "-wasi-stubs",
		Imports: map[string]wit.WorldItem{},
		Exports: wasiImports,
		Package: world.Package,
	}

	trapModule, err := codec.DummyModule(stubWorld)
	if err != nil {
		return nil, cerrors.NewStubCompositionError("build trapping core module", err)
	}

	stubComponent, err := codec.EncodeComponent([]component.Module{{Bytes: trapModule, World: stubWorld}}, nil, stubWorld)
	if err != nil {
		return nil, cerrors.NewStubCompositionError("encode stub component", err)
	}

	composed, err := codec.Compose(snapshot, stubComponent)
	if err != nil {
		return nil, cerrors.NewStubCompositionError("compose stub into snapshot", err)
	}
	return composed, nil
}

// wasiSubset implements spec §4.I step 2: collect world imports whose
// qualified name begins with "wasi:".
func wasiSubset(world *wit.World) map[string]wit.WorldItem {
	out := make(map[string]wit.WorldItem)
	for key, item := range world.Imports {
		if strings.HasPrefix(key, "wasi:") {
			out[key] = item
		}
	}
	return out
}
