// Package componentize is the public facade of spec §2: given a WIT world
// description and a JavaScript source, produce a single self-contained
// WebAssembly component. Grounded on the teacher's pkg/dwscript facade
// shape (a single entry point wrapping lexer→parser→semantic→interp),
// generalized into wit→adapter→link→snapshot→(optional) stub. The
// guest-side glue (internal/interpreter binding globals, internal/
// initentry driving the one-shot evaluation) runs inside the compiled
// interpreter module itself — an external build artifact supplied here
// as Dependencies.Runtime, the same way the teacher's dwscript.wasm is a
// separately built GOOS=js GOARCH=wasm artifact rather than something
// pkg/dwscript assembles at call time.
package componentize

import (
	"context"
	"fmt"
	"os"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/componentize-go/jsc/internal/adapter"
	"github.com/componentize-go/jsc/internal/cerrors"
	"github.com/componentize-go/jsc/internal/component"
	"github.com/componentize-go/jsc/internal/link"
	"github.com/componentize-go/jsc/internal/logging"
	"github.com/componentize-go/jsc/internal/stubwasi"
	"github.com/componentize-go/jsc/internal/witload"
)

// InitRunner drives the canonical-ABI invocation of the linked
// component's `init` export during the snapshot phase (spec §4.H
// snapshot step 3). Never implemented in this module — invoking a
// component export through wazero's core-module-level API is the
// canonical-ABI component linker's job, an external collaborator per
// spec §1 — wired only as a test double in build_test.go. The CLI does
// not wire one: cmd/componentize/cmd's newDependencies returns an error
// instead.
type InitRunner interface {
	RunInit(ctx context.Context, r wazero.Runtime, mod wazero.CompiledModule, cfg wazero.ModuleConfig, js string) error
}

// Minify is the injectable JS-minification hook of spec §9.1's
// supplemented "--minify is a real, separate pipeline stage" note. It
// defaults to identity: this module keeps the seam, not a minifier
// implementation, honoring spec §1's explicit out-of-scope boundary.
type Minify func(js string) (string, error)

func identity(js string) (string, error) { return js, nil }

// Dependencies are the external collaborators this facade orchestrates
// but never implements (spec §1): WIT parsing, the adapter generator,
// the component codec, the WASI host, the compiled interpreter runtime
// module, and the init invoker. All are test-doubled in build_test.go.
type Dependencies struct {
	Parser     witload.Parser
	Generator  adapter.Generator
	Codec      component.Codec
	Host       link.WasiHost
	Runtime    component.Module
	Sysroot    link.Sysroot
	InitRunner InitRunner
}

// Config is one build request (spec §6 "Inputs").
type Config struct {
	WitPath  string
	JSPath   string
	World    string
	StubWasi bool
	Minify   Minify
}

// Build implements spec §4's full pipeline: resolve the WIT world,
// generate the adapter, link the runtime with the adapter and sysroot,
// snapshot post-init state, and optionally compose out residual wasi:
// imports.
func Build(ctx context.Context, cfg Config, deps Dependencies) ([]byte, error) {
	logging.L().Info("componentize: build starting", zap.String("wit", cfg.WitPath), zap.String("js", cfg.JSPath))

	jsBytes, err := os.ReadFile(cfg.JSPath)
	if err != nil {
		return nil, cerrors.NewInputNotFound(cfg.JSPath, err)
	}
	js := string(jsBytes)

	minify := cfg.Minify
	if minify == nil {
		minify = identity
	}
	js, err = minify(js)
	if err != nil {
		return nil, fmt.Errorf("componentize: minify: %w", err)
	}

	if _, statErr := os.Stat(cfg.WitPath); statErr != nil {
		return nil, cerrors.NewInputNotFound(cfg.WitPath, statErr)
	}
	resolve, pkg, err := deps.Parser.Parse(cfg.WitPath)
	if err != nil {
		return nil, cerrors.NewWitResolveError("parse wit", err)
	}
	world, err := witload.ResolveWorld(pkg, cfg.World)
	if err != nil {
		return nil, cerrors.NewWitResolveError("resolve world", err)
	}
	logging.L().Debug("componentize: world resolved", zap.String("world", world.Name))

	adapterSpec := adapter.Spec{Resolve: resolve, World: world}
	adapterModule, err := deps.Generator.Generate(adapterSpec)
	if err != nil {
		return nil, cerrors.NewLinkError("generate adapter", err)
	}

	runtimeModule := deps.Runtime
	runtimeModule.World = world

	linked, err := link.Link(ctx, deps.Codec, resolve, runtimeModule, adapterModule, deps.Sysroot)
	if err != nil {
		return nil, err
	}

	snapshot, err := link.Snapshot(ctx, deps.Codec, deps.Host, linked, js,
		func(ctx context.Context, r wazero.Runtime, mod wazero.CompiledModule, modCfg wazero.ModuleConfig) error {
			return deps.InitRunner.RunInit(ctx, r, mod, modCfg, js)
		})
	if err != nil {
		return nil, err
	}

	if cfg.StubWasi {
		snapshot, err = stubwasi.Compose(ctx, deps.Codec, snapshot)
		if err != nil {
			return nil, err
		}
	}

	logging.L().Info("componentize: build complete", zap.Int("bytes", len(snapshot)))
	return snapshot, nil
}
