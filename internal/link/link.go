// Package link implements the two-phase link/snapshot pipeline of spec
// §4.H: assemble a pre-init component from the interpreter runtime, the
// generated adapter, and the sysroot; compile it under a WASI host; run
// init(js) through a caller-supplied runner; and re-encode the linked
// component as the snapshot. Memory and global state left by init(js) is
// not read back into the snapshot. Grounded on github.com/wippyai/wasm-runtime's
// engine/linker packages in the reference pack (two-phase compile-then-
// instantiate with wazero) and on go.bytecodealliance.org/wit's
// component/encoding types, reached here only through the component.Codec
// seam (the canonical-ABI component linker is an external collaborator
// per spec §1).
package link

import (
	"bytes"
	"context"

	"github.com/tetratelabs/wazero"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/componentize-go/jsc/internal/adapter"
	"github.com/componentize-go/jsc/internal/cerrors"
	"github.com/componentize-go/jsc/internal/component"
	"github.com/componentize-go/jsc/internal/logging"
)

// Sysroot is the POSIX-like sysroot shared libraries the interpreter needs
// at link time (spec §4.H "the sysroot shared libraries the interpreter
// needs").
type Sysroot struct {
	Modules []component.Module
}

// LinkedComponent is the assembled, not-yet-instantiated pre-init
// component produced by Link.
type LinkedComponent struct {
	Bytes   []byte
	Resolve *wit.Resolve
	World   *wit.World
}

// WasiHost supplies the WASI implementation used during pre-
// initialization (spec §1 "The WASI host implementation used during
// pre-initialization" is an external collaborator). Register installs the
// host's exports onto r before the pre-init component is instantiated.
type WasiHost interface {
	Register(ctx context.Context, r wazero.Runtime) error
}

// Link implements spec §4.H's link phase: produce a single component
// whose imports are the union of all residual imports (typically WASI)
// and whose exports are the world's exports plus the init helper.
func Link(ctx context.Context, codec component.Codec, resolve *wit.Resolve, runtimeModule component.Module, adapterModule adapter.Module, sysroot Sysroot) (*LinkedComponent, error) {
	logging.L().Debug("linking pre-init component", zap.Int("sysroot_modules", len(sysroot.Modules)))

	modules := make([]component.Module, 0, 2+len(sysroot.Modules))
	modules = append(modules, runtimeModule, component.Module{Bytes: adapterModule.Bytes, World: runtimeModule.World})
	modules = append(modules, sysroot.Modules...)

	encoded, err := codec.EncodeComponent(modules, resolve, runtimeModule.World)
	if err != nil {
		return nil, cerrors.NewLinkError("encode pre-init component", err)
	}
	return &LinkedComponent{Bytes: encoded, Resolve: resolve, World: runtimeModule.World}, nil
}

// diagnosticSink is an in-memory stdout/stderr capture used only for error
// reporting on init failure (spec §4.H snapshot phase step 2).
type diagnosticSink struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// Snapshot runs spec §4.H's snapshot phase: it registers host on a fresh
// wazero runtime, compiles linked, and hands the compiled module plus a
// module config (empty stdin, in-memory stdout/stderr) to runInit, which
// instantiates it and calls init(js). On success it re-encodes linked's
// own bytes via codec; the memory and global state left by runInit is
// not captured, and js is not used by Snapshot itself. On runInit failure
// the captured stdout/stderr are attached to the returned error (spec
// §9.1's supplemented dual-stream diagnostic capture).
func Snapshot(ctx context.Context, codec component.Codec, host WasiHost, linked *LinkedComponent, js string, runInit func(ctx context.Context, r wazero.Runtime, mod wazero.CompiledModule, cfg wazero.ModuleConfig) error) ([]byte, error) {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig())
	defer rt.Close(ctx)

	if err := host.Register(ctx, rt); err != nil {
		return nil, cerrors.NewInstantiationError("register WASI host", err)
	}

	compiled, err := rt.CompileModule(ctx, linked.Bytes)
	if err != nil {
		return nil, cerrors.NewInstantiationError("compile linked component", err)
	}

	var diag diagnosticSink
	modCfg := wazero.NewModuleConfig().
		WithStdin(bytes.NewReader(nil)).
		WithStdout(&diag.stdout).
		WithStderr(&diag.stderr)

	if err := runInit(ctx, rt, compiled, modCfg); err != nil {
		return nil, cerrors.NewInitError("init(js)", err, diag.stdout.String(), diag.stderr.String())
	}

	snapshotBytes, err := codec.EncodeComponent([]component.Module{{Bytes: linked.Bytes, World: linked.World}}, linked.Resolve, linked.World)
	if err != nil {
		return nil, cerrors.NewSnapshotError("encode post-init snapshot", err)
	}
	return snapshotBytes, nil
}
