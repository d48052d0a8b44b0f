package link_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tetratelabs/wazero"
	"go.bytecodealliance.org/wit"

	"github.com/componentize-go/jsc/internal/adapter"
	"github.com/componentize-go/jsc/internal/cerrors"
	"github.com/componentize-go/jsc/internal/component"
	"github.com/componentize-go/jsc/internal/link"
)

type fakeCodec struct {
	encodeErr error
	gotModules []component.Module
}

func (f *fakeCodec) DecodeWorld(b []byte) (*wit.World, error) { return nil, nil }
func (f *fakeCodec) EncodeComponent(modules []component.Module, resolve *wit.Resolve, world *wit.World) ([]byte, error) {
	f.gotModules = modules
	if f.encodeErr != nil {
		return nil, f.encodeErr
	}
	return []byte("component-bytes"), nil
}
func (f *fakeCodec) Compose(target, stub []byte) ([]byte, error) { return target, nil }
func (f *fakeCodec) DummyModule(stubWorld *wit.World) ([]byte, error) {
	return []byte("dummy-trap-module"), nil
}

func TestLinkEncodesAllModules(t *testing.T) {
	codec := &fakeCodec{}
	world := &wit.World{Name: "init"}
	runtimeModule := component.Module{Bytes: []byte("runtime"), World: world}
	adapterModule := adapter.Module{Bytes: []byte("adapter")}
	sysroot := link.Sysroot{Modules: []component.Module{{Bytes: []byte("libc")}}}

	linked, err := link.Link(context.Background(), codec, &wit.Resolve{}, runtimeModule, adapterModule, sysroot)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if string(linked.Bytes) != "component-bytes" {
		t.Fatalf("linked bytes = %q", linked.Bytes)
	}
	if len(codec.gotModules) != 3 {
		t.Fatalf("EncodeComponent got %d modules, want 3 (runtime+adapter+sysroot)", len(codec.gotModules))
	}
}

func TestLinkWrapsEncodeFailureAsLinkError(t *testing.T) {
	codec := &fakeCodec{encodeErr: errors.New("bad world")}
	world := &wit.World{Name: "init"}
	_, err := link.Link(context.Background(), codec, &wit.Resolve{}, component.Module{World: world}, adapter.Module{}, link.Sysroot{})
	if err == nil {
		t.Fatal("expected error")
	}
	var cerr cerrors.Error
	if !errors.As(err, &cerr) || cerr.Kind() != cerrors.KindLinkError {
		t.Fatalf("err = %v, want cerrors.KindLinkError", err)
	}
}

type failingHost struct{}

func (failingHost) Register(ctx context.Context, r wazero.Runtime) error { return nil }

func TestSnapshotWrapsBadComponentAsInstantiationError(t *testing.T) {
	codec := &fakeCodec{}
	linked := &link.LinkedComponent{Bytes: []byte("not a real wasm module"), World: &wit.World{Name: "init"}}

	_, err := link.Snapshot(context.Background(), codec, failingHost{}, linked, "var x=1;",
		func(ctx context.Context, r wazero.Runtime, mod wazero.CompiledModule, cfg wazero.ModuleConfig) error {
			t.Fatal("runInit should not be reached when compilation fails")
			return nil
		})
	if err == nil {
		t.Fatal("expected error")
	}
	var cerr cerrors.Error
	if !errors.As(err, &cerr) || cerr.Kind() != cerrors.KindInstantiationError {
		t.Fatalf("err = %v, want cerrors.KindInstantiationError", err)
	}
}
