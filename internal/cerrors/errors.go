// Package cerrors implements the error taxonomy of spec §7: one typed
// kind per build stage, each wrapping its cause with %w, plus stage-specific
// context fields. Named cerrors, not errors, to keep it apart from the
// standard library's errors package and the teacher's former
// internal/errors package it supersedes (see DESIGN.md).
//
// ABIProtocolError is deliberately absent from this taxonomy: spec §7
// requires it to panic rather than return, so internal/callctx,
// internal/marshal and internal/interpreter raise it directly via
// panic(error). Nothing in this module recovers it, so it terminates the
// process.
package cerrors

import "fmt"

// Kind identifies which error taxonomy entry an Error belongs to.
type Kind int

const (
	KindInputNotFound Kind = iota
	KindWitResolveError
	KindLinkError
	KindInstantiationError
	KindInitError
	KindSnapshotError
	KindStubCompositionError
)

func (k Kind) String() string {
	switch k {
	case KindInputNotFound:
		return "InputNotFound"
	case KindWitResolveError:
		return "WitResolveError"
	case KindLinkError:
		return "LinkError"
	case KindInstantiationError:
		return "InstantiationError"
	case KindInitError:
		return "InitError"
	case KindSnapshotError:
		return "SnapshotError"
	case KindStubCompositionError:
		return "StubCompositionError"
	default:
		return "UnknownError"
	}
}

// Error is the common shape of every recoverable cerrors kind: a build
// stage tag, a wrapped cause, and Error()/Unwrap() for errors.Is/As.
type Error interface {
	error
	Kind() Kind
	Unwrap() error
}

type base struct {
	kind  Kind
	stage string
	cause error
}

func (b *base) Kind() Kind    { return b.kind }
func (b *base) Unwrap() error { return b.cause }
func (b *base) Error() string {
	if b.cause == nil {
		return fmt.Sprintf("%s: %s", b.kind, b.stage)
	}
	return fmt.Sprintf("%s: %s: %v", b.kind, b.stage, b.cause)
}

// NewInputNotFound reports a missing WIT or JS path (spec §7 InputNotFound).
func NewInputNotFound(path string, cause error) Error {
	return &base{kind: KindInputNotFound, stage: "input " + path, cause: cause}
}

// NewWitResolveError reports WIT parsing/world-selection failure.
func NewWitResolveError(stage string, cause error) Error {
	return &base{kind: KindWitResolveError, stage: stage, cause: cause}
}

// NewLinkError reports shared-library linking or metadata-embedding failure.
func NewLinkError(stage string, cause error) Error {
	return &base{kind: KindLinkError, stage: stage, cause: cause}
}

// NewInstantiationError reports a trap or missing import while running the
// pre-init component.
func NewInstantiationError(stage string, cause error) Error {
	return &base{kind: KindInstantiationError, stage: stage, cause: cause}
}

// NewSnapshotError reports a failure to encode the post-init component.
func NewSnapshotError(stage string, cause error) Error {
	return &base{kind: KindSnapshotError, stage: stage, cause: cause}
}

// NewStubCompositionError reports a failure decoding, synthesizing, or
// composing the WASI-stub component.
func NewStubCompositionError(stage string, cause error) Error {
	return &base{kind: KindStubCompositionError, stage: stage, cause: cause}
}

// InitError is InitError{Stdout,Stderr} per spec §9.1's "diagnostic capture
// of both stdout and stderr during init" supplement — the original
// (andreiltd/componentize-qjs) buffers both streams and attaches them to the
// bubbled-up error, not just a single diagnostic string.
type InitError struct {
	Stage  string
	Cause  error
	Stdout string
	Stderr string
}

func (e *InitError) Kind() Kind    { return KindInitError }
func (e *InitError) Unwrap() error { return e.Cause }
func (e *InitError) Error() string {
	return fmt.Sprintf("%s: %s: %v\n--- stdout ---\n%s\n--- stderr ---\n%s",
		KindInitError, e.Stage, e.Cause, e.Stdout, e.Stderr)
}

// NewInitError wraps an init() failure with its captured diagnostic output.
func NewInitError(stage string, cause error, stdout, stderr string) Error {
	return &InitError{Stage: stage, Cause: cause, Stdout: stdout, Stderr: stderr}
}
