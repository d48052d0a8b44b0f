// Package logging holds the process-wide structured logger, wired the way
// github.com/wippyai/wasm-runtime's engine/linker packages inject a
// package-level *zap.Logger at construction and read it back through an
// accessor rather than threading it through every call.
package logging

import "go.uber.org/zap"

var logger = zap.NewNop()

// Set installs the process-wide logger. cmd/componentize calls this once,
// from --verbose, before any other package does any work.
func Set(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// L returns the current process-wide logger. Defaults to a no-op logger so
// packages never need a nil check.
func L() *zap.Logger {
	return logger
}
