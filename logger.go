package uipaint

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for uipaint and all its sub-packages.
// By default, uipaint produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by uipaint:
//   - [slog.LevelDebug]: per-frame diagnostics (entry counts, pool growth, atlas pages)
//   - [slog.LevelWarn]: tolerated misuse (sprites without a texture)
//   - [slog.LevelError]: invariant violations that were healed or aborted
//     (under-filled mesh writers, render targets inside a stencil mask,
//     layout oscillation, tree mutation during layout)
//
// Example:
//
//	uipaint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by uipaint.
// Sub-packages call this at the point of logging so that SetLogger takes
// effect immediately everywhere.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
