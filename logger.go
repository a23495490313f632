package imageplanes

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/imageplanes/gpu"
	"github.com/gogpu/imageplanes/input"
	"github.com/gogpu/imageplanes/resource"
	"github.com/gogpu/imageplanes/scenegraph"
	"github.com/gogpu/imageplanes/viewport"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
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

// SetLogger configures the logger for imageplanes and all its sub-packages.
// By default, imageplanes produces no log output.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by imageplanes:
//   - [slog.LevelDebug]: skipped frames, cache misses, buffer uploads
//   - [slog.LevelInfo]: scene rebuilds
//   - [slog.LevelWarn]: dropped hits, unavailable shaders
//   - [slog.LevelError]: viewport configuration errors
//
// Example:
//
//	imageplanes.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	resource.SetLogger(l)
	scenegraph.SetLogger(l)
	viewport.SetLogger(l)
	input.SetLogger(l)
	gpu.SetLogger(l)
}

// Logger returns the current logger used by imageplanes.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
