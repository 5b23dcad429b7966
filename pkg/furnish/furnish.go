// Package furnish holds process-wide settings shared by the furnish packages:
// the release version and the diagnostic logger.
package furnish

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Version is the furnish release version.
const Version = "0.3.0"

// nopHandler discards all records. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the diagnostic logger for furnish and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Levels used:
//   - Debug: skipped layout lines, store attach/detach, snapshot counts
//   - Info: files written, sessions created
//   - Warn: non-fatal failures such as an unwritable activity log
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current diagnostic logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
