// Package activity records user actions as plain text lines of the form
//
//	2006-01-02 15:04:05, action, details
//
// Records go through log/slog so they share the process logging pipeline; the
// line format is produced by a dedicated handler.
package activity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFileName is the activity log written in the working directory.
const DefaultFileName = "user_interactions.log"

const timeLayout = "2006-01-02 15:04:05"

const detailsKey = "details"

// Logger appends action records to a writer. A disabled Logger drops records.
// Safe for concurrent use.
type Logger struct {
	log     *slog.Logger
	closer  io.Closer
	enabled atomic.Bool
}

// New returns an enabled Logger writing to w.
func New(w io.Writer) *Logger {
	l := &Logger{log: slog.New(newLineHandler(w))}
	if c, ok := w.(io.Closer); ok {
		l.closer = c
	}
	l.enabled.Store(true)
	return l
}

// Open returns a Logger appending to the file at path, creating it if needed.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening activity log %s: %w", path, err)
	}
	return New(f), nil
}

// LogAction writes one record. Write failures are ignored.
func (l *Logger) LogAction(action, details string) {
	if !l.enabled.Load() {
		return
	}
	l.log.Info(action, slog.String(detailsKey, details))
}

// SetEnabled turns recording on or off.
func (l *Logger) SetEnabled(on bool) { l.enabled.Store(on) }

// Enabled reports whether records are being written.
func (l *Logger) Enabled() bool { return l.enabled.Load() }

// Close releases the underlying writer if it is closable.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// lineHandler renders a record as "time, message, details".
type lineHandler struct {
	mu  *sync.Mutex
	w   io.Writer
	now func() time.Time
}

func newLineHandler(w io.Writer) *lineHandler {
	return &lineHandler{mu: &sync.Mutex{}, w: w, now: time.Now}
}

func (h *lineHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	var details string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == detailsKey {
			details = a.Value.String()
			return false
		}
		return true
	})
	ts := r.Time
	if ts.IsZero() {
		ts = h.now()
	}
	line := fmt.Sprintf("%s, %s, %s\n", ts.Format(timeLayout), r.Message, details)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

func (h *lineHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *lineHandler) WithGroup(string) slog.Handler      { return h }

// ActionLogger is anything that accepts action records.
type ActionLogger interface {
	LogAction(action, details string)
}

// Multi fans records out to every non-nil logger.
func Multi(loggers ...ActionLogger) ActionLogger {
	out := make(multi, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

type multi []ActionLogger

func (m multi) LogAction(action, details string) {
	for _, l := range m {
		l.LogAction(action, details)
	}
}

// Func adapts a function to ActionLogger.
type Func func(action, details string)

// LogAction calls f.
func (f Func) LogAction(action, details string) { f(action, details) }
