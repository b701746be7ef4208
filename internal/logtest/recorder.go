// Package logtest provides a recording slog.Handler for tests that assert
// on diagnostics emitted through solid.Logger.
package logtest

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/gogpu/solid"
)

// Recorder is a slog.Handler that keeps every record it receives.
type Recorder struct {
	mu      sync.Mutex
	records []slog.Record
}

// Enabled accepts every level.
func (r *Recorder) Enabled(context.Context, slog.Level) bool { return true }

// Handle stores a copy of rec.
func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec.Clone())
	return nil
}

// WithAttrs and WithGroup return r; attributes are not recorded.
func (r *Recorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *Recorder) WithGroup(string) slog.Handler      { return r }

// Count returns the number of records logged at exactly the given level.
func (r *Recorder) Count(level slog.Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if rec.Level == level {
			n++
		}
	}
	return n
}

// Messages returns the messages logged at the given level, in order.
func (r *Recorder) Messages(level slog.Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, rec := range r.records {
		if rec.Level == level {
			out = append(out, rec.Message)
		}
	}
	return out
}

// Install routes solid.Logger to a fresh Recorder for the duration of the
// test and restores the previous logger on cleanup.
func Install(t testing.TB) *Recorder {
	t.Helper()
	rec := &Recorder{}
	orig := solid.SwapLogger(slog.New(rec))
	t.Cleanup(func() { solid.SetLogger(orig) })
	return rec
}
