package solid

import (
	"log/slog"
	"sync/atomic"
)

var (
	discard = slog.New(slog.DiscardHandler)
	current atomic.Pointer[slog.Logger]
)

func init() { current.Store(discard) }

// SetLogger routes the diagnostics of every solid package to l.
//
// Geometry evaluation never fails loudly on user input: unknown modules,
// disabled features, bad arguments and degenerate transforms are reported
// at [slog.LevelWarn] and evaluation continues. Cache and tessellation
// details are logged at [slog.LevelDebug]. Passing nil silences output.
//
// SetLogger is safe for concurrent use with [Logger].
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	current.Store(l)
}

// SwapLogger installs l like [SetLogger] and returns the logger it replaced.
func SwapLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		l = discard
	}
	return current.Swap(l)
}

// Logger returns the logger in use. It is never nil.
func Logger() *slog.Logger {
	return current.Load()
}
