// Package debug provides debug logging functionality using log/slog
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/pterm/pterm"
)

var (
	// logger is the global debug logger instance
	logger = newDiscardLogger()
	// enabled indicates if debug logging is enabled
	enabled bool
	// mu protects the logger and enabled flag
	mu sync.RWMutex
)

// Init initializes the debug logger
// If enable is true, debug logs are rendered by pterm on os.Stderr
// If enable is false, debug logs are silently discarded
func Init(enable bool) {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable

	if enable {
		logger = newConsoleLogger(os.Stderr)
	} else {
		logger = newDiscardLogger()
	}
}

func newConsoleLogger(w io.Writer) *slog.Logger {
	pl := pterm.DefaultLogger.
		WithLevel(pterm.LogLevelDebug).
		WithWriter(w)
	return slog.New(pterm.NewSlogHandler(pl))
}

func newDiscardLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError + 1, // above any level in use
	}
	return slog.New(slog.NewTextHandler(io.Discard, opts))
}

// Enabled returns whether debug logging is enabled
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return current().With(args...)
}

// Logger returns the underlying slog.Logger instance
func Logger() *slog.Logger {
	return current()
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
