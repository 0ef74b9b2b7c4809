// Package logging wraps charmbracelet/log.
//
// Diagnostics go to stderr through the process default logger or a logger
// carried in a context. User-facing status lines, such as the path written by
// init, go through an interactive logger on the command's output.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide fallback logger
var defaultLogger atomic.Pointer[log.Logger]

// New creates a logger writing to w at the named level.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// NewInteractive creates an info-level logger for status lines written to w.
func NewInteractive(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: log.InfoLevel})
}

// ParseLevel maps "debug", "info", "warn" (or "warning") and "error" to a
// level, ignoring case. Anything else is info.
func ParseLevel(name string) log.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		return log.WarnLevel
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Default returns the process default logger, an info-level stderr logger
// unless SetDefault replaced it.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New(os.Stderr, "info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process default logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the default logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
