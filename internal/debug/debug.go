// Package debug controls diagnostic output for the civic CLI: the slog
// logger handed to the store, verbose/quiet switches, and quiet-aware printing.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	enabled     = os.Getenv("CIVIC_DEBUG") != ""
	verboseMode = false
	quietMode   = false

	mu     sync.Mutex
	output io.Writer = os.Stderr
	logger *slog.Logger
)

func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = verbose
	logger = nil
}

// SetQuiet enables quiet mode (suppress non-essential output)
func SetQuiet(quiet bool) {
	mu.Lock()
	defer mu.Unlock()
	quietMode = quiet
	logger = nil
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quietMode
}

// SetOutput redirects log output. Tests use it to capture records.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	logger = nil
}

// Level returns the minimum level that is currently logged.
func Level() slog.Level {
	switch {
	case Enabled():
		return slog.LevelDebug
	case quietMode:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Logger returns the process logger, rebuilt whenever verbosity or output changes.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: Level()}))
	}
	return logger
}

// Logf writes a printf-style debug line when debug output is enabled.
func Logf(format string, args ...interface{}) {
	if Enabled() {
		Logger().Debug(fmt.Sprintf(format, args...))
	}
}

// PrintNormal prints output unless quiet mode is enabled
// Use this for normal informational output that should be suppressed in quiet mode
func PrintNormal(format string, args ...interface{}) {
	if !quietMode {
		fmt.Printf(format, args...)
	}
}
