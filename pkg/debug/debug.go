// Package debug provides conditional debug logging for lzv.
//
// Debug logging is enabled by setting the LZV_DEBUG environment variable:
//
//	LZV_DEBUG=1 lzv .
//
// When enabled, debug messages are written to stderr with timestamps.
// When disabled (default), all debug functions are no-ops with zero overhead.
// Note that stderr output will corrupt the alternate screen while the TUI is
// running; redirect it to a file when debugging interactively:
//
//	LZV_DEBUG=1 lzv . 2>/tmp/lzv.log
package debug

import (
	"log"
	"os"
	"time"
)

var (
	// enabled is true when LZV_DEBUG env var is set
	enabled bool
	// logger writes to stderr with [LZV_DEBUG] prefix
	logger *log.Logger
)

func init() {
	if os.Getenv("LZV_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[LZV_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[LZV_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogEnterExit logs function entry and exit with timing.
// Usage:
//
//	func myFunc() {
//	    defer debug.LogEnterExit("myFunc")()
//	    // ...
//	}
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}
