// Package analyzer invokes the external lizard binary and captures its
// text report. The analysis engine itself is a black box: lzv only spawns
// it with a target path and reads what it prints.
package analyzer

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/vanderheijden86/lizardview/pkg/debug"
)

// DefaultBinary is the analyzer executable looked up on PATH when the
// config does not name one.
const DefaultBinary = "lizard"

// AnalysisError wraps a failed analyzer invocation: missing executable,
// spawn failure, or non-zero exit.
type AnalysisError struct {
	Path   string // Target path that was being analyzed
	Cause  error
	Output string // Tail of combined output, for the error dialog
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyzing %s: %v", e.Path, e.Cause)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Runner invokes the analyzer. The zero value runs `lizard <path> -V`.
type Runner struct {
	Binary    string   // Analyzer executable, DefaultBinary if empty
	ExtraArgs []string // Appended after the target path
}

// Run executes the analyzer against path and returns its combined
// stdout+stderr text. Lizard writes parts of its report to stderr, so both
// streams feed the parser. The context cancels the subprocess; quitting the
// app abandons an in-flight analysis without waiting for it.
func (r Runner) Run(ctx context.Context, path string) (string, error) {
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	args := append([]string{path, "-V"}, r.ExtraArgs...)
	cmd := exec.CommandContext(ctx, binary, args...)

	start := time.Now()
	out, err := cmd.CombinedOutput()
	debug.LogTiming("analyzer run", time.Since(start))

	if err != nil {
		return "", &AnalysisError{
			Path:   path,
			Cause:  err,
			Output: tail(string(out), 2048),
		}
	}
	return string(out), nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
