package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestRunMissingBinary(t *testing.T) {
	r := Runner{Binary: "definitely-not-a-real-analyzer-binary"}
	_, err := r.Run(context.Background(), ".")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	var ae *AnalysisError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AnalysisError, got %T: %v", err, err)
	}
	if ae.Path != "." {
		t.Errorf("AnalysisError.Path = %q, want %q", ae.Path, ".")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub script requires a POSIX shell")
	}
	stub := writeStub(t, "#!/bin/sh\necho '      10      3     70      1      12 foo@1-12@fileA.py'\n")
	r := Runner{Binary: stub}
	out, err := r.Run(context.Background(), "target")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "foo@1-12@fileA.py"; !strings.Contains(out, want) {
		t.Errorf("output %q missing %q", out, want)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub script requires a POSIX shell")
	}
	stub := writeStub(t, "#!/bin/sh\necho 'boom' >&2\nexit 3\n")
	r := Runner{Binary: stub}
	_, err := r.Run(context.Background(), "target")
	var ae *AnalysisError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AnalysisError on non-zero exit, got %v", err)
	}
	if !strings.Contains(ae.Output, "boom") {
		t.Errorf("expected stderr tail in AnalysisError.Output, got %q", ae.Output)
	}
}

func TestRunCancelledContext(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub script requires a POSIX shell")
	}
	stub := writeStub(t, "#!/bin/sh\nsleep 10\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := Runner{Binary: stub}
	if _, err := r.Run(ctx, "target"); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-lizard")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}
