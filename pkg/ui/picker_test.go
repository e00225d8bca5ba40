package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pickerTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, d := range []string{"src/pkg", "vendor/lib", ".git/objects"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	for _, f := range []string{"src/a.py", "src/pkg/b.py", "vendor/lib/c.py"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("pass\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

// walkCandidates exercises the fallback walk directly, regardless of
// whether fd is installed.
func walkCandidates(t *testing.T, root string, mode pickerMode, excluded func(string) bool) []string {
	t.Helper()
	t.Setenv("PATH", "") // hide fd so the walk fallback runs
	out, err := pickerCandidates(root, mode, excluded)
	if err != nil {
		t.Fatalf("pickerCandidates: %v", err)
	}
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

func TestPickerCandidatesListsFilesAndDirs(t *testing.T) {
	lines := walkCandidates(t, pickerTree(t), pickFilesAndDirs, nil)

	got := map[string]bool{}
	for _, l := range lines {
		got[l] = true
	}
	for _, want := range []string{"src", "src/a.py", "src/pkg/b.py"} {
		if !got[want] {
			t.Errorf("missing candidate %q in %v", want, lines)
		}
	}
	if got[".git"] || got[".git/objects"] {
		t.Errorf("dotted dirs leaked: %v", lines)
	}
}

func TestPickerCandidatesDirsOnly(t *testing.T) {
	lines := walkCandidates(t, pickerTree(t), pickDirsOnly, nil)
	for _, l := range lines {
		if strings.HasSuffix(l, ".py") {
			t.Errorf("file in dirs-only listing: %q", l)
		}
	}
}

func TestPickerCandidatesHonorsExcludes(t *testing.T) {
	lines := walkCandidates(t, pickerTree(t), pickFilesAndDirs, func(rel string) bool {
		return strings.HasPrefix(rel, "vendor")
	})
	for _, l := range lines {
		if strings.HasPrefix(l, "vendor") {
			t.Errorf("excluded path leaked: %q", l)
		}
	}
}

func TestPickerCandidatesEmptyTree(t *testing.T) {
	t.Setenv("PATH", "")
	if _, err := pickerCandidates(t.TempDir(), pickFilesAndDirs, nil); err == nil {
		t.Error("expected error for empty tree")
	}
}
