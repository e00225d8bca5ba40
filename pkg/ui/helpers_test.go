package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly_ten", 11, "exactly_ten"},
		{"this is too long", 8, "this is…"},
		{"", 5, ""},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestTruncateWideRunes(t *testing.T) {
	// CJK characters are two cells wide; truncation must count cells.
	got := truncate("日本語のテキスト", 7)
	if w := runewidth.StringWidth(got); w > 7 {
		t.Errorf("width %d exceeds 7: %q", w, got)
	}
}

func TestTruncatePathLeft(t *testing.T) {
	got := truncatePathLeft("very/long/path/to/some/file.py", 12)
	if runewidth.StringWidth(got) > 12 {
		t.Errorf("too wide: %q", got)
	}
	if got[:len("…")] != "…" {
		t.Errorf("expected leading ellipsis: %q", got)
	}
	if got[len(got)-len("file.py"):] != "file.py" {
		t.Errorf("tail lost: %q", got)
	}

	if got := truncatePathLeft("a/b.py", 20); got != "a/b.py" {
		t.Errorf("short path modified: %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not truncate: %q", got)
	}
}

func TestFormatLineRange(t *testing.T) {
	if got := formatLineRange(10, 48); got != "10-48" {
		t.Errorf("formatLineRange = %q", got)
	}
	if got := formatLineRange(7, 7); got != "7" {
		t.Errorf("single line = %q", got)
	}
}

func TestCompactFloat(t *testing.T) {
	if got := compactFloat(3.0); got != "3" {
		t.Errorf("compactFloat(3.0) = %q", got)
	}
	if got := compactFloat(3.46); got != "3.5" {
		t.Errorf("compactFloat(3.46) = %q", got)
	}
}
