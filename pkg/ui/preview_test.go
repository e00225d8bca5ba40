package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/lizardview/pkg/model"
)

func writeSource(t *testing.T, lines int) (string, string) {
	t.Helper()
	dir := t.TempDir()
	var sb strings.Builder
	for i := 1; i <= lines; i++ {
		sb.WriteString("line ")
		sb.WriteString(strings.Repeat("x", i%5))
		sb.WriteString("\n")
	}
	if err := os.WriteFile(filepath.Join(dir, "mod.py"), []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return dir, "mod.py"
}

func TestLoadPreviewShowsRange(t *testing.T) {
	dir, rel := writeSource(t, 30)
	fn := model.FunctionRecord{Name: "f", Path: rel, StartLine: 10, EndLine: 14}

	out := loadPreview(dir, fn)
	if !strings.Contains(out, "   10 │") || !strings.Contains(out, "   14 │") {
		t.Errorf("body lines not marked:\n%s", out)
	}
	// Context lines around the body are present but unmarked.
	if !strings.Contains(out, "    8  ") {
		t.Errorf("context line missing:\n%s", out)
	}
	if strings.Contains(out, "   17 ") {
		t.Errorf("preview ran past the range:\n%s", out)
	}
}

func TestLoadPreviewStaleRange(t *testing.T) {
	dir, rel := writeSource(t, 5)
	fn := model.FunctionRecord{Name: "gone", Path: rel, StartLine: 40, EndLine: 60}

	out := loadPreview(dir, fn)
	if !strings.Contains(out, "file changed since analysis") {
		t.Errorf("expected stale-range notice, got:\n%s", out)
	}
}

func TestLoadPreviewUnreadableFile(t *testing.T) {
	fn := model.FunctionRecord{Name: "f", Path: "does/not/exist.py", StartLine: 1, EndLine: 2}
	out := loadPreview(t.TempDir(), fn)
	if !strings.Contains(out, "cannot read") {
		t.Errorf("expected read error text, got:\n%s", out)
	}
}

func TestReadPreviewStaleFlag(t *testing.T) {
	dir, rel := writeSource(t, 3)
	fn := model.FunctionRecord{Name: "gone", Path: rel, StartLine: 99, EndLine: 120}

	_, err := readPreview(dir, fn)
	if err == nil || !err.Stale {
		t.Errorf("expected stale preview error, got %v", err)
	}

	_, err = readPreview(dir, model.FunctionRecord{Path: "nope.py", StartLine: 1, EndLine: 1})
	if err == nil || err.Stale {
		t.Errorf("missing file should not be stale: %v", err)
	}
}

func TestLoadPreviewAbsolutePath(t *testing.T) {
	dir, rel := writeSource(t, 10)
	abs := filepath.Join(dir, rel)
	fn := model.FunctionRecord{Name: "f", Path: abs, StartLine: 2, EndLine: 4}

	out := loadPreview("/somewhere/else", fn)
	if strings.Contains(out, "cannot read") {
		t.Errorf("absolute path should not be joined to root:\n%s", out)
	}
}
