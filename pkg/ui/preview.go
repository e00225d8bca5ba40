package ui

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/lizardview/pkg/model"
)

// previewContextLines is how many lines of surrounding context the preview
// shows above and below the function body.
const previewContextLines = 2

// PreviewError describes why a source excerpt could not be shown. Stale
// means the file exists but no longer reaches the recorded line range.
type PreviewError struct {
	Path  string
	Stale bool
	Cause error
}

func (e *PreviewError) Error() string {
	if e.Stale {
		return fmt.Sprintf("%s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Cause)
}

func (e *PreviewError) Unwrap() error {
	return e.Cause
}

// loadPreview renders the source lines for a function's [start, end] range,
// plus a little context. Failures render inline: the file may have changed
// or vanished since the report was generated, and that should never take
// down the rest of the view.
func loadPreview(root string, fn model.FunctionRecord) string {
	excerpt, err := readPreview(root, fn)
	if err != nil {
		return err.Error()
	}
	return excerpt
}

func readPreview(root string, fn model.FunctionRecord) (string, *PreviewError) {
	path := fn.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &PreviewError{Path: fn.Path, Cause: err}
	}
	defer f.Close()

	start := fn.StartLine - previewContextLines
	if start < 1 {
		start = 1
	}
	end := fn.EndLine + previewContextLines

	var sb strings.Builder
	lineNo := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		if lineNo < start {
			continue
		}
		if lineNo > end {
			break
		}
		marker := " "
		if lineNo >= fn.StartLine && lineNo <= fn.EndLine {
			marker = "│"
		}
		fmt.Fprintf(&sb, "%5d %s %s\n", lineNo, marker, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return "", &PreviewError{Path: fn.Path, Cause: err}
	}

	if lineNo < fn.StartLine {
		return "", &PreviewError{
			Path:  fn.Path,
			Stale: true,
			Cause: fmt.Errorf("only %d lines, but %s starts at line %d (file changed since analysis?)",
				lineNo, fn.Name, fn.StartLine),
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
