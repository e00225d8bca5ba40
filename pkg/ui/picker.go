package ui

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lizardview/pkg/debug"
)

// pickerMode selects what the picker offers: whole directories, or files too.
type pickerMode int

const (
	pickFilesAndDirs pickerMode = iota
	pickDirsOnly
)

// PickerError wraps a failure while preparing or running the external picker.
type PickerError struct {
	Stage string // "fzf", "candidates", "tempfile"
	Cause error
}

func (e *PickerError) Error() string {
	return fmt.Sprintf("picker %s: %v", e.Stage, e.Cause)
}

func (e *PickerError) Unwrap() error {
	return e.Cause
}

// pickerResultMsg carries the path chosen in the external fzf picker.
// An empty Path means the user cancelled.
type pickerResultMsg struct {
	Path string
	Err  error
}

// pickerCandidateLimit caps the walk fallback so huge trees don't stall the
// picker before fzf even opens.
const pickerCandidateLimit = 20000

// pickPathCmd suspends the TUI and runs fzf over candidates under root.
// Candidates come from fd when available, otherwise from a bounded
// filesystem walk.
func pickPathCmd(root string, mode pickerMode, excluded func(rel string) bool) tea.Cmd {
	if _, err := exec.LookPath("fzf"); err != nil {
		return func() tea.Msg {
			return pickerResultMsg{Err: &PickerError{Stage: "fzf", Cause: fmt.Errorf("not found in PATH")}}
		}
	}

	input, err := pickerCandidates(root, mode, excluded)
	if err != nil {
		return func() tea.Msg {
			return pickerResultMsg{Err: &PickerError{Stage: "candidates", Cause: err}}
		}
	}

	inFile, err := os.CreateTemp("", "lzv-picker-in-*")
	if err != nil {
		return func() tea.Msg {
			return pickerResultMsg{Err: &PickerError{Stage: "tempfile", Cause: err}}
		}
	}
	outPath := inFile.Name() + ".out"
	if _, err := inFile.WriteString(input); err != nil {
		inFile.Close()
		os.Remove(inFile.Name())
		return func() tea.Msg {
			return pickerResultMsg{Err: &PickerError{Stage: "tempfile", Cause: err}}
		}
	}
	inFile.Close()

	prompt := "analyze> "
	if mode == pickDirsOnly {
		prompt = "analyze dir> "
	}

	// fzf needs the terminal, so it runs through ExecProcess with its
	// selection redirected to a temp file.
	shellCmd := fmt.Sprintf("fzf --prompt=%q < %q > %q", prompt, inFile.Name(), outPath)
	c := exec.Command("sh", "-c", shellCmd)

	return tea.ExecProcess(c, func(execErr error) tea.Msg {
		defer os.Remove(inFile.Name())
		defer os.Remove(outPath)

		out, readErr := os.ReadFile(outPath)
		choice := strings.TrimSpace(string(out))

		// fzf exits 130 on escape; treat any failure with empty output
		// as a cancel rather than an error.
		if choice == "" {
			if execErr != nil {
				debug.Log("picker cancelled: %v (read: %v)", execErr, readErr)
			}
			return pickerResultMsg{}
		}
		return pickerResultMsg{Path: filepath.Join(root, choice)}
	})
}

// pickerCandidates lists entries under root, relative paths one per line.
// Prefers fd for speed.
func pickerCandidates(root string, mode pickerMode, excluded func(rel string) bool) (string, error) {
	if fdPath, err := exec.LookPath("fd"); err == nil {
		args := []string{".", "--max-depth", "8", "--type", "d"}
		if mode == pickFilesAndDirs {
			args = append(args, "--type", "f")
		}
		cmd := exec.Command(fdPath, args...)
		cmd.Dir = root
		out, err := cmd.Output()
		if err == nil && len(out) > 0 {
			return string(out), nil
		}
		debug.Log("fd listing failed, falling back to walk: %v", err)
	}

	var sb strings.Builder
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(d.Name(), ".") || (excluded != nil && excluded(rel)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if mode == pickDirsOnly && !d.IsDir() {
			return nil
		}
		sb.WriteString(rel)
		sb.WriteByte('\n')
		count++
		if count >= pickerCandidateLimit {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", fmt.Errorf("nothing to pick under %s", root)
	}
	return sb.String(), nil
}
