package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/vanderheijden86/lizardview/pkg/model"
)

// CriticalFunctions returns the functions worth copying out for a refactor
// list: CCN above the critical threshold, with anything living under a test
// path skipped. Ordered by CCN descending; the sort is stable so report
// order breaks ties.
func CriticalFunctions(s *AnalysisSnapshot) []model.FunctionRecord {
	if s == nil {
		return nil
	}

	var out []model.FunctionRecord
	for _, fn := range s.Functions {
		if fn.CCN <= model.CriticalCCNThreshold {
			continue
		}
		if strings.Contains(strings.ToLower(fn.Path), "test") {
			continue
		}
		out = append(out, fn)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CCN > out[j].CCN
	})
	return out
}

// FormatCritical renders the critical function list as plain text suitable
// for pasting into an issue or a commit message.
func FormatCritical(funcs []model.FunctionRecord) string {
	if len(funcs) == 0 {
		return "No critical functions (CCN > 15) outside test code.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Critical functions (CCN > %d), worst first:\n", model.CriticalCCNThreshold)
	for _, fn := range funcs {
		fmt.Fprintf(&sb, "  CCN %3d  NLOC %4d  %s  %s:%s\n",
			fn.CCN, fn.NLOC, fn.Name, fn.Path, formatLineRange(fn.StartLine, fn.EndLine))
	}
	return sb.String()
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// CopyCritical writes the critical function list to the system clipboard and
// returns how many functions were copied. With nothing to copy it leaves the
// clipboard alone and returns zero.
func CopyCritical(s *AnalysisSnapshot) (int, error) {
	funcs := CriticalFunctions(s)
	if len(funcs) == 0 {
		return 0, nil
	}
	if err := writeClipboard(FormatCritical(funcs)); err != nil {
		return 0, fmt.Errorf("clipboard write failed: %w", err)
	}
	return len(funcs), nil
}
