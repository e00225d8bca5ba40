// Package parser converts lizard's verbose text report into structured
// analysis records.
//
// A lizard report is sectioned: a function table, an optional per-file
// table, an optional warnings listing (which repeats function rows), and a
// trailing totals row. Sections are delimited by recognizable header lines
// and separator lines of '=' or '-'. The parser is a pure function over the
// raw text: no I/O, no shared state.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vanderheijden86/lizardview/pkg/model"
)

// Diagnostic records a line the parser had to skip. The analyzer output is
// externally generated, so a single malformed row downgrades to a
// diagnostic instead of blanking the whole report.
type Diagnostic struct {
	LineNo int    // 1-based line number in the raw report
	Line   string // The offending line, trimmed
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s (%q)", d.LineNo, d.Reason, d.Line)
}

// Result is the structured form of one lizard report.
type Result struct {
	// Files in first-seen order; each file's functions in output order.
	Files []model.FileRecord
	// Functions in output order, across all files.
	Functions []model.FunctionRecord

	// Global aggregates from the totals row, zero if the report had none.
	TotalNLOC     int
	AvgNLOC       float64
	AvgCCN        float64
	AvgTokens     float64
	FunctionCount int
	WarningCount  int

	Diagnostics []Diagnostic
}

type section int

const (
	secNone section = iota
	secFunctions
	secFiles
	secWarnings
	secTotal
)

// Section headers as printed by lizard. Matched by substring, like the
// column labels themselves, so leading/trailing decoration doesn't matter.
const (
	functionHeader = "NLOC    CCN   token  PARAM  length  location"
	fileHeader     = "NLOC    Avg.NLOC  AvgCCN  Avg.token  function_cnt    file"
	totalHeader    = "Total nloc"
)

var (
	// NLOC CCN token PARAM length name@start-end@file
	funcRe = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s+(.+?)@(\d+)-(\d+)@(.+)$`)
	// NLOC Avg.NLOC AvgCCN Avg.token function_cnt file
	fileRe = regexp.MustCompile(`^\s*(\d+)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+(\d+)\s+(.+)$`)
	// Total-nloc Avg.NLOC AvgCCN Avg.token Fun-Cnt Warning-cnt ...
	totalRe = regexp.MustCompile(`^\s*(\d+)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+(\d+)\s+(\d+)`)
)

// Parse converts raw lizard output into a Result. It never fails outright:
// malformed function rows are skipped and recorded as Diagnostics, and an
// empty or unrecognizable input yields an empty Result.
func Parse(raw string) *Result {
	res := &Result{}
	fileIndex := make(map[string]int)

	sec := secNone
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		lineNo := i + 1

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "=") || strings.HasPrefix(line, "-"):
			continue
		case strings.HasPrefix(line, "!!"):
			// Warnings banner. The block that follows repeats function
			// rows for threshold violations; those are already counted.
			sec = secWarnings
			continue
		case strings.Contains(line, functionHeader):
			if sec != secWarnings {
				sec = secFunctions
			}
			continue
		case strings.Contains(line, fileHeader):
			sec = secFiles
			continue
		case strings.Contains(line, totalHeader):
			sec = secTotal
			continue
		case strings.HasSuffix(line, "file analyzed.") || strings.HasSuffix(line, "files analyzed."):
			continue
		case strings.Contains(line, "thresholds exceeded"):
			// "No thresholds exceeded" or the exceeded variant.
			sec = secNone
			continue
		}

		switch sec {
		case secFunctions:
			fn, ok := parseFunctionRow(line)
			if !ok {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					LineNo: lineNo,
					Line:   line,
					Reason: "malformed function row",
				})
				continue
			}
			res.Functions = append(res.Functions, fn)
			idx, seen := fileIndex[fn.Path]
			if !seen {
				idx = len(res.Files)
				fileIndex[fn.Path] = idx
				res.Files = append(res.Files, model.FileRecord{Path: fn.Path})
			}
			res.Files[idx].Functions = append(res.Files[idx].Functions, fn)

		case secFiles:
			m := fileRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			path := strings.TrimSpace(m[6])
			idx, seen := fileIndex[path]
			if !seen {
				// File with zero reported functions.
				idx = len(res.Files)
				fileIndex[path] = idx
				res.Files = append(res.Files, model.FileRecord{Path: path})
			}
			res.Files[idx].NLOC = atoi(m[1])
			res.Files[idx].AvgNLOC = atof(m[2])
			res.Files[idx].AvgCCN = atof(m[3])
			res.Files[idx].AvgTokens = atof(m[4])

		case secTotal:
			m := totalRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			res.TotalNLOC = atoi(m[1])
			res.AvgNLOC = atof(m[2])
			res.AvgCCN = atof(m[3])
			res.AvgTokens = atof(m[4])
			res.FunctionCount = atoi(m[5])
			res.WarningCount = atoi(m[6])
		}
	}

	if res.FunctionCount == 0 {
		res.FunctionCount = len(res.Functions)
	}
	return res
}

func parseFunctionRow(line string) (model.FunctionRecord, bool) {
	m := funcRe.FindStringSubmatch(line)
	if m == nil {
		return model.FunctionRecord{}, false
	}
	return model.FunctionRecord{
		NLOC:      atoi(m[1]),
		CCN:       atoi(m[2]),
		Tokens:    atoi(m[3]),
		Params:    atoi(m[4]),
		Length:    atoi(m[5]),
		Name:      m[6],
		StartLine: atoi(m[7]),
		EndLine:   atoi(m[8]),
		Path:      strings.TrimSpace(m[9]),
	}, true
}

// atoi/atof are safe on regexp-validated digit runs; a value too large for
// int falls back to zero rather than aborting the report.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atof(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
