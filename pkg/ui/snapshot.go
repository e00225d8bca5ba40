// Package ui provides the terminal user interface for lizardview.
// This file implements the AnalysisSnapshot type for thread-safe rendering.
package ui

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/lizardview/pkg/model"
	"github.com/vanderheijden86/lizardview/pkg/parser"
)

// AnalysisSnapshot is an immutable, self-contained representation of one
// completed analysis. Once created, it never changes - this is critical for
// thread safety while a newer analysis runs in the background.
//
// The UI thread reads exclusively from its current snapshot pointer and
// swaps it atomically when a fresh one arrives.
type AnalysisSnapshot struct {
	// Core data
	Root      string
	Files     []model.FileRecord
	Functions []model.FunctionRecord
	FileMap   map[string]*model.FileRecord // Lookup by path

	// Totals from the report's summary section (fall back to parsed counts)
	TotalNLOC     int
	AvgNLOC       float64
	AvgCCN        float64
	AvgTokens     float64
	FunctionCount int
	WarningCount  int

	// Derived
	BandTotals [model.NumBands]int
	CCNStats   CCNStats

	// Rows the report produced but the viewer could not interpret
	Diagnostics []parser.Diagnostic
	// ExcludedFiles counts files dropped by the exclude globs.
	ExcludedFiles int

	// Metadata
	CreatedAt time.Time
}

// CCNStats summarizes the CCN distribution across all parsed functions.
type CCNStats struct {
	Mean   float64
	Median float64
	P90    float64
	Max    int
}

// SnapshotBuilder constructs AnalysisSnapshots from parse results.
type SnapshotBuilder struct {
	result  *parser.Result
	root    string
	exclude func(path string) bool
}

// NewSnapshotBuilder creates a builder for the given parse result.
func NewSnapshotBuilder(result *parser.Result) *SnapshotBuilder {
	return &SnapshotBuilder{result: result}
}

// WithRoot records the analyzed root path on the snapshot.
func (b *SnapshotBuilder) WithRoot(root string) *SnapshotBuilder {
	b.root = root
	return b
}

// WithExclude drops files (and their functions) whose path matches the
// predicate.
func (b *SnapshotBuilder) WithExclude(fn func(path string) bool) *SnapshotBuilder {
	b.exclude = fn
	return b
}

// Build constructs the final immutable AnalysisSnapshot.
func (b *SnapshotBuilder) Build() *AnalysisSnapshot {
	res := b.result
	if res == nil {
		res = &parser.Result{}
	}

	files := res.Files
	functions := res.Functions
	excluded := 0
	if b.exclude != nil {
		kept := make([]model.FileRecord, 0, len(files))
		for _, f := range files {
			if b.exclude(f.Path) {
				excluded++
				continue
			}
			kept = append(kept, f)
		}
		if excluded > 0 {
			files = kept
			functions = make([]model.FunctionRecord, 0, len(res.Functions))
			for _, fn := range res.Functions {
				if !b.exclude(fn.Path) {
					functions = append(functions, fn)
				}
			}
		}
	}

	fileMap := make(map[string]*model.FileRecord, len(files))
	for i := range files {
		fileMap[files[i].Path] = &files[i]
	}

	functionCount := res.FunctionCount
	if excluded > 0 || functionCount == 0 {
		functionCount = len(functions)
	}

	return &AnalysisSnapshot{
		Root:          b.root,
		Files:         files,
		Functions:     functions,
		FileMap:       fileMap,
		TotalNLOC:     res.TotalNLOC,
		AvgNLOC:       res.AvgNLOC,
		AvgCCN:        res.AvgCCN,
		AvgTokens:     res.AvgTokens,
		FunctionCount: functionCount,
		WarningCount:  res.WarningCount,
		BandTotals:    model.BandCounts(functions),
		CCNStats:      computeCCNStats(functions),
		Diagnostics:   res.Diagnostics,
		ExcludedFiles: excluded,
		CreatedAt:     time.Now(),
	}
}

func computeCCNStats(functions []model.FunctionRecord) CCNStats {
	if len(functions) == 0 {
		return CCNStats{}
	}

	ccns := make([]float64, len(functions))
	maxCCN := 0
	for i, fn := range functions {
		ccns[i] = float64(fn.CCN)
		if fn.CCN > maxCCN {
			maxCCN = fn.CCN
		}
	}
	// Quantile requires sorted input.
	sort.Float64s(ccns)

	return CCNStats{
		Mean:   stat.Mean(ccns, nil),
		Median: stat.Quantile(0.5, stat.Empirical, ccns, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, ccns, nil),
		Max:    maxCCN,
	}
}

// IsEmpty returns true if the snapshot has no parsed functions.
func (s *AnalysisSnapshot) IsEmpty() bool {
	return s == nil || len(s.Functions) == 0
}

// File returns a file record by path, or nil if not found.
func (s *AnalysisSnapshot) File(path string) *model.FileRecord {
	if s == nil || s.FileMap == nil {
		return nil
	}
	return s.FileMap[path]
}

// CriticalCount returns the number of functions in the Critical band.
func (s *AnalysisSnapshot) CriticalCount() int {
	if s == nil {
		return 0
	}
	return s.BandTotals[model.BandCritical]
}

// Age returns how long ago this snapshot was built.
func (s *AnalysisSnapshot) Age() time.Duration {
	if s == nil {
		return 0
	}
	return time.Since(s.CreatedAt)
}
