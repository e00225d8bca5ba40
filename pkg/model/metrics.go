// Package model defines the analysis record types shared across lzv:
// per-function metrics as reported by lizard, per-file groupings, and the
// complexity band classification used for color-coding.
package model

import "fmt"

// Band is a severity tier derived from a function's cyclomatic complexity.
// It is always computed from CCN, never stored, so the classification can
// not drift from the underlying metric.
type Band int

const (
	BandLow      Band = iota // CCN 1-5
	BandMedium               // CCN 6-10
	BandHigh                 // CCN 11-15
	BandCritical             // CCN > 15
	NumBands                 // Sentinel: total number of bands
)

// String returns a human-readable label for the band.
func (b Band) String() string {
	switch b {
	case BandLow:
		return "Low"
	case BandMedium:
		return "Medium"
	case BandHigh:
		return "High"
	case BandCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// CriticalCCNThreshold is the CCN above which a function is classified
// Critical. Also used by the copy-critical action.
const CriticalCCNThreshold = 15

// BandForCCN classifies a CCN value into a band. Total over all integers:
// values below 1 are clamped into the Low band.
func BandForCCN(ccn int) Band {
	switch {
	case ccn <= 5:
		return BandLow
	case ccn <= 10:
		return BandMedium
	case ccn <= CriticalCCNThreshold:
		return BandHigh
	default:
		return BandCritical
	}
}

// FunctionID identifies a function record. Name alone is not enough:
// overloaded and duplicate names are legal, so the file path and start line
// are part of the identity.
type FunctionID struct {
	Path      string
	Name      string
	StartLine int
}

func (id FunctionID) String() string {
	return fmt.Sprintf("%s:%d:%s", id.Path, id.StartLine, id.Name)
}

// FunctionRecord holds lizard's metrics for a single function.
// Immutable once parsed.
type FunctionRecord struct {
	Name      string
	Path      string
	StartLine int
	EndLine   int

	CCN    int // Cyclomatic complexity number
	NLOC   int // Non-commenting lines of code
	Tokens int // Token count
	Params int // Parameter count
	Length int // Total lines including comments and blanks
}

// ID returns the record's identity tuple.
func (f FunctionRecord) ID() FunctionID {
	return FunctionID{Path: f.Path, Name: f.Name, StartLine: f.StartLine}
}

// Band returns the complexity band for this function.
func (f FunctionRecord) Band() Band {
	return BandForCCN(f.CCN)
}

// FileRecord groups the functions of one source file, in analyzer output
// order, together with lizard's own per-file aggregates when the report
// included a file section.
type FileRecord struct {
	Path string

	// Aggregates as reported by lizard's file section. Zero when the
	// report had no row for this file.
	NLOC      int
	AvgNLOC   float64
	AvgCCN    float64
	AvgTokens float64

	Functions []FunctionRecord
}

// FunctionCount returns the number of functions parsed for this file.
func (f FileRecord) FunctionCount() int {
	return len(f.Functions)
}

// AverageCCN returns the mean CCN over this file's functions, derived from
// the records themselves. An empty file yields 0, not an error.
func (f FileRecord) AverageCCN() float64 {
	if len(f.Functions) == 0 {
		return 0
	}
	sum := 0
	for _, fn := range f.Functions {
		sum += fn.CCN
	}
	return float64(sum) / float64(len(f.Functions))
}

// MaxCCN returns the highest CCN among this file's functions, 0 when empty.
func (f FileRecord) MaxCCN() int {
	max := 0
	for _, fn := range f.Functions {
		if fn.CCN > max {
			max = fn.CCN
		}
	}
	return max
}

// BandCounts tallies functions per complexity band.
func BandCounts(funcs []FunctionRecord) [NumBands]int {
	var counts [NumBands]int
	for _, fn := range funcs {
		counts[fn.Band()]++
	}
	return counts
}
