// Package export writes the current analysis as a machine-readable JSON
// report, for feeding dashboards or diffing runs outside the TUI.
package export

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/lizardview/pkg/model"
)

// Report is the JSON shape of one analysis run.
type Report struct {
	Root        string         `json:"root"`
	GeneratedAt time.Time      `json:"generated_at"`
	Summary     Summary        `json:"summary"`
	Files       []FileReport   `json:"files"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
}

// Summary carries the global aggregates.
type Summary struct {
	Files         int            `json:"files"`
	Functions     int            `json:"functions"`
	TotalNLOC     int            `json:"total_nloc"`
	AvgCCN        float64        `json:"avg_ccn"`
	WarningCount  int            `json:"warning_count"`
	BandCounts    map[string]int `json:"band_counts"`
}

// FileReport is one file with its functions.
type FileReport struct {
	Path      string           `json:"path"`
	NLOC      int              `json:"nloc"`
	AvgCCN    float64          `json:"avg_ccn"`
	MaxCCN    int              `json:"max_ccn"`
	Functions []FunctionReport `json:"functions"`
}

// FunctionReport is one function row.
type FunctionReport struct {
	Name      string `json:"name"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	CCN       int    `json:"ccn"`
	NLOC      int    `json:"nloc"`
	Tokens    int    `json:"tokens"`
	Params    int    `json:"params"`
	Length    int    `json:"length"`
	Band      string `json:"band"`
}

// Build assembles a Report from parsed records and summary numbers.
func Build(root string, files []model.FileRecord, funcs []model.FunctionRecord,
	totalNLOC int, avgCCN float64, warnings int, diagnostics []string) Report {

	counts := model.BandCounts(funcs)
	bandCounts := make(map[string]int, int(model.NumBands))
	for b := model.BandLow; b < model.NumBands; b++ {
		bandCounts[b.String()] = counts[b]
	}

	fileReports := make([]FileReport, 0, len(files))
	for _, f := range files {
		fr := FileReport{
			Path:   f.Path,
			NLOC:   f.NLOC,
			AvgCCN: f.AverageCCN(),
			MaxCCN: f.MaxCCN(),
		}
		for _, fn := range f.Functions {
			fr.Functions = append(fr.Functions, FunctionReport{
				Name:      fn.Name,
				StartLine: fn.StartLine,
				EndLine:   fn.EndLine,
				CCN:       fn.CCN,
				NLOC:      fn.NLOC,
				Tokens:    fn.Tokens,
				Params:    fn.Params,
				Length:    fn.Length,
				Band:      fn.Band().String(),
			})
		}
		fileReports = append(fileReports, fr)
	}

	return Report{
		Root:        root,
		GeneratedAt: time.Now().UTC(),
		Summary: Summary{
			Files:        len(files),
			Functions:    len(funcs),
			TotalNLOC:    totalNLOC,
			AvgCCN:       avgCCN,
			WarningCount: warnings,
			BandCounts:   bandCounts,
		},
		Files:       fileReports,
		Diagnostics: diagnostics,
	}
}

// WriteFile marshals the report and writes it to path.
func WriteFile(path string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
