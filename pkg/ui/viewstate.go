package ui

import (
	"sort"
	"strings"

	"github.com/vanderheijden86/lizardview/pkg/model"
)

// SortKey selects the ordering of the function table.
type SortKey int

const (
	// SortByCCN orders by cyclomatic complexity, highest first.
	SortByCCN SortKey = iota
	// SortByNLOC orders by lines of code, highest first.
	SortByNLOC
	// SortByName orders alphabetically by function name.
	SortByName
	numSortKeys
)

func (k SortKey) String() string {
	switch k {
	case SortByCCN:
		return "CCN"
	case SortByNLOC:
		return "NLOC"
	case SortByName:
		return "Name"
	default:
		return "?"
	}
}

// Next cycles to the following sort key.
func (k SortKey) Next() SortKey {
	return (k + 1) % numSortKeys
}

// ViewTab selects which table is shown.
type ViewTab int

const (
	TabFunctions ViewTab = iota
	TabFiles
)

func (t ViewTab) String() string {
	if t == TabFiles {
		return "Files"
	}
	return "Functions"
}

// ViewState holds the presentation state layered over a snapshot: the sort
// order, the text filter, and the active tab. It never mutates the snapshot.
type ViewState struct {
	Sort   SortKey
	Filter string
	Tab    ViewTab
}

// matchesFilter reports whether the needle occurs in any of the haystacks,
// case-insensitively. An empty needle matches everything.
func matchesFilter(needle string, haystacks ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// VisibleFunctions returns the functions passing the filter, ordered by the
// current sort key. The sort is stable so equal keys keep report order, and
// the snapshot's own slice is never reordered.
func (v ViewState) VisibleFunctions(s *AnalysisSnapshot) []model.FunctionRecord {
	if s == nil {
		return nil
	}

	rows := make([]model.FunctionRecord, 0, len(s.Functions))
	for _, fn := range s.Functions {
		if matchesFilter(v.Filter, fn.Name, fn.Path) {
			rows = append(rows, fn)
		}
	}

	switch v.Sort {
	case SortByNLOC:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].NLOC > rows[j].NLOC
		})
	case SortByName:
		sort.SliceStable(rows, func(i, j int) bool {
			return lessFold(rows[i].Name, rows[j].Name)
		})
	default:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].CCN > rows[j].CCN
		})
	}
	return rows
}

// lessFold orders strings case-insensitively, falling back to the raw bytes
// so names differing only in case still get a deterministic order.
func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// VisibleFiles returns the files passing the filter, ordered by the current
// sort key (CCN sorts by the file's max CCN, NLOC by file NLOC, Name by path).
func (v ViewState) VisibleFiles(s *AnalysisSnapshot) []model.FileRecord {
	if s == nil {
		return nil
	}

	rows := make([]model.FileRecord, 0, len(s.Files))
	for _, f := range s.Files {
		if matchesFilter(v.Filter, f.Path) {
			rows = append(rows, f)
		}
	}

	switch v.Sort {
	case SortByNLOC:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].NLOC > rows[j].NLOC
		})
	case SortByName:
		sort.SliceStable(rows, func(i, j int) bool {
			return lessFold(rows[i].Path, rows[j].Path)
		})
	default:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].MaxCCN() > rows[j].MaxCCN()
		})
	}
	return rows
}
