package parser

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/lizardview/pkg/model"
)

const sampleReport = `================================================
  NLOC    CCN   token  PARAM  length  location
------------------------------------------------
      12      3     80      1      14 foo@1-14@src/fileA.py
      40     20    350      4      55 bar@3-57@src/fileB.py
       8      2     44      0       9 baz@60-68@src/fileA.py
2 file analyzed.
==============================================================
NLOC    Avg.NLOC  AvgCCN  Avg.token  function_cnt    file
--------------------------------------------------------------
     25      10.0     2.5      62.0         2     src/fileA.py
     41      40.0    20.0     350.0         1     src/fileB.py
=========================================================================================
!! warnings (cyclomatic_complexity > 15 or length > 1000 or parameter_count > 100) !!
================================================
  NLOC    CCN   token  PARAM  length  location
------------------------------------------------
      40     20    350      4      55 bar@3-57@src/fileB.py
==========================================================================================
Total nloc   Avg.NLOC  AvgCCN  Avg.token  Fun Cnt  Warning cnt   Fun Rt   nloc Rt
------------------------------------------------------------------------------------------
        66      20.0     8.3     158.0        3            1      0.33    0.62
`

func TestParseSampleReport(t *testing.T) {
	res := Parse(sampleReport)

	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if got := len(res.Functions); got != 3 {
		t.Fatalf("expected 3 functions, got %d: %+v", got, res.Functions)
	}
	if got := len(res.Files); got != 2 {
		t.Fatalf("expected 2 files, got %d", got)
	}

	// Functions keep analyzer output order.
	wantNames := []string{"foo", "bar", "baz"}
	for i, fn := range res.Functions {
		if fn.Name != wantNames[i] {
			t.Errorf("function %d = %q, want %q", i, fn.Name, wantNames[i])
		}
	}

	// Files keep first-seen order and group their own functions.
	if res.Files[0].Path != "src/fileA.py" || res.Files[1].Path != "src/fileB.py" {
		t.Errorf("file order wrong: %q, %q", res.Files[0].Path, res.Files[1].Path)
	}
	if got := res.Files[0].FunctionCount(); got != 2 {
		t.Errorf("fileA function count = %d, want 2", got)
	}

	// File-section aggregates merged onto the grouped records.
	if res.Files[1].NLOC != 41 || res.Files[1].AvgCCN != 20.0 {
		t.Errorf("fileB aggregates = NLOC %d AvgCCN %v, want 41/20.0", res.Files[1].NLOC, res.Files[1].AvgCCN)
	}

	// Field extraction on one record.
	bar := res.Functions[1]
	if bar.CCN != 20 || bar.NLOC != 40 || bar.Tokens != 350 || bar.Params != 4 ||
		bar.Length != 55 || bar.StartLine != 3 || bar.EndLine != 57 || bar.Path != "src/fileB.py" {
		t.Errorf("bar parsed wrong: %+v", bar)
	}

	// Totals row.
	if res.TotalNLOC != 66 || res.FunctionCount != 3 || res.WarningCount != 1 {
		t.Errorf("totals = nloc %d funcs %d warnings %d, want 66/3/1",
			res.TotalNLOC, res.FunctionCount, res.WarningCount)
	}
	if res.AvgCCN != 8.3 {
		t.Errorf("AvgCCN = %v, want 8.3", res.AvgCCN)
	}
}

func TestParseWarningsBlockNotDoubleCounted(t *testing.T) {
	// The warnings block repeats function rows under a fresh column header.
	// Those rows must not be appended a second time.
	res := Parse(sampleReport)
	counts := model.BandCounts(res.Functions)
	if counts[model.BandCritical] != 1 {
		t.Errorf("critical count = %d, want 1 (warnings block double-counted?)", counts[model.BandCritical])
	}
}

func TestParseHeaderAndSummarySkipped(t *testing.T) {
	raw := strings.Join([]string{
		"  NLOC    CCN   token  PARAM  length  location  ",
		"------------------------------------------------",
		"      10      3     70      1      12 foo@1-12@fileA.py",
		"      30     20    250      2      40 bar@1-40@fileB.py",
		"Total nloc   Avg.NLOC  AvgCCN  Avg.token  Fun Cnt  Warning cnt   Fun Rt   nloc Rt",
		"        40      20.0    11.5     160.0        2            1      0.50    0.75",
	}, "\n")
	res := Parse(raw)
	if len(res.Files) != 2 || len(res.Functions) != 2 {
		t.Fatalf("expected 2 files / 2 functions, got %d/%d", len(res.Files), len(res.Functions))
	}
	counts := model.BandCounts(res.Functions)
	if counts[model.BandLow] != 1 || counts[model.BandCritical] != 1 {
		t.Errorf("band counts = %v, want Low:1 Critical:1", counts)
	}
}

func TestParseMalformedRowRecordsDiagnostic(t *testing.T) {
	raw := strings.Join([]string{
		"  NLOC    CCN   token  PARAM  length  location  ",
		"      10      3     70      1      12 foo@1-12@fileA.py",
		"      oops   bad    row",
		"      11      4     71      1      13 bar@14-27@fileA.py",
	}, "\n")
	res := Parse(raw)
	if got := len(res.Functions); got != 2 {
		t.Fatalf("expected 2 functions around the bad row, got %d", got)
	}
	if got := len(res.Diagnostics); got != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", got, res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.LineNo != 3 || !strings.Contains(d.Line, "oops") {
		t.Errorf("diagnostic = %+v, want line 3 with offending text", d)
	}
}

func TestParseWindowsPaths(t *testing.T) {
	// Drive-letter colons are fine: the location field is @-delimited.
	raw := strings.Join([]string{
		"  NLOC    CCN   token  PARAM  length  location  ",
		`      10      3     70      1      12 foo@1-12@C:\src\fileA.py`,
	}, "\n")
	res := Parse(raw)
	if len(res.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d (diags: %v)", len(res.Functions), res.Diagnostics)
	}
	if res.Functions[0].Path != `C:\src\fileA.py` {
		t.Errorf("path = %q", res.Functions[0].Path)
	}
}

func TestParseEmptyInput(t *testing.T) {
	res := Parse("")
	if len(res.Files) != 0 || len(res.Functions) != 0 || len(res.Diagnostics) != 0 {
		t.Errorf("empty input should yield empty result, got %+v", res)
	}
	if res.FunctionCount != 0 {
		t.Errorf("FunctionCount = %d, want 0", res.FunctionCount)
	}
}

func TestParseDuplicateNamesKeptDistinct(t *testing.T) {
	raw := strings.Join([]string{
		"  NLOC    CCN   token  PARAM  length  location  ",
		"      10      3     70      1      12 handle@1-12@fileA.py",
		"      10      7     70      1      12 handle@20-31@fileA.py",
	}, "\n")
	res := Parse(raw)
	if len(res.Functions) != 2 {
		t.Fatalf("expected both overloads, got %d", len(res.Functions))
	}
	if res.Functions[0].ID() == res.Functions[1].ID() {
		t.Error("duplicate names with different start lines should have distinct IDs")
	}
}

func TestParseTotalsFallbackToParsedCount(t *testing.T) {
	raw := strings.Join([]string{
		"  NLOC    CCN   token  PARAM  length  location  ",
		"      10      3     70      1      12 foo@1-12@fileA.py",
	}, "\n")
	res := Parse(raw)
	if res.FunctionCount != 1 {
		t.Errorf("FunctionCount = %d, want fallback to 1", res.FunctionCount)
	}
}
