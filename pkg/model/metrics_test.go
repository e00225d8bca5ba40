package model

import (
	"testing"

	"pgregory.net/rapid"
)

func TestBandForCCNBoundaries(t *testing.T) {
	cases := []struct {
		ccn  int
		want Band
	}{
		{1, BandLow},
		{5, BandLow},
		{6, BandMedium},
		{10, BandMedium},
		{11, BandHigh},
		{15, BandHigh},
		{16, BandCritical},
		{120, BandCritical},
	}
	for _, tc := range cases {
		if got := BandForCCN(tc.ccn); got != tc.want {
			t.Errorf("BandForCCN(%d) = %v, want %v", tc.ccn, got, tc.want)
		}
	}
}

func TestBandForCCNTotal(t *testing.T) {
	// Every CCN >= 1 maps to exactly one named band.
	rapid.Check(t, func(t *rapid.T) {
		ccn := rapid.IntRange(1, 1_000_000).Draw(t, "ccn")
		b := BandForCCN(ccn)
		if b < BandLow || b >= NumBands {
			t.Fatalf("BandForCCN(%d) = %v out of range", ccn, b)
		}
		if b.String() == "Unknown" {
			t.Fatalf("BandForCCN(%d) has no label", ccn)
		}
	})
}

func TestFileRecordAggregates(t *testing.T) {
	f := FileRecord{
		Path: "a.py",
		Functions: []FunctionRecord{
			{Name: "one", Path: "a.py", StartLine: 1, CCN: 2},
			{Name: "two", Path: "a.py", StartLine: 10, CCN: 8},
			{Name: "three", Path: "a.py", StartLine: 20, CCN: 5},
		},
	}
	if got := f.FunctionCount(); got != 3 {
		t.Errorf("FunctionCount = %d, want 3", got)
	}
	if got := f.MaxCCN(); got != 8 {
		t.Errorf("MaxCCN = %d, want 8", got)
	}
	if got := f.AverageCCN(); got != 5.0 {
		t.Errorf("AverageCCN = %v, want 5.0", got)
	}
}

func TestFileRecordAggregatesEmpty(t *testing.T) {
	var f FileRecord
	if f.FunctionCount() != 0 || f.MaxCCN() != 0 || f.AverageCCN() != 0 {
		t.Errorf("empty FileRecord should yield zero aggregates, got count=%d max=%d avg=%v",
			f.FunctionCount(), f.MaxCCN(), f.AverageCCN())
	}
}

func TestBandCounts(t *testing.T) {
	funcs := []FunctionRecord{
		{CCN: 3}, {CCN: 5}, {CCN: 7}, {CCN: 15}, {CCN: 16}, {CCN: 40},
	}
	counts := BandCounts(funcs)
	if counts[BandLow] != 2 || counts[BandMedium] != 1 || counts[BandHigh] != 1 || counts[BandCritical] != 2 {
		t.Errorf("BandCounts = %v, want [2 1 1 2]", counts)
	}
}

func TestFunctionIDDistinguishesDuplicates(t *testing.T) {
	a := FunctionRecord{Name: "handle", Path: "a.py", StartLine: 10}
	b := FunctionRecord{Name: "handle", Path: "a.py", StartLine: 90}
	if a.ID() == b.ID() {
		t.Error("records with different start lines must have distinct IDs")
	}
}
