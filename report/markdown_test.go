package report

import (
	"strings"
	"testing"

	"github.com/tsawler/stripcut/scan"
	"github.com/tsawler/stripcut/split"
)

func testRun(t *testing.T, warnings []split.Warning) Run {
	t.Helper()
	plan, err := split.NewPlan([]int{1010, 2400}, 3000)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	return Run{
		Source:       "chapter-12",
		CanvasWidth:  800,
		CanvasHeight: 3000,
		ScanConfig:   scan.DefaultConfig(),
		SplitConfig:  split.Config{MinPageHeight: 800, MaxPageHeight: 1200},
		Plan:         plan,
		Warnings:     warnings,
	}
}

func TestWrite_CleanRun(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, testRun(t, nil)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"# Stitch Report",
		"chapter-12",
		"800 x 3000",
		"## Pages",
		"1010",
		"end of strip",
		"## Warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "forced") {
		t.Errorf("clean run should not mention forced splits:\n%s", out)
	}
}

func TestWrite_ForcedSplits(t *testing.T) {
	warnings := []split.Warning{
		{Row: 2400, Reason: "no confirmed gap within rows [1810, 2400], content may be cut"},
	}

	var sb strings.Builder
	if err := Write(&sb, testRun(t, warnings)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "forced") {
		t.Errorf("expected page 2 marked as forced:\n%s", out)
	}
	if !strings.Contains(out, "forced split at row 2400") {
		t.Errorf("expected warning list entry:\n%s", out)
	}
}
