package scan

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/tsawler/stripcut/strip"
)

// testCanvas builds a canvas where rows selected by busy carry a hard
// black/white edge (score 1) and all other rows are uniform white
// (score 0).
func testCanvas(t *testing.T, width, height int, busy func(y int) bool) *strip.Canvas {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := white
			if busy != nil && busy(y) && x%2 == 0 {
				px = black
			}
			img.SetRGBA(x, y, px)
		}
	}
	c, err := strip.FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	return c
}

func TestRowScore(t *testing.T) {
	c := testCanvas(t, 8, 2, func(y int) bool { return y == 1 })

	if got := RowScore(c, 0); got != 0 {
		t.Errorf("uniform row: expected score 0, got %g", got)
	}
	if got := RowScore(c, 1); got != 1 {
		t.Errorf("alternating row: expected score 1, got %g", got)
	}
}

func TestRowScore_GradientIsModerate(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 1))
	for x := 0; x < 16; x++ {
		v := uint8(x * 10)
		img.SetRGBA(x, 0, color.RGBA{R: v, G: v, B: v, A: 255})
	}
	c, _ := strip.FromImage(img)

	got := RowScore(c, 0)
	if got <= 0 || got >= 0.1 {
		t.Errorf("smooth gradient should score low but nonzero, got %g", got)
	}
}

func TestRowScore_SingleColumn(t *testing.T) {
	c := testCanvas(t, 1, 1, nil)
	if got := RowScore(c, 0); got != 0 {
		t.Errorf("single-column row has no adjacent pairs, expected 0, got %g", got)
	}
}

func TestAnalyze_ConfigValidation(t *testing.T) {
	c := testCanvas(t, 4, 4, nil)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative sensitivity", Config{Sensitivity: -0.1, Step: 1, MultilineWindow: 1}},
		{"sensitivity above one", Config{Sensitivity: 1.5, Step: 1, MultilineWindow: 1}},
		{"zero step", Config{Sensitivity: 0.5, Step: 0, MultilineWindow: 1}},
		{"zero window", Config{Sensitivity: 0.5, Step: 1, MultilineWindow: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(c, tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestAnalyze_StepSampling(t *testing.T) {
	c := testCanvas(t, 4, 100, nil)

	cfg := DefaultConfig()
	cfg.Step = 7
	cfg.KeepSamples = true

	res, err := Analyze(c, cfg)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	// Rows 0, 7, 14, ..., 98.
	if len(res.Samples) != 15 {
		t.Fatalf("expected 15 samples, got %d", len(res.Samples))
	}
	for i, s := range res.Samples {
		if s.Row != i*7 {
			t.Errorf("sample %d: expected row %d, got %d", i, i*7, s.Row)
		}
	}
}

func TestAnalyze_SamplesDiscardedByDefault(t *testing.T) {
	c := testCanvas(t, 4, 20, nil)

	res, err := Analyze(c, DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Samples != nil {
		t.Error("samples should be discarded unless KeepSamples is set")
	}
}

func TestAnalyze_WorkerCountDoesNotChangeResult(t *testing.T) {
	busy := func(y int) bool { return y%40 < 25 }
	c := testCanvas(t, 8, 400, busy)

	cfg := DefaultConfig()
	cfg.Sensitivity = 0.5
	cfg.KeepSamples = true

	cfg.Workers = 1
	serial, err := Analyze(c, cfg)
	if err != nil {
		t.Fatalf("Analyze (serial) failed: %v", err)
	}
	cfg.Workers = 8
	parallel, err := Analyze(c, cfg)
	if err != nil {
		t.Fatalf("Analyze (parallel) failed: %v", err)
	}

	if len(serial.Samples) != len(parallel.Samples) {
		t.Fatalf("sample counts differ: %d vs %d", len(serial.Samples), len(parallel.Samples))
	}
	for i := range serial.Samples {
		if serial.Samples[i] != parallel.Samples[i] {
			t.Fatalf("sample %d differs: %+v vs %+v", i, serial.Samples[i], parallel.Samples[i])
		}
	}
	if len(serial.Gaps) != len(parallel.Gaps) {
		t.Fatalf("gap counts differ: %d vs %d", len(serial.Gaps), len(parallel.Gaps))
	}
	for i := range serial.Gaps {
		if serial.Gaps[i] != parallel.Gaps[i] {
			t.Errorf("gap %d differs: %+v vs %+v", i, serial.Gaps[i], parallel.Gaps[i])
		}
	}
}

func TestAnalyze_CoarserStepKeepsGapBoundariesClose(t *testing.T) {
	// Content rows 0-99 and 120-299, blank gutter 100-119.
	busy := func(y int) bool { return y < 100 || y >= 120 }
	c := testCanvas(t, 8, 300, busy)

	cfg := DefaultConfig()
	cfg.Sensitivity = 0.5

	fine, err := Analyze(c, cfg)
	if err != nil {
		t.Fatalf("Analyze (step 1) failed: %v", err)
	}
	cfg.Step = 4
	cfg.KeepSamples = true
	coarse, err := Analyze(c, cfg)
	if err != nil {
		t.Fatalf("Analyze (step 4) failed: %v", err)
	}

	if len(coarse.Samples) >= 300 {
		t.Errorf("coarser step must score fewer rows, got %d samples", len(coarse.Samples))
	}
	if len(fine.Gaps) != 1 || len(coarse.Gaps) != 1 {
		t.Fatalf("expected the gap at both steps, got %+v and %+v", fine.Gaps, coarse.Gaps)
	}
	// A coarser step may only shift a confirmed gap's boundaries by up
	// to one sample interval.
	if d := abs(fine.Gaps[0].StartRow - coarse.Gaps[0].StartRow); d > cfg.Step {
		t.Errorf("gap start moved %d rows, more than one step interval", d)
	}
	if d := abs(fine.Gaps[0].EndRow - coarse.Gaps[0].EndRow); d > cfg.Step {
		t.Errorf("gap end moved %d rows, more than one step interval", d)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestAnalyze_FindsGapBetweenPanels(t *testing.T) {
	// Content rows 0-99 and 120-239, blank gutter 100-119.
	busy := func(y int) bool { return y < 100 || y >= 120 }
	c := testCanvas(t, 8, 240, busy)

	cfg := DefaultConfig()
	cfg.Sensitivity = 0.5

	res, err := Analyze(c, cfg)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(res.Gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d: %+v", len(res.Gaps), res.Gaps)
	}
	g := res.Gaps[0]
	if g.StartRow != 100 || g.EndRow != 119 {
		t.Errorf("expected gap [100, 119], got [%d, %d]", g.StartRow, g.EndRow)
	}
	if g.Mid() != 109 {
		t.Errorf("expected midpoint 109, got %d", g.Mid())
	}
}
