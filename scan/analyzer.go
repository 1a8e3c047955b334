package scan

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/stripcut/strip"
)

// Sample is the difference score of one sampled canvas row.
type Sample struct {
	// Row is the row index into the canvas.
	Row int

	// Score is the row's difference value in [0, 1].
	Score float64
}

// Result holds the output of one analysis pass.
type Result struct {
	// Samples is the full score profile in row order. Nil unless
	// Config.KeepSamples was set.
	Samples []Sample

	// Gaps are the confirmed blank regions, in row order,
	// non-overlapping.
	Gaps []Gap
}

// RowScore computes the difference score of a single canvas row: the
// maximum absolute luma difference between horizontally adjacent pixels,
// normalized to [0, 1]. A perfectly uniform row scores 0; any hard edge
// in the row pushes the score toward 1. The maximum (rather than the
// mean) is used so that a single pen stroke is enough to mark a wide row
// as busy.
//
// Pure function of the canvas and row index; safe to call concurrently
// and out of order.
func RowScore(c *strip.Canvas, row int) float64 {
	w := c.Width()
	if w < 2 {
		return 0
	}
	pix := c.Row(row)
	maxDiff := 0
	prev := lumaAt(pix, 0)
	for x := 1; x < w; x++ {
		l := lumaAt(pix, x)
		d := l - prev
		if d < 0 {
			d = -d
		}
		if d > maxDiff {
			maxDiff = d
			if maxDiff == 255 {
				break
			}
		}
		prev = l
	}
	return float64(maxDiff) / 255
}

// lumaAt reads the BT.601 luma of pixel x from a raw RGBA row.
func lumaAt(pix []uint8, x int) int {
	i := x * 4
	r := uint32(pix[i])
	g := uint32(pix[i+1])
	b := uint32(pix[i+2])
	return int((299*r + 587*g + 114*b + 500) / 1000)
}

// Analyze scores rows 0, Step, 2·Step, … of the canvas and confirms blank
// gaps. Scoring is fanned out across workers; scores land in a slice
// pre-indexed by sample number so the sequential gap detector sees them
// in row order regardless of which worker finished first.
func Analyze(c *strip.Canvas, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if c.Width() <= 0 || c.Height() <= 0 {
		return nil, strip.ErrEmptyCanvas
	}

	n := (c.Height()-1)/cfg.Step + 1
	samples := make([]Sample, n)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	g := new(errgroup.Group)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < n; i += workers {
				row := i * cfg.Step
				samples[i] = Sample{Row: row, Score: RowScore(c, row)}
			}
			return nil
		})
	}
	// Scoring cannot fail; Wait only joins the workers.
	_ = g.Wait()

	res := &Result{Gaps: DetectGaps(samples, cfg.Sensitivity, cfg.MultilineWindow)}
	if cfg.KeepSamples {
		res.Samples = samples
	}
	return res, nil
}
