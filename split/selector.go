package split

import (
	"errors"
	"fmt"

	"github.com/tsawler/stripcut/scan"
	"github.com/tsawler/stripcut/strip"
)

// ErrInvalidConfig is returned (wrapped) when a configuration fails
// validation.
var ErrInvalidConfig = errors.New("split: invalid configuration")

// Config holds the page-height constraints for the selector.
type Config struct {
	// MinPageHeight is the smallest allowed page height in rows. Gaps
	// closer to the previous split than this are not considered.
	MinPageHeight int

	// MaxPageHeight is the largest allowed page height in rows. When no
	// gap is found within it, a forced split is placed exactly here.
	MaxPageHeight int
}

// DefaultConfig returns page-height defaults sized for typical webtoon
// viewers.
func DefaultConfig() Config {
	return Config{
		MinPageHeight: 1000,
		MaxPageHeight: 2000,
	}
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.MaxPageHeight < 1 {
		return fmt.Errorf("%w: max page height must be at least 1, got %d", ErrInvalidConfig, c.MaxPageHeight)
	}
	if c.MinPageHeight < 0 {
		return fmt.Errorf("%w: min page height must not be negative, got %d", ErrInvalidConfig, c.MinPageHeight)
	}
	if c.MinPageHeight > c.MaxPageHeight {
		return fmt.Errorf("%w: min page height %d exceeds max page height %d", ErrInvalidConfig, c.MinPageHeight, c.MaxPageHeight)
	}
	return nil
}

// Warning reports a forced split: a boundary committed without a
// confirmed gap, which may cut through content. Forced splits never
// abort a run; they are collected and returned beside the plan so the
// caller can flag the affected pages for manual review.
type Warning struct {
	// Row is the canvas row of the forced split.
	Row int

	// Reason describes why the split was forced.
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("forced split at row %d: %s", w.Row, w.Reason)
}

// Plan is an ordered sequence of committed split rows. The interior
// splits are strictly increasing and bracketed by the implicit
// boundaries 0 and the canvas height.
type Plan struct {
	splits []int
	height int
}

// NewPlan builds a plan from interior split rows, validating that they
// are strictly increasing and inside (0, height). Useful for callers
// that adjust splits manually before slicing.
func NewPlan(splits []int, height int) (*Plan, error) {
	if height <= 0 {
		return nil, strip.ErrEmptyCanvas
	}
	prev := 0
	for _, s := range splits {
		if s <= prev || s >= height {
			return nil, fmt.Errorf("split: split rows must be strictly increasing within (0, %d), got %v", height, splits)
		}
		prev = s
	}
	return &Plan{splits: append([]int(nil), splits...), height: height}, nil
}

// Splits returns the interior split rows, strictly increasing.
func (p *Plan) Splits() []int {
	return append([]int(nil), p.splits...)
}

// Height returns the canvas height the plan was computed for.
func (p *Plan) Height() int {
	return p.height
}

// PageCount returns the number of pages the plan produces.
func (p *Plan) PageCount() int {
	return len(p.splits) + 1
}

// Boundaries returns every page boundary including the implicit first
// (0) and last (canvas height) ones. Page i spans rows
// [Boundaries()[i], Boundaries()[i+1]).
func (p *Plan) Boundaries() []int {
	b := make([]int, 0, len(p.splits)+2)
	b = append(b, 0)
	b = append(b, p.splits...)
	b = append(b, p.height)
	return b
}

// PlanSplits runs the selector over the confirmed gaps and returns the
// plan together with the forced-split warnings. Gaps must be ordered by
// row and non-overlapping, the way scan.Analyze produces them.
func PlanSplits(canvasHeight int, gaps []scan.Gap, cfg Config) (*Plan, []Warning, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if canvasHeight <= 0 {
		return nil, nil, strip.ErrEmptyCanvas
	}

	sel := selector{gaps: gaps, cfg: cfg, height: canvasHeight}
	for sel.cursor+cfg.MaxPageHeight < canvasHeight {
		sel.step()
	}
	// Remaining rows form the final page, bounded implicitly by the
	// canvas end; it may be shorter than MinPageHeight.
	return &Plan{splits: sel.splits, height: canvasHeight}, sel.warnings, nil
}

// selector holds the forward-scanning state. cursor is the row of the
// last committed split; nextGap trails it so each gap is examined at
// most a constant number of times across the whole run.
type selector struct {
	gaps     []scan.Gap
	cfg      Config
	height   int
	cursor   int
	nextGap  int
	splits   []int
	warnings []Warning
}

// step commits exactly one split: the best qualifying gap cut if the
// search window holds one, otherwise a forced cut at the window's far
// edge. The committed row is always greater than the cursor.
func (s *selector) step() {
	lo := s.cursor + s.cfg.MinPageHeight
	if lo <= s.cursor {
		lo = s.cursor + 1
	}
	hi := s.cursor + s.cfg.MaxPageHeight

	if g, ok := s.bestGap(lo, hi); ok {
		row := g.Mid()
		// A gap may poke out of the window on either side; cut inside
		// the overlap so the page-height bounds hold.
		if low := max(g.StartRow, lo); row < low {
			row = low
		}
		if high := min(g.EndRow, hi); row > high {
			row = high
		}
		s.commit(row)
		return
	}

	s.warnings = append(s.warnings, Warning{
		Row:    hi,
		Reason: fmt.Sprintf("no confirmed gap within rows [%d, %d], content may be cut", lo, hi),
	})
	s.commit(hi)
}

func (s *selector) commit(row int) {
	s.splits = append(s.splits, row)
	s.cursor = row
}

// bestGap returns the gap intersecting [lo, hi] whose midpoint lies
// closest to hi, preferring the thicker gap on a tie.
func (s *selector) bestGap(lo, hi int) (scan.Gap, bool) {
	// Gaps wholly above the window floor can never qualify again:
	// the cursor only moves forward.
	for s.nextGap < len(s.gaps) && s.gaps[s.nextGap].EndRow < lo {
		s.nextGap++
	}

	var best scan.Gap
	bestDist := -1
	for i := s.nextGap; i < len(s.gaps) && s.gaps[i].StartRow <= hi; i++ {
		g := s.gaps[i]
		d := hi - g.Mid()
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist || (d == bestDist && g.Thickness() > best.Thickness()) {
			best, bestDist = g, d
		}
	}
	return best, bestDist >= 0
}
