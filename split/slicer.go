package split

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/stripcut/strip"
)

// Page is one output page cut from the canvas: the rows
// [Top, Bottom) copied into an independent buffer.
type Page struct {
	// Index is the page's position in the plan, starting at 0.
	Index int

	// Top and Bottom are the page's boundaries in canvas rows,
	// half-open.
	Top, Bottom int

	// Canvas holds the page pixels. It shares no memory with the
	// source canvas.
	Canvas *strip.Canvas
}

// Height returns the page height in rows. Callers exporting to formats
// with hard dimension limits should check it before encoding.
func (p Page) Height() int {
	return p.Bottom - p.Top
}

// Slice cuts the canvas into one page per consecutive pair of plan
// boundaries. Pages are returned in top-to-bottom order and their
// concatenation reproduces the canvas row-for-row. Page copies cover
// disjoint row ranges and run in parallel.
func Slice(c *strip.Canvas, plan *Plan) ([]Page, error) {
	if plan.Height() != c.Height() {
		return nil, fmt.Errorf("split: plan height %d does not match canvas height %d", plan.Height(), c.Height())
	}

	bounds := plan.Boundaries()
	pages := make([]Page, len(bounds)-1)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < len(bounds)-1; i++ {
		g.Go(func() error {
			sub, err := c.Slice(bounds[i], bounds[i+1])
			if err != nil {
				return err
			}
			pages[i] = Page{Index: i, Top: bounds[i], Bottom: bounds[i+1], Canvas: sub}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}
