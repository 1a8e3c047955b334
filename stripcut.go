// Package stripcut provides a fluent API for re-paginating long vertical
// comic strips into pages bounded by a maximum height, cutting inside
// visually blank gaps instead of through panels or lettering.
//
// Basic usage:
//
//	pages, warnings, err := stripcut.Open("chapter-12").Pages()
//	if err != nil {
//	    // handle error
//	}
//	for _, w := range warnings {
//	    log.Println(w)
//	}
//
// With options:
//
//	warnings, err := stripcut.Open("chapter-12").
//	    Sensitivity(0.15).
//	    MaxPageHeight(1600).
//	    Export("out", export.Options{Format: export.JPEG, JPEGQuality: 90})
//
// For finer control the underlying packages are also available: loader
// merges raw pages into a strip canvas, scan finds blank gaps, split
// plans and cuts the pages, export writes them out.
package stripcut

import (
	"errors"
	"image"

	"github.com/tsawler/stripcut/export"
	"github.com/tsawler/stripcut/loader"
	"github.com/tsawler/stripcut/scan"
	"github.com/tsawler/stripcut/split"
	"github.com/tsawler/stripcut/strip"
)

// ErrNoInput is returned by terminal operations on a Stitcher that was
// not given a directory, file list, image, or canvas.
var ErrNoInput = errors.New("stripcut: no input specified")

// Stitcher provides a fluent interface for the merge-scan-split-export
// pipeline. Each configuration method returns a new Stitcher, making
// chains safe to share and reuse.
type Stitcher struct {
	// Exactly one source is set.
	dir    string
	paths  []string
	img    image.Image
	canvas *strip.Canvas

	options stitchOptions

	// Accumulated error (fail-fast).
	err error
}

// Open prepares a Stitcher over every image found in dir, ordered
// naturally by default.
func Open(dir string) *Stitcher {
	return &Stitcher{dir: dir, options: defaultOptions()}
}

// FromImages prepares a Stitcher over an explicit ordered file list.
func FromImages(paths ...string) *Stitcher {
	return &Stitcher{paths: paths, options: defaultOptions()}
}

// FromImage prepares a Stitcher over an already-merged strip image.
func FromImage(img image.Image) *Stitcher {
	return &Stitcher{img: img, options: defaultOptions()}
}

// FromCanvas prepares a Stitcher over an existing canvas.
func FromCanvas(c *strip.Canvas) *Stitcher {
	return &Stitcher{canvas: c, options: defaultOptions()}
}

// clone creates a copy of the Stitcher so chain methods never mutate the
// receiver.
func (s *Stitcher) clone() *Stitcher {
	dup := *s
	dup.paths = append([]string(nil), s.paths...)
	return &dup
}

// Sensitivity sets the blankness threshold τ in [0, 1]. A sampled row
// counts as blank when its difference score falls below τ. Zero disables
// gap detection entirely (hard-split mode).
func (s *Stitcher) Sensitivity(v float64) *Stitcher {
	dup := s.clone()
	dup.options.scan.Sensitivity = v
	return dup
}

// Step samples every n-th row instead of every row.
func (s *Stitcher) Step(n int) *Stitcher {
	dup := s.clone()
	dup.options.scan.Step = n
	return dup
}

// MultilineWindow sets how many consecutive blank samples confirm a gap.
func (s *Stitcher) MultilineWindow(n int) *Stitcher {
	dup := s.clone()
	dup.options.scan.MultilineWindow = n
	return dup
}

// KeepSamples retains the full score profile on Analysis results.
func (s *Stitcher) KeepSamples() *Stitcher {
	dup := s.clone()
	dup.options.scan.KeepSamples = true
	return dup
}

// MinPageHeight sets the smallest allowed page height in rows.
func (s *Stitcher) MinPageHeight(n int) *Stitcher {
	dup := s.clone()
	dup.options.split.MinPageHeight = n
	return dup
}

// MaxPageHeight sets the largest allowed page height in rows.
func (s *Stitcher) MaxPageHeight(n int) *Stitcher {
	dup := s.clone()
	dup.options.split.MaxPageHeight = n
	return dup
}

// SortOrder sets the ordering for images discovered via Open.
func (s *Stitcher) SortOrder(order loader.Sort) *Stitcher {
	dup := s.clone()
	dup.options.sort = order
	return dup
}

// TargetWidth normalizes every input page to the given width instead of
// the narrowest input.
func (s *Stitcher) TargetWidth(n int) *Stitcher {
	dup := s.clone()
	dup.options.load.TargetWidth = n
	return dup
}

// IgnoreUnloadable skips input files that cannot be decoded instead of
// failing the load.
func (s *Stitcher) IgnoreUnloadable() *Stitcher {
	dup := s.clone()
	dup.options.load.IgnoreUnloadable = true
	return dup
}

// Workers caps concurrency for decoding, scanning, slicing, and
// encoding. Zero or negative means one worker per available CPU.
func (s *Stitcher) Workers(n int) *Stitcher {
	dup := s.clone()
	dup.options.load.Workers = n
	dup.options.scan.Workers = n
	return dup
}

// ScanConfig returns the scan configuration the chain has accumulated.
func (s *Stitcher) ScanConfig() scan.Config {
	return s.options.scan
}

// SplitConfig returns the split configuration the chain has accumulated.
func (s *Stitcher) SplitConfig() split.Config {
	return s.options.split
}

// Canvas loads and merges the input into a single strip canvas.
func (s *Stitcher) Canvas() (*strip.Canvas, error) {
	if s.err != nil {
		return nil, s.err
	}
	switch {
	case s.canvas != nil:
		return s.canvas, nil
	case s.img != nil:
		return strip.FromImage(s.img)
	case len(s.paths) > 0:
		return loader.Load(s.paths, s.options.load)
	case s.dir != "":
		return loader.LoadDir(s.dir, s.options.sort, s.options.load)
	default:
		return nil, ErrNoInput
	}
}

// Analysis scores the canvas and returns the confirmed gaps, plus the
// full score profile when KeepSamples was requested.
func (s *Stitcher) Analysis() (*scan.Result, error) {
	c, err := s.Canvas()
	if err != nil {
		return nil, err
	}
	return scan.Analyze(c, s.options.scan)
}

// Plan computes the split plan for the input, returning forced-split
// warnings beside it. The plan always covers the whole canvas; warnings
// flag boundaries that may cut through content.
func (s *Stitcher) Plan() (*split.Plan, []split.Warning, error) {
	c, err := s.Canvas()
	if err != nil {
		return nil, nil, err
	}
	return s.planFor(c)
}

// Pages plans the splits and slices the canvas into page buffers.
func (s *Stitcher) Pages() ([]split.Page, []split.Warning, error) {
	c, err := s.Canvas()
	if err != nil {
		return nil, nil, err
	}
	plan, warnings, err := s.planFor(c)
	if err != nil {
		return nil, nil, err
	}
	pages, err := split.Slice(c, plan)
	if err != nil {
		return nil, nil, err
	}
	return pages, warnings, nil
}

// Export plans, slices, and writes the pages into dir.
func (s *Stitcher) Export(dir string, opts export.Options) ([]split.Warning, error) {
	pages, warnings, err := s.Pages()
	if err != nil {
		return nil, err
	}
	if err := export.WritePages(dir, pages, opts); err != nil {
		return warnings, err
	}
	return warnings, nil
}

func (s *Stitcher) planFor(c *strip.Canvas) (*split.Plan, []split.Warning, error) {
	res, err := scan.Analyze(c, s.options.scan)
	if err != nil {
		return nil, nil, err
	}
	return split.PlanSplits(c.Height(), res.Gaps, s.options.split)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for scripts and
// tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustPages wraps a terminal returning (T, []split.Warning, error),
// panicking on error and discarding warnings.
func MustPages[T any](val T, _ []split.Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
