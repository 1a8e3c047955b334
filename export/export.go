// Package export writes sliced pages to disk as numbered image files.
package export

import (
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/stripcut/split"
)

// ErrInvalidOptions is returned (wrapped) when export options fail
// validation.
var ErrInvalidOptions = errors.New("export: invalid options")

// Format selects the output image encoding.
type Format int

const (
	// PNG encodes pages losslessly.
	PNG Format = iota

	// JPEG encodes pages with the configured quality.
	JPEG
)

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return "png"
}

// Options controls page encoding.
type Options struct {
	// Format is the output encoding. Defaults to PNG.
	Format Format

	// JPEGQuality is the quality setting for JPEG output, 1-100.
	// Zero means jpeg.DefaultQuality.
	JPEGQuality int

	// Workers caps the number of concurrent encodes. Zero or negative
	// means one per available CPU.
	Workers int
}

func (o Options) validate() error {
	if o.Format != PNG && o.Format != JPEG {
		return fmt.Errorf("%w: unknown format %d", ErrInvalidOptions, o.Format)
	}
	if o.JPEGQuality < 0 || o.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg quality must be in [1, 100], got %d", ErrInvalidOptions, o.JPEGQuality)
	}
	return nil
}

// WritePages encodes every page into dir, named 1-based with enough zero
// padding for the page count ("01.png", "02.png", …). Pages are encoded
// in parallel; the first failure is reported after all encodes finish or
// stop.
func WritePages(dir string, pages []split.Page, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("export: output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("export: %s is not a directory", dir)
	}

	digits := numDigits(len(pages))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, p := range pages {
		g.Go(func() error {
			name := fmt.Sprintf("%0*d.%s", digits, p.Index+1, opts.Format.Ext())
			return writePage(filepath.Join(dir, name), p, opts)
		})
	}
	return g.Wait()
}

func writePage(path string, p split.Page, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: creating %s: %w", path, err)
	}

	switch opts.Format {
	case JPEG:
		q := opts.JPEGQuality
		if q == 0 {
			q = jpeg.DefaultQuality
		}
		err = jpeg.Encode(f, p.Canvas.Image(), &jpeg.Options{Quality: q})
	default:
		err = png.Encode(f, p.Canvas.Image())
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("export: encoding %s: %w", path, err)
	}
	return f.Close()
}

// numDigits returns the decimal digit count of n, at least 1.
func numDigits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
