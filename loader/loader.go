package loader

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/stripcut/strip"
)

// ErrNoImages is returned when a directory contains no decodable image
// files.
var ErrNoImages = errors.New("loader: no images found in directory")

// Sort selects the ordering applied to discovered image files.
type Sort int

const (
	// SortNatural treats digit runs in file names as numbers, so
	// "8.jpg" sorts before "10.jpg". This is the order raw chapter
	// pages are meant to be read in.
	SortNatural Sort = iota

	// SortLexical sorts file names as plain strings.
	SortLexical
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// FindImages lists the image files directly inside dir, ordered
// according to order. Subdirectories are not descended into.
func FindImages(dir string, order Sort) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loader: reading directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, ErrNoImages
	}

	switch order {
	case SortLexical:
		sort.Strings(names)
	default:
		c := collate.New(language.Und, collate.Numeric)
		sort.Slice(names, func(i, j int) bool {
			return c.CompareString(names[i], names[j]) < 0
		})
	}

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// Options controls loading and merging.
type Options struct {
	// TargetWidth is the width every page is normalized to. Zero means
	// the width of the narrowest input image.
	TargetWidth int

	// IgnoreUnloadable skips files whose headers cannot be decoded
	// instead of failing the whole load.
	IgnoreUnloadable bool

	// Workers caps the number of concurrent decodes. Zero or negative
	// means one per available CPU.
	Workers int
}

// pagePlacement records where one input lands in the merged strip.
type pagePlacement struct {
	path    string
	top     int
	height  int
	srcSize image.Point
}

// LoadDir discovers, decodes, and merges every image in dir.
func LoadDir(dir string, order Sort, opts Options) (*strip.Canvas, error) {
	paths, err := FindImages(dir, order)
	if err != nil {
		return nil, err
	}
	return Load(paths, opts)
}

// Load decodes the given images in order, normalizes them to a common
// width, and stacks them vertically into one canvas.
func Load(paths []string, opts Options) (*strip.Canvas, error) {
	if len(paths) == 0 {
		return nil, ErrNoImages
	}

	// First pass reads only headers: dimensions decide the target width
	// and each page's placement before any pixels are decoded.
	var sizes []pagePlacement
	for _, p := range paths {
		w, h, err := imageSize(p)
		if err != nil {
			if opts.IgnoreUnloadable {
				continue
			}
			return nil, err
		}
		sizes = append(sizes, pagePlacement{path: p, srcSize: image.Pt(w, h)})
	}
	if len(sizes) == 0 {
		return nil, ErrNoImages
	}

	width := opts.TargetWidth
	if width <= 0 {
		width = sizes[0].srcSize.X
		for _, s := range sizes[1:] {
			if s.srcSize.X < width {
				width = s.srcSize.X
			}
		}
	}

	total := 0
	for i := range sizes {
		sizes[i].top = total
		sizes[i].height = scaledHeight(sizes[i].srcSize, width)
		total += sizes[i].height
	}
	if total == 0 {
		return nil, strip.ErrEmptyCanvas
	}

	merged := image.NewRGBA(image.Rect(0, 0, width, total))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, pl := range sizes {
		g.Go(func() error {
			return placePage(merged, pl, width)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return strip.FromImage(merged)
}

// placePage decodes one input and writes it into its row range of the
// merged buffer. Ranges are disjoint, so concurrent placements never
// touch the same rows.
func placePage(merged *image.RGBA, pl pagePlacement, width int) error {
	f, err := os.Open(pl.path)
	if err != nil {
		return fmt.Errorf("loader: opening %s: %w", pl.path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("loader: decoding %s: %w", pl.path, err)
	}

	dst := image.Rect(0, pl.top, width, pl.top+pl.height)
	if img.Bounds().Dx() == width && img.Bounds().Dy() == pl.height {
		draw.Draw(merged, dst, img, img.Bounds().Min, draw.Src)
		return nil
	}
	xdraw.CatmullRom.Scale(merged, dst, img, img.Bounds(), xdraw.Src, nil)
	return nil
}

// imageSize reads just enough of the file to learn its dimensions.
func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("loader: opening %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// scaledHeight preserves aspect ratio when normalizing to width,
// rounding to the nearest row but never below one.
func scaledHeight(src image.Point, width int) int {
	if src.X == width {
		return src.Y
	}
	h := (src.Y*width + src.X/2) / src.X
	if h < 1 {
		h = 1
	}
	return h
}
