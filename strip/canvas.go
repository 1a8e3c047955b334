package strip

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrEmptyCanvas is returned when a canvas with zero width or zero height
// is handed to the pipeline. There is nothing to scan or split.
var ErrEmptyCanvas = errors.New("strip: empty canvas (zero width or height)")

// Canvas is the merged full-height strip as a read-only pixel buffer.
type Canvas struct {
	img *image.RGBA
}

// FromImage builds a canvas from any image. An *image.RGBA whose bounds
// start at the origin is adopted without copying; anything else is
// converted into a fresh RGBA buffer.
func FromImage(src image.Image) (*Canvas, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyCanvas
	}
	if rgba, ok := src.(*image.RGBA); ok && b.Min == image.Pt(0, 0) {
		return &Canvas{img: rgba}, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Canvas{img: dst}, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.img.Rect.Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.img.Rect.Dy()
}

// Image returns the underlying RGBA buffer. Callers must treat it as
// read-only while any analysis over this canvas is in flight.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Row returns the raw RGBA bytes of row y (length Width()*4).
// The slice aliases the canvas buffer and must not be modified.
func (c *Canvas) Row(y int) []uint8 {
	start := y * c.img.Stride
	return c.img.Pix[start : start+c.Width()*4 : start+c.Width()*4]
}

// Luma returns the perceived brightness of the pixel at (x, y) using the
// ITU-R BT.601 integer approximation.
func (c *Canvas) Luma(x, y int) uint8 {
	i := y*c.img.Stride + x*4
	r := uint32(c.img.Pix[i])
	g := uint32(c.img.Pix[i+1])
	b := uint32(c.img.Pix[i+2])
	return uint8((299*r + 587*g + 114*b + 500) / 1000)
}

// Slice copies the half-open row range [top, bottom) into a fresh canvas.
// The copy shares no memory with the source, so slices of disjoint ranges
// may be produced concurrently.
func (c *Canvas) Slice(top, bottom int) (*Canvas, error) {
	if top < 0 || bottom > c.Height() || top >= bottom {
		return nil, fmt.Errorf("strip: invalid slice range [%d, %d) for canvas height %d", top, bottom, c.Height())
	}
	dst := image.NewRGBA(image.Rect(0, 0, c.Width(), bottom-top))
	rowLen := c.Width() * 4
	for y := top; y < bottom; y++ {
		copy(dst.Pix[(y-top)*dst.Stride:(y-top)*dst.Stride+rowLen], c.Row(y))
	}
	return &Canvas{img: dst}, nil
}
