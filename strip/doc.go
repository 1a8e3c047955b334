// Package strip provides the merged-strip canvas that the analysis
// pipeline operates on.
//
// A [Canvas] is the single tall image formed by vertically concatenating
// all raw input pages. It is treated as read-only for the duration of an
// analysis run: the scanner, the gap detector, and the page slicer all
// share it concurrently without locking because nothing mutates it.
//
// The canvas is backed by an *image.RGBA in row-major order. Construction
// from any other image.Image performs a one-time conversion; construction
// from an *image.RGBA anchored at the origin adopts the buffer directly,
// in which case the caller must not write to it afterwards.
package strip
