// Package scan locates visually blank regions in a merged strip canvas.
//
// The pipeline has two stages. The scan-line analyzer assigns every
// sampled row a difference score in [0, 1]: near zero means the row is
// visually uniform (background between panels), larger values mean the
// row carries content (line art, lettering, panel borders). The gap
// detector then walks the scored rows in order and confirms maximal runs
// of consecutive blank samples as [Gap] regions.
//
// A single blank scan line is never enough to confirm a gap. The spacing
// between two lines of lettering produces isolated blank rows, and
// cutting there would shear a speech bubble in half. A run must span
// Config.MultilineWindow consecutive samples before it counts; real
// panel gutters are thick enough in pixels to clear that bar, lettering
// gaps are not, because the text rows on either side break the run
// first.
//
// Scoring is a pure function of the canvas and the row index, so sampled
// rows are scored concurrently. Gap detection depends on run continuity
// across rows and runs as a single sequential pass over the gathered
// scores.
package scan
