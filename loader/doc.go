// Package loader discovers raw page images, decodes them, and merges
// them into a single strip canvas for analysis.
//
// Discovery accepts jpg, jpeg, png, webp, bmp, tif and tiff files and
// orders them naturally by default ("8.jpg" before "10.jpg"), since raw
// chapter pages are almost always numbered without zero padding.
//
// Merging normalizes every page to a common width (the narrowest input
// unless a target width is given), scaling with Catmull-Rom resampling,
// and stacks the pages vertically. Pages land in disjoint row ranges of
// the merged buffer, so decode-and-place runs in parallel across inputs.
package loader
