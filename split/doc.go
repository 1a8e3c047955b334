// Package split turns confirmed blank gaps into final page boundaries
// and slices the canvas along them.
//
// The selector is a forward-scanning state machine. From the last
// committed split (initially the canvas top) it opens a search window
// [cursor+MinPageHeight, cursor+MaxPageHeight] and looks for the
// qualifying gap whose midpoint sits closest to the window's far edge:
// the latest usable gap wins, so pages run as tall as the gaps allow and
// the page count stays low. When no gap intersects the window the
// selector commits a forced split at exactly cursor+MaxPageHeight and
// records a [Warning] instead of failing, so a run always produces a
// complete plan covering the whole canvas. The cursor strictly advances
// on every commit, which guarantees termination.
//
// Hard splitting is not a separate mode: with scan sensitivity 0 no gap
// is ever confirmed, every window comes up empty, and the selector takes
// the forced branch at every MaxPageHeight interval.
package split
