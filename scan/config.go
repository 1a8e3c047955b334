package scan

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned (wrapped) when a configuration fails
// validation. No scanning happens on an invalid configuration.
var ErrInvalidConfig = errors.New("scan: invalid configuration")

// Config holds the analyzer and gap-detector parameters.
type Config struct {
	// Sensitivity is the blankness threshold τ in [0, 1]. A sampled row
	// counts as blank when its difference score is strictly below τ.
	// At 0 no row is ever blank, so no gaps are confirmed and every
	// split becomes a forced split (hard-split mode).
	Sensitivity float64

	// Step samples every N-th row instead of every row, bounding the
	// scoring cost on very tall canvases. Must be at least 1.
	Step int

	// MultilineWindow is the number of consecutive blank samples
	// required before a run is confirmed as a gap. Must be at least 1.
	// If it exceeds the total sample count of a canvas, no gap can ever
	// be confirmed for that canvas.
	MultilineWindow int

	// KeepSamples retains the full score profile on the analysis result
	// for inspection or plotting by the caller. Off by default; the
	// profile for a tall strip is large and split planning only needs
	// the gaps.
	KeepSamples bool

	// Workers caps the number of concurrent scoring goroutines.
	// Zero or negative means one worker per available CPU.
	Workers int
}

// DefaultConfig returns the default scan configuration.
func DefaultConfig() Config {
	return Config{
		Sensitivity:     0.1,
		Step:            1,
		MultilineWindow: 3,
	}
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.Sensitivity < 0 || c.Sensitivity > 1 {
		return fmt.Errorf("%w: sensitivity must be in [0, 1], got %g", ErrInvalidConfig, c.Sensitivity)
	}
	if c.Step < 1 {
		return fmt.Errorf("%w: step must be at least 1, got %d", ErrInvalidConfig, c.Step)
	}
	if c.MultilineWindow < 1 {
		return fmt.Errorf("%w: multiline window must be at least 1, got %d", ErrInvalidConfig, c.MultilineWindow)
	}
	return nil
}
