package scan

// Gap is a confirmed blank region: a maximal run of consecutive sampled
// rows whose scores all fall below the sensitivity threshold, at least
// MultilineWindow samples long. StartRow and EndRow are the first and
// last sampled rows of the run (inclusive).
type Gap struct {
	StartRow int
	EndRow   int
}

// Mid returns the gap's midpoint row, the preferred cut position.
func (g Gap) Mid() int {
	return (g.StartRow + g.EndRow) / 2
}

// Thickness returns the gap's extent in rows.
func (g Gap) Thickness() int {
	return g.EndRow - g.StartRow + 1
}

// DetectGaps walks the samples in row order and returns the maximal
// non-overlapping runs of consecutive samples with score < sensitivity
// whose length reaches window. Samples must be ordered by row, the way
// Analyze produces them.
func DetectGaps(samples []Sample, sensitivity float64, window int) []Gap {
	var gaps []Gap
	runStart := -1
	for i, s := range samples {
		if s.Score < sensitivity {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			if i-runStart >= window {
				gaps = append(gaps, Gap{StartRow: samples[runStart].Row, EndRow: samples[i-1].Row})
			}
			runStart = -1
		}
	}
	if runStart >= 0 && len(samples)-runStart >= window {
		gaps = append(gaps, Gap{StartRow: samples[runStart].Row, EndRow: samples[len(samples)-1].Row})
	}
	return gaps
}
