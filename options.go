package stripcut

import (
	"github.com/tsawler/stripcut/loader"
	"github.com/tsawler/stripcut/scan"
	"github.com/tsawler/stripcut/split"
)

// stitchOptions holds the configuration a Stitcher chain has accumulated.
// All fields are value types, so a plain copy is a deep copy.
type stitchOptions struct {
	scan  scan.Config
	split split.Config
	sort  loader.Sort
	load  loader.Options
}

// defaultOptions returns the default stitch options.
func defaultOptions() stitchOptions {
	return stitchOptions{
		scan:  scan.DefaultConfig(),
		split: split.DefaultConfig(),
		sort:  loader.SortNatural,
	}
}
