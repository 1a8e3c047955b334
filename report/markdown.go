// Package report renders a stitch run as a Markdown document: the
// configuration used, the resulting page table, and alerts for any
// forced splits that may need manual review.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/tsawler/stripcut/scan"
	"github.com/tsawler/stripcut/split"
)

// Run collects everything one stitch run produced that is worth
// reporting.
type Run struct {
	// Source describes the input (a directory or file list), free-form.
	Source string

	// CanvasWidth and CanvasHeight are the merged strip dimensions.
	CanvasWidth  int
	CanvasHeight int

	// ScanConfig and SplitConfig are the configurations the run used.
	ScanConfig  scan.Config
	SplitConfig split.Config

	// Plan is the computed split plan.
	Plan *split.Plan

	// Warnings are the forced-split warnings, in row order.
	Warnings []split.Warning
}

// Write renders the run report as Markdown to w.
func Write(w io.Writer, run Run) error {
	md := markdown.NewMarkdown(w)

	md.H1("Stitch Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", run.Source},
			{"Canvas", fmt.Sprintf("%d x %d", run.CanvasWidth, run.CanvasHeight)},
			{"Sensitivity", strconv.FormatFloat(run.ScanConfig.Sensitivity, 'g', -1, 64)},
			{"Scan step", strconv.Itoa(run.ScanConfig.Step)},
			{"Multiline window", strconv.Itoa(run.ScanConfig.MultilineWindow)},
			{"Page height", fmt.Sprintf("%d - %d", run.SplitConfig.MinPageHeight, run.SplitConfig.MaxPageHeight)},
		},
	})
	md.PlainText("")

	writePages(md, run)
	writeWarnings(md, run)

	return md.Build()
}

func writePages(md *markdown.Markdown, run Run) {
	md.H2("Pages")
	md.PlainText("")

	forced := make(map[int]bool, len(run.Warnings))
	for _, w := range run.Warnings {
		forced[w.Row] = true
	}

	bounds := run.Plan.Boundaries()
	rows := make([][]string, 0, len(bounds)-1)
	for i := 1; i < len(bounds); i++ {
		cut := "gap"
		switch {
		case i == len(bounds)-1:
			cut = "end of strip"
		case forced[bounds[i]]:
			cut = "forced"
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(bounds[i-1]),
			strconv.Itoa(bounds[i]),
			strconv.Itoa(bounds[i] - bounds[i-1]),
			cut,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Page", "Top", "Bottom", "Height", "Cut"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeWarnings(md *markdown.Markdown, run Run) {
	md.H2("Warnings")
	md.PlainText("")
	if len(run.Warnings) == 0 {
		md.Tip("Every split landed inside a confirmed gap.")
		md.PlainText("")
		return
	}

	md.Warningf("%d forced split(s); the affected pages may cut through content and should be reviewed.", len(run.Warnings))
	md.PlainText("")
	items := make([]string, len(run.Warnings))
	for i, w := range run.Warnings {
		items[i] = w.String()
	}
	md.BulletList(items...)
	md.PlainText("")
}
