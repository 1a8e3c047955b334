// Command stripcut merges raw webtoon page images into one tall strip
// and re-cuts it into pages of bounded height, splitting inside blank
// gaps whenever the strip allows it.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tsawler/stripcut/export"
	"github.com/tsawler/stripcut/loader"
	"github.com/tsawler/stripcut/report"
	"github.com/tsawler/stripcut/scan"
	"github.com/tsawler/stripcut/split"
	"github.com/tsawler/stripcut/strip"
)

const appName = "stripcut"

var Version = "0.1.0"

// appFlags holds every flag value; defaults are seeded from the TOML
// config file when one exists.
type appFlags struct {
	dir              string
	output           string
	sortOrder        string
	sensitivity      float64
	step             int
	multilineWindow  int
	minHeight        int
	maxHeight        int
	width            int
	format           string
	jpegQuality      int
	ignoreUnloadable bool
	workers          int
	reportPath       string
	logLevel         string
	showVersion      bool
}

func main() {
	cfg, err := LoadConfigFromFile(DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}

	flags := &appFlags{}

	rootCmd := &cobra.Command{
		Use:   appName + " [images...]",
		Short: "Re-paginate webtoon strips along blank gaps",
		Long: "Merges raw page images into one tall strip and re-cuts it into pages\n" +
			"bounded by a maximum height, choosing split rows inside visually blank\n" +
			"regions rather than through panels or lettering.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(flags, args)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "A directory of images to stitch")
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", ".", "The output directory for the cut pages")
	rootCmd.Flags().StringVarP(&flags.sortOrder, "sort", "s", "natural", "Ordering for --dir images: natural or lexical")
	rootCmd.Flags().Float64Var(&flags.sensitivity, "sensitivity", cfg.Scan.Sensitivity, "Blankness threshold in [0,1]; 0 forces every split")
	rootCmd.Flags().IntVar(&flags.step, "step", cfg.Scan.Step, "Scan every N-th row")
	rootCmd.Flags().IntVar(&flags.multilineWindow, "window", cfg.Scan.MultilineWindow, "Consecutive blank samples required to confirm a gap")
	rootCmd.Flags().IntVar(&flags.minHeight, "min-height", cfg.Pages.MinHeight, "Minimum page height in pixels")
	rootCmd.Flags().IntVar(&flags.maxHeight, "max-height", cfg.Pages.MaxHeight, "Maximum page height in pixels")
	rootCmd.Flags().IntVarP(&flags.width, "width", "w", cfg.Pages.Width, "Normalize pages to this width (0 = narrowest input)")
	rootCmd.Flags().StringVarP(&flags.format, "format", "f", cfg.Output.Format, "Output format: png or jpg")
	rootCmd.Flags().IntVarP(&flags.jpegQuality, "quality", "q", cfg.Output.JpegQuality, "JPEG quality (1-100)")
	rootCmd.Flags().BoolVar(&flags.ignoreUnloadable, "ignore-unloadable", false, "Skip images that fail to decode")
	rootCmd.Flags().IntVar(&flags.workers, "workers", 0, "Concurrency limit (0 = one per CPU)")
	rootCmd.Flags().StringVar(&flags.reportPath, "report", "", "Write a Markdown run report to this path")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVarP(&flags.showVersion, "version", "v", false, "Print version and exit")

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func runApp(flags *appFlags, images []string) error {
	if flags.showVersion {
		fmt.Printf("%s version: %s\n", appName, Version)
		return nil
	}
	initLogger(flags.logLevel)

	scanCfg := scan.Config{
		Sensitivity:     flags.sensitivity,
		Step:            flags.step,
		MultilineWindow: flags.multilineWindow,
		Workers:         flags.workers,
	}
	splitCfg := split.Config{
		MinPageHeight: flags.minHeight,
		MaxPageHeight: flags.maxHeight,
	}
	if err := scanCfg.Validate(); err != nil {
		return err
	}
	if err := splitCfg.Validate(); err != nil {
		return err
	}
	exportOpts, err := exportOptions(flags)
	if err != nil {
		return err
	}

	canvas, source, err := loadCanvas(flags, images)
	if err != nil {
		return err
	}
	slog.Info("merged strip", "source", source, "width", canvas.Width(), "height", canvas.Height())

	res, err := scan.Analyze(canvas, scanCfg)
	if err != nil {
		return err
	}
	slog.Info("scan complete", "gaps", len(res.Gaps))

	plan, warnings, err := split.PlanSplits(canvas.Height(), res.Gaps, splitCfg)
	if err != nil {
		return err
	}
	pages, err := split.Slice(canvas, plan)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(flags.output, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := export.WritePages(flags.output, pages, exportOpts); err != nil {
		return err
	}

	if flags.reportPath != "" {
		if err := writeReport(flags.reportPath, report.Run{
			Source:       source,
			CanvasWidth:  canvas.Width(),
			CanvasHeight: canvas.Height(),
			ScanConfig:   scanCfg,
			SplitConfig:  splitCfg,
			Plan:         plan,
			Warnings:     warnings,
		}); err != nil {
			return err
		}
	}

	for _, w := range warnings {
		color.New(color.FgYellow).Fprintf(os.Stderr, "warning: %s\n", w)
	}
	color.New(color.FgGreen).Printf("Wrote %d pages to %s\n", len(pages), flags.output)
	return nil
}

// loadCanvas merges either the positional image arguments or the --dir
// contents into one strip.
func loadCanvas(flags *appFlags, images []string) (*strip.Canvas, string, error) {
	opts := loader.Options{
		TargetWidth:      flags.width,
		IgnoreUnloadable: flags.ignoreUnloadable,
		Workers:          flags.workers,
	}
	switch {
	case len(images) > 0 && flags.dir != "":
		return nil, "", fmt.Errorf("pass either image arguments or --dir, not both")
	case len(images) > 0:
		c, err := loader.Load(images, opts)
		return c, fmt.Sprintf("%d images", len(images)), err
	case flags.dir != "":
		order := loader.SortNatural
		switch strings.ToLower(flags.sortOrder) {
		case "natural":
		case "lexical", "logical":
			order = loader.SortLexical
		default:
			return nil, "", fmt.Errorf("unknown sort order %q", flags.sortOrder)
		}
		c, err := loader.LoadDir(flags.dir, order, opts)
		return c, flags.dir, err
	default:
		return nil, "", fmt.Errorf("no input: pass image files or --dir (see --help)")
	}
}

func exportOptions(flags *appFlags) (export.Options, error) {
	opts := export.Options{
		JPEGQuality: flags.jpegQuality,
		Workers:     flags.workers,
	}
	switch strings.ToLower(flags.format) {
	case "png":
		opts.Format = export.PNG
	case "jpg", "jpeg":
		opts.Format = export.JPEG
	default:
		return opts, fmt.Errorf("unknown output format %q", flags.format)
	}
	return opts, nil
}

func writeReport(path string, run report.Run) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := report.Write(f, run); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	return f.Close()
}

func initLogger(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug", "dbg":
		l = slog.LevelDebug
	case "info", "inf":
		l = slog.LevelInfo
	case "error", "err":
		l = slog.LevelError
	default:
		l = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}
