package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gardar/ocrebuild/internal/config"
	"github.com/gardar/ocrebuild/pkg/pipeline"
)

type mode int

const (
	modeAll mode = iota
	modeText
	modePDF
)

type runFlags struct {
	provider     string
	output       string
	container    string
	backend      string
	variance     float64
	dpi          float64
	workers      int
	overwrite    bool
	invisible    bool
	background   bool
	debug        bool
	debugAPI     string
	saveAnalysis bool
}

func runCmd(g *globalFlags, use, short string, m mode) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   use + " <document>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), g.logFormat, g.verbose)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(g.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, f)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			var dump *apiDump
			if f.debugAPI != "" {
				dump = &apiDump{dir: f.debugAPI, logger: logger}
			}
			analyzer, err := newAnalyzer(cfg, dump)
			if err != nil {
				return err
			}
			store, closeStore, err := newStore(ctx, cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			defer closeStore()

			opts := pipeline.Options{
				Container:    cfg.Storage.Container,
				Variance:     cfg.LineMergeVariance,
				Overwrite:    f.overwrite,
				SaveAnalysis: f.saveAnalysis,
				SkipText:     m == modePDF,
				SkipPDF:      m == modeText,
				Render:       cfg.PDF(),
				Logger:       logger,
			}

			var errs []error
			for _, path := range args {
				if dump != nil {
					dump.document = path
				}
				data, err := os.ReadFile(path)
				if err != nil {
					errs = append(errs, fmt.Errorf("failed to read %s: %w", path, err))
					continue
				}
				report, err := pipeline.Run(ctx, analyzer, store, pipeline.Input{Name: path, Data: data}, opts)
				if err != nil {
					logger.Error("document failed", "path", path, "error", err)
					errs = append(errs, err)
					continue
				}
				printReport(cmd, report)
				if err := report.Err(); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
				}
			}
			return errors.Join(errs...)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.provider, "provider", "p", "", "OCR provider: documentai|tesseract|hocr|json")
	fl.StringVarP(&f.output, "output", "o", "", "output directory for the fs backend")
	fl.StringVar(&f.container, "container", "", "output container (subdirectory or bucket)")
	fl.StringVar(&f.backend, "backend", "", "storage backend: fs|gcs|memory")
	fl.Float64Var(&f.variance, "variance", 0, "vertical tolerance for merging words into one line (default 0.02)")
	fl.Float64Var(&f.dpi, "dpi", 0, "resolution of pixel based OCR coordinates (default 300)")
	fl.IntVar(&f.workers, "workers", 0, "concurrent page planners (default one per CPU)")
	fl.BoolVar(&f.overwrite, "overwrite", true, "replace existing artifacts")
	fl.StringVar(&f.debugAPI, "debug-api", "", "directory to save raw Document AI responses as {base}.api.json")
	fl.BoolVar(&f.saveAnalysis, "save-analysis", false, "also store the analysis result as {base}.analysis.json")
	if m != modeText {
		fl.BoolVar(&f.invisible, "invisible", false, "render text transparent (searchable overlay)")
		fl.BoolVar(&f.background, "background", false, "draw the page scan beneath the text when available")
		fl.BoolVar(&f.debug, "debug", false, "render text in red with run bounding boxes")
	}
	return cmd
}

// applyFlags copies explicitly set flags over the file configuration
func applyFlags(cmd *cobra.Command, cfg *config.Config, f runFlags) {
	changed := cmd.Flags().Changed
	if changed("provider") {
		cfg.Provider = f.provider
	}
	if changed("output") {
		cfg.Storage.Root = f.output
	}
	if changed("container") {
		cfg.Storage.Container = f.container
	}
	if changed("backend") {
		cfg.Storage.Backend = f.backend
	}
	if changed("variance") {
		cfg.LineMergeVariance = f.variance
	}
	if changed("dpi") {
		cfg.DPI = f.dpi
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("invisible") {
		cfg.Render.Invisible = f.invisible
	}
	if changed("background") {
		cfg.Render.Background = f.background
	}
	if changed("debug") {
		cfg.Render.Debug = f.debug
	}
}

func printReport(cmd *cobra.Command, r *pipeline.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d/%d artifacts written", r.Base, r.Written, r.Attempted)
	if len(r.SkippedPages) > 0 {
		fmt.Fprintf(out, ", skipped pages %v", r.SkippedPages)
	}
	fmt.Fprintln(out)
	for _, a := range r.Artifacts {
		switch {
		case a.Existed:
			fmt.Fprintf(out, "  %s (kept existing)\n", a.Key)
		case a.Err != nil:
			fmt.Fprintf(out, "  %s FAILED: %v\n", a.Key, a.Err)
		default:
			fmt.Fprintf(out, "  %s (%d bytes)\n", a.Key, a.Bytes)
		}
	}
}
