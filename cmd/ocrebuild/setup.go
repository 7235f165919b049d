package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/ocrebuild/internal/config"
	"github.com/gardar/ocrebuild/pkg/analysis"
	"github.com/gardar/ocrebuild/pkg/blobstore"
	"github.com/gardar/ocrebuild/pkg/blobstore/gcs"
	"github.com/gardar/ocrebuild/pkg/gdocai"
	"github.com/gardar/ocrebuild/pkg/hocr"
	"github.com/gardar/ocrebuild/pkg/pipeline"
	"github.com/gardar/ocrebuild/pkg/tesseract"
)

type globalFlags struct {
	configPath string
	verbose    bool
	logFormat  string
}

// newLogger builds the process logger on w
func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	switch format {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

// loadConfig returns the file configuration, or the defaults without a file
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newAnalyzer selects the OCR provider. dump, when not nil, receives the raw Document AI
// responses.
func newAnalyzer(cfg config.Config, dump *apiDump) (analysis.Analyzer, error) {
	switch cfg.Provider {
	case config.ProviderDocumentAI:
		a, err := gdocai.NewAnalyzer(cfg.GDocAI())
		if err != nil {
			return nil, err
		}
		if dump != nil {
			a.OnResponse = dump.save
		}
		return a, nil
	case config.ProviderTesseract:
		a, err := tesseract.New(tesseract.Config{Languages: cfg.Tesseract.Languages, DPI: int(cfg.DPI)})
		if err != nil {
			return nil, err
		}
		return a, nil
	case config.ProviderHOCR:
		return hocr.Analyzer{DPI: cfg.DPI}, nil
	case config.ProviderJSON:
		return analysis.JSONAnalyzer{DPI: cfg.DPI}, nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// apiDump saves raw provider responses into dir, one {base}.api.json per document
type apiDump struct {
	dir      string
	document string // Input currently being analyzed
	logger   *slog.Logger
}

func (d *apiDump) path() string {
	return filepath.Join(d.dir, pipeline.BaseName(d.document)+".api.json")
}

func (d *apiDump) save(doc *documentaipb.Document) {
	path := d.path()
	out, err := gdocai.ToJSON(doc)
	if err != nil {
		d.logger.Warn("failed to encode API response", "error", err)
		return
	}
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		d.logger.Warn("failed to create API response directory", "dir", d.dir, "error", err)
		return
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		d.logger.Warn("failed to save API response", "path", path, "error", err)
		return
	}
	d.logger.Debug("API response saved", "path", path)
}

// newStore opens the configured storage backend. The returned close function is never nil.
func newStore(ctx context.Context, cfg config.StorageConfig) (blobstore.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendFS, "":
		root, err := filepath.Abs(cfg.Root)
		if err != nil {
			return nil, noop, err
		}
		return blobstore.NewFS(root), noop, nil
	case config.BackendMemory:
		return blobstore.NewMemory(), noop, nil
	case config.BackendGCS:
		s, err := gcs.New(ctx, cfg.ProjectID)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
