// Package config loads the YAML configuration of the ocrebuild tool.
//
// Every key is optional; keys missing from the file keep their defaults.
//
//	provider: documentai        # documentai | tesseract | hocr | json
//	line_merge_variance: 0.02
//	dpi: 300
//	workers: 0                  # 0 = one per CPU
//	documentai:
//	  project_id: "your-gcp-project-id"
//	  location: "eu"
//	  processor_id: "your-processor-id"
//	tesseract:
//	  languages: [eng]
//	storage:
//	  backend: fs               # fs | gcs | memory
//	  root: ./out
//	  container: ocr-output
//	  project_id: ""
//	render:
//	  font: Helvetica
//	  ascent_ratio: 0.718
//	  layer_name: OCR Text
//	  background: false
//	  invisible: false
//	  debug: false
//	  compress: true
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gardar/ocrebuild/pkg/gdocai"
	"github.com/gardar/ocrebuild/pkg/layout"
	"github.com/gardar/ocrebuild/pkg/pdfocr"
)

// ErrInvalid is returned by Validate
var ErrInvalid = errors.New("invalid configuration")

// Providers
const (
	ProviderDocumentAI = "documentai"
	ProviderTesseract  = "tesseract"
	ProviderHOCR       = "hocr"
	ProviderJSON       = "json"
)

// Storage backends
const (
	BackendFS     = "fs"
	BackendGCS    = "gcs"
	BackendMemory = "memory"
)

// Config is the complete tool configuration
type Config struct {
	Provider          string           `yaml:"provider"`
	LineMergeVariance float64          `yaml:"line_merge_variance"`
	DPI               float64          `yaml:"dpi"`
	Workers           int              `yaml:"workers"`
	DocumentAI        DocumentAIConfig `yaml:"documentai"`
	Tesseract         TesseractConfig  `yaml:"tesseract"`
	Storage           StorageConfig    `yaml:"storage"`
	Render            RenderConfig     `yaml:"render"`
}

type DocumentAIConfig struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
}

type TesseractConfig struct {
	Languages []string `yaml:"languages"`
}

// StorageConfig selects where artifacts are written
type StorageConfig struct {
	Backend   string `yaml:"backend"`
	Root      string `yaml:"root"`      // Directory for the fs backend
	Container string `yaml:"container"` // Subdirectory or bucket
	ProjectID string `yaml:"project_id"`
}

type RenderConfig struct {
	Font        string  `yaml:"font"`
	FontStyle   string  `yaml:"font_style"`
	AscentRatio float64 `yaml:"ascent_ratio"`
	LayerName   string  `yaml:"layer_name"`
	Title       string  `yaml:"title"`
	Background  bool    `yaml:"background"`
	Invisible   bool    `yaml:"invisible"`
	Debug       bool    `yaml:"debug"`
	Compress    bool    `yaml:"compress"`
}

// Default returns the built-in configuration
func Default() Config {
	render := pdfocr.DefaultConfig()
	return Config{
		Provider:          ProviderDocumentAI,
		LineMergeVariance: layout.DefaultVariance,
		DPI:               gdocai.DefaultDPI,
		Tesseract:         TesseractConfig{Languages: []string{"eng"}},
		Storage: StorageConfig{
			Backend:   BackendFS,
			Root:      "out",
			Container: "ocr-output",
		},
		Render: RenderConfig{
			Font:        render.Font.Name,
			FontStyle:   render.Font.Style,
			AscentRatio: render.Font.AscentRatio,
			LayerName:   render.LayerName,
			Compress:    render.Compress,
		},
	}
}

// Load reads a YAML file on top of the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem found, wrapped in ErrInvalid
func (c Config) Validate() error {
	var errs []error
	if !(c.LineMergeVariance > 0) || math.IsInf(c.LineMergeVariance, 0) {
		errs = append(errs, fmt.Errorf("line_merge_variance must be positive, got %v", c.LineMergeVariance))
	}
	if !(c.DPI > 0) || math.IsInf(c.DPI, 0) {
		errs = append(errs, fmt.Errorf("dpi must be positive, got %v", c.DPI))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	switch c.Provider {
	case ProviderDocumentAI:
		gc := c.GDocAI()
		if err := gc.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("documentai: %w", err))
		}
	case ProviderTesseract, ProviderHOCR, ProviderJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}
	switch c.Storage.Backend {
	case BackendFS, BackendMemory:
	case BackendGCS:
		if c.Storage.Container == "" {
			errs = append(errs, errors.New("storage: gcs needs a container (bucket)"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}
	if c.Render.AscentRatio < 0 || c.Render.AscentRatio > 1 {
		errs = append(errs, fmt.Errorf("render.ascent_ratio must be between 0 and 1, got %v", c.Render.AscentRatio))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// GDocAI returns the Document AI processor settings
func (c Config) GDocAI() gdocai.Config {
	return gdocai.Config{
		ProjectID:   c.DocumentAI.ProjectID,
		Location:    c.DocumentAI.Location,
		ProcessorID: c.DocumentAI.ProcessorID,
		DPI:         c.DPI,
	}
}

// PDF returns the rendering settings
func (c Config) PDF() pdfocr.Config {
	cfg := pdfocr.DefaultConfig()
	cfg.Variance = c.LineMergeVariance
	cfg.Workers = c.Workers
	cfg.Title = c.Render.Title
	cfg.Background = c.Render.Background
	cfg.Invisible = c.Render.Invisible
	cfg.Debug = c.Render.Debug
	cfg.Compress = c.Render.Compress
	if c.Render.LayerName != "" {
		cfg.LayerName = c.Render.LayerName
	}
	if c.Render.Font != "" {
		cfg.Font.Name = c.Render.Font
		cfg.Font.Style = c.Render.FontStyle
	}
	if c.Render.AscentRatio > 0 {
		cfg.Font.AscentRatio = c.Render.AscentRatio
	}
	return cfg
}
