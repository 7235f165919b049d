// Package gdocai integrates Google Document AI as an OCR provider.
//
// A document is sent to a Document AI OCR processor and the returned Document proto is
// converted into an analysis.AnalysisResult: page dimensions and token polygons are
// expressed in inches, token text is resolved through the document's text anchors and
// each recognized paragraph is tagged with the page it was found on.
//
// Main Functions:
//
// - ProcessDocument: Sends a document to Google Document AI for processing
// - FromProto: Converts a Document AI response into an analysis result
// - Analyzer: An analysis.Analyzer backed by ProcessDocument and FromProto
// - ToJSON: Dumps the raw response for debugging
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS environment variable
package gdocai

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/ocrebuild/pkg/analysis"
)

// Config identifies the Document AI processor
type Config struct {
	ProjectID   string
	Location    string  // Processor region, e.g. "eu" or "us"
	ProcessorID string
	DPI         float64 // Resolution for pages measured in pixels, default 300
}

// Validate checks that the processor is fully identified
func (c *Config) Validate() error {
	var errs []error
	if c.ProjectID == "" {
		errs = append(errs, errors.New("project_id is required"))
	}
	if c.Location == "" {
		errs = append(errs, errors.New("location is required"))
	}
	if c.ProcessorID == "" {
		errs = append(errs, errors.New("processor_id is required"))
	}
	return errors.Join(errs...)
}

// Analyzer runs documents through Document AI
type Analyzer struct {
	cfg Config

	// OnResponse, when set, receives the raw response before conversion
	OnResponse func(*documentaipb.Document)

	process func(ctx context.Context, data []byte, mimeType string, cfg *Config) (*documentaipb.Document, error)
}

// NewAnalyzer creates a Document AI analyzer
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document ai config: %w", err)
	}
	return &Analyzer{cfg: cfg, process: ProcessDocument}, nil
}

// Analyze sends data to Document AI and converts the response
func (a *Analyzer) Analyze(ctx context.Context, data []byte, mimeType string) (*analysis.AnalysisResult, error) {
	doc, err := a.process(ctx, data, mimeType, &a.cfg)
	if err != nil {
		return nil, err
	}
	if a.OnResponse != nil {
		a.OnResponse(doc)
	}
	return FromProto(doc, a.cfg.DPI), nil
}
