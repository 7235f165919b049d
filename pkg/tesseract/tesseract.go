//go:build ocr

// Package tesseract recognizes page images locally with the Tesseract OCR engine.
//
// The engine is reached through gosseract and needs Tesseract and Leptonica installed.
// Build with the "ocr" tag to enable it:
//
//	go build -tags ocr ./...
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/gardar/ocrebuild/pkg/analysis"
	"github.com/gardar/ocrebuild/pkg/hocr"
)

// Analyzer runs Tesseract on a single page image and converts its hOCR output
type Analyzer struct {
	cfg           Config
	clientFactory func() *gosseract.Client
}

// New creates a Tesseract analyzer
func New(cfg Config) (*Analyzer, error) {
	if cfg.DPI <= 0 {
		cfg.DPI = hocr.DefaultDPI
	}
	return &Analyzer{cfg: cfg, clientFactory: gosseract.NewClient}, nil
}

// Analyze recognizes one image (PNG, JPEG, TIFF) as page 1
func (a *Analyzer) Analyze(ctx context.Context, data []byte, mimeType string) (*analysis.AnalysisResult, error) {
	if err := checkMimeType(mimeType); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := a.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if len(a.cfg.Languages) > 0 {
		if err := c.SetLanguage(a.cfg.Languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	// Without this Tesseract reports 70 dpi for images lacking resolution metadata
	if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(a.cfg.DPI)); err != nil {
		return nil, fmt.Errorf("set dpi: %w", err)
	}

	out, err := c.HOCRText()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := hocr.ParseHOCR([]byte(out))
	if err != nil {
		return nil, fmt.Errorf("failed to read tesseract output: %w", err)
	}
	result := doc.Analysis(float64(a.cfg.DPI))
	if strings.HasPrefix(mimeType, "image/png") || strings.HasPrefix(mimeType, "image/jpeg") {
		for i := range result.Pages {
			result.Pages[i].Image = data
		}
	}
	return result, nil
}
