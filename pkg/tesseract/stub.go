//go:build !ocr

// Package tesseract recognizes page images locally with the Tesseract OCR engine.
//
// This is the stub used when the "ocr" build tag is not set. New returns
// ErrOCRNotEnabled. Rebuild with -tags ocr to enable Tesseract.
package tesseract

import (
	"context"

	"github.com/gardar/ocrebuild/pkg/analysis"
)

// Analyzer is unusable without the ocr build tag
type Analyzer struct{}

// New always fails with ErrOCRNotEnabled
func New(cfg Config) (*Analyzer, error) {
	return nil, ErrOCRNotEnabled
}

// Analyze always fails with ErrOCRNotEnabled
func (a *Analyzer) Analyze(ctx context.Context, data []byte, mimeType string) (*analysis.AnalysisResult, error) {
	return nil, ErrOCRNotEnabled
}
