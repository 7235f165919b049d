// Package analysis defines the data model produced by an OCR analysis pass.
//
// An AnalysisResult holds the detected pages, each with its physical size and the
// words found on it, plus the recognized paragraphs tagged with the page they start on.
// Every word carries a four point bounding polygon in the same physical units as the
// page dimensions (inches unless stated otherwise).
//
// The package also defines the Analyzer interface implemented by the OCR providers
// (Document AI, Tesseract) and a JSON form of the result that can be stored and
// replayed without calling a provider again.
//
// Key Types:
//
// - AnalysisResult: Pages and paragraphs for one document
// - Page: Physical page size and its words
// - Word: Recognized text with its bounding polygon
// - Paragraph: Recognized paragraph text with its page number
// - Analyzer: Provider contract, raw bytes in, AnalysisResult out
package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// ErrInvalidPolygon is returned when a bounding polygon does not have exactly four points
var ErrInvalidPolygon = errors.New("bounding polygon must have exactly 4 points")

// JSONAnalyzer reads a previously stored analysis result instead of calling an OCR provider
type JSONAnalyzer struct {
	DPI float64 // Resolution of pages measured in pixels
}

// Analyze decodes data as the JSON form of an analysis result
func (a JSONAnalyzer) Analyze(ctx context.Context, data []byte, mimeType string) (*AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DecodeJSON(bytes.NewReader(data), a.DPI)
}

// MimeType guesses the content type of an input document from its file name.
// Unknown extensions fall back to application/octet-stream.
func MimeType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".json":
		return "application/json"
	case ".hocr":
		return "text/vnd.hocr+html"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// Check reports structural problems that the reconstruction tolerates but a caller may
// want to log: paragraphs pointing at pages that are not in Pages, and words whose
// polygon height is zero or negative.
func (r *AnalysisResult) Check() []string {
	var warnings []string
	known := make(map[int]bool, len(r.Pages))
	for _, p := range r.Pages {
		known[p.PageNumber] = true
		for i, w := range p.Words {
			if w.Polygon.Height() <= 0 {
				warnings = append(warnings,
					fmt.Sprintf("page %d word %d (%q) has non-positive height %.4f",
						p.PageNumber, i+1, w.Text, w.Polygon.Height()))
			}
		}
	}
	for i, para := range r.Paragraphs {
		if !known[para.PageNumber] {
			warnings = append(warnings,
				fmt.Sprintf("paragraph %d references missing page %d", i+1, para.PageNumber))
		}
	}
	return warnings
}
