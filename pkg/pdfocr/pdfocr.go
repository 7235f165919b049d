// Package pdfocr synthesizes a PDF from an OCR analysis result.
//
// Every OCR page becomes an output page of the same physical size. The words on a page
// are merged into runs of co-linear words, each run is sized from the height of its
// first word and drawn at that word's top-left corner. The result approximates the
// original scan at word level: text sits roughly where it was, at roughly the right size.
//
// Pages are planned concurrently and written in source order. A page that cannot be
// rendered (invalid size, too much text outside the core font encoding) is logged and
// skipped while the remaining pages continue.
//
// Optional features:
//
// - Draw the original PDF page, or the page scan, beneath the text
// - Invisible text for a searchable overlay
// - Per-page text layers that can be toggled in compatible PDF readers
// - Debug mode with red text and run bounding boxes
//
// Main Functions:
//
// - Synthesize: Renders an analysis result into a multi-page PDF
// - PlanPage: Computes the runs, positions and font sizes of one page
// - DetectLayers / CheckLayers: Lists the text layers of a rendered PDF
package pdfocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gardar/ocrebuild/pkg/analysis"
)

var (
	// ErrInvalidPageSize is returned for pages with a non-positive or non-finite size
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrEncoding is returned for pages with too much text outside the font encoding
	ErrEncoding = errors.New("character encoding issues")

	// ErrNoPages is returned when no page could be rendered
	ErrNoPages = errors.New("no pages rendered")
)

// PageResult reports what happened to one source page
type PageResult struct {
	PageNumber int
	Runs       int
	Err        error // Non-nil when the page was skipped
}

// Document is a rendered PDF and the per-page outcome
type Document struct {
	Bytes []byte
	Pages []PageResult
}

// Rendered returns the number of pages written to the PDF
func (d *Document) Rendered() int {
	n := 0
	for _, p := range d.Pages {
		if p.Err == nil {
			n++
		}
	}
	return n
}

// Skipped returns the page numbers that were left out of the PDF
func (d *Document) Skipped() []int {
	var skipped []int
	for _, p := range d.Pages {
		if p.Err != nil {
			skipped = append(skipped, p.PageNumber)
		}
	}
	return skipped
}

// Synthesize renders the pages of result into one PDF, in the order of result.Pages.
func Synthesize(ctx context.Context, result *analysis.AnalysisResult, config Config) (*Document, error) {
	if result == nil {
		return nil, fmt.Errorf("analysis result is nil")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("%w: analysis result contains no pages", ErrNoPages)
	}
	if config.Font.Name == "" {
		config.Font = DefaultFont
	}
	logger := getLogger(config)

	plans, err := planPages(ctx, result.Pages, config)
	if err != nil {
		return nil, fmt.Errorf("failed to plan pages: %w", err)
	}

	doc := &Document{Pages: make([]PageResult, 0, len(plans))}
	pdf := newDocument(config)
	var src *source
	if config.Background && len(config.Source) > 0 {
		src = newSource(config.Source)
	}
	var firstErr error
	for i, p := range plans {
		pr := PageResult{PageNumber: p.plan.PageNumber, Runs: len(p.plan.Runs), Err: p.err}
		doc.Pages = append(doc.Pages, pr)
		if p.err != nil {
			logger.Warn("skipping page", "page", p.plan.PageNumber, "index", i+1, "error", p.err)
			if firstErr == nil {
				firstErr = p.err
			}
			continue
		}
		if p.plan.EncodingErrors > 0 {
			logger.Warn("replaced characters outside the font encoding",
				"page", p.plan.PageNumber, "runs", p.plan.EncodingErrors)
		}

		// Layers are numbered by position in the output document
		if err := addPage(pdf, p.plan, doc.Rendered(), config, src); err != nil {
			return nil, fmt.Errorf("failed to draw page %d: %w", p.plan.PageNumber, err)
		}
	}

	if doc.Rendered() == 0 {
		return doc, fmt.Errorf("%w: %w", ErrNoPages, firstErr)
	}

	// Generate final PDF
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	doc.Bytes = buf.Bytes()
	return doc, nil
}
