package hocr

import (
	"context"
	"fmt"

	"github.com/gardar/ocrebuild/pkg/analysis"
)

// DefaultDPI is used for pages that do not declare a scan_res
const DefaultDPI = 300

// Analysis converts the document into an analysis result in inches.
// Pages that carry a scan_res use it; the rest are scaled by dpi.
func (h HOCR) Analysis(dpi float64) *analysis.AnalysisResult {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	result := &analysis.AnalysisResult{}
	for i, page := range h.Pages {
		pageDPI := dpi
		if page.DPI > 0 {
			pageDPI = page.DPI
		}
		number := page.PageNumber
		if number == 0 {
			number = i + 1
		}

		out := analysis.Page{
			PageNumber: number,
			Width:      page.BBox.X2 / pageDPI,
			Height:     page.BBox.Y2 / pageDPI,
			Unit:       "inch",
		}
		for _, b := range pageBlocks(page) {
			for _, w := range b.words() {
				if w.Text == "" {
					continue
				}
				out.Words = append(out.Words, analysis.Word{
					Text:       w.Text,
					Polygon:    w.BBox.Polygon(pageDPI),
					Confidence: w.Confidence / 100,
				})
			}
			if text := b.text(); text != "" {
				result.Paragraphs = append(result.Paragraphs, analysis.Paragraph{Text: text, PageNumber: number})
			}
		}
		result.Pages = append(result.Pages, out)
	}
	return result
}

// Analyzer reads hOCR documents, for example the output of an earlier Tesseract run
type Analyzer struct {
	DPI float64 // Resolution for pages without scan_res
}

// Analyze parses data as hOCR and converts it
func (a Analyzer) Analyze(ctx context.Context, data []byte, mimeType string) (*analysis.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := ParseHOCR(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read hOCR: %w", err)
	}
	return doc.Analysis(a.DPI), nil
}
