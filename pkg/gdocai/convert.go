package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/ocrebuild/pkg/analysis"
)

// DefaultDPI converts pixel dimensions when no resolution is configured
const DefaultDPI = 300

// FromProto converts a Document AI response into an analysis result in inches.
// Tokens become words, paragraphs keep the number of the page they were found on.
// Tokens without a usable bounding polygon are dropped.
func FromProto(doc *documentaipb.Document, dpi float64) *analysis.AnalysisResult {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	result := &analysis.AnalysisResult{}
	if doc == nil {
		return result
	}

	for i, page := range doc.Pages {
		number := int(page.PageNumber)
		if number == 0 {
			number = i + 1
		}

		scale := inchesPerUnit(page.GetDimension().GetUnit(), dpi)
		out := analysis.Page{
			PageNumber: number,
			Width:      float64(page.GetDimension().GetWidth()) * scale,
			Height:     float64(page.GetDimension().GetHeight()) * scale,
			Unit:       "inch",
		}
		if img, err := ExtractImageFromPage(page); err == nil {
			out.Image = img
		}

		for _, token := range page.Tokens {
			text := tokenText(token, doc.Text)
			if text == "" {
				continue
			}
			poly, ok := polygonFromLayout(token.Layout, out.Width, out.Height, scale)
			if !ok {
				continue
			}
			out.Words = append(out.Words, analysis.Word{
				Text:       text,
				Polygon:    poly,
				Confidence: float64(token.GetLayout().GetConfidence()),
			})
		}
		result.Pages = append(result.Pages, out)

		for _, para := range page.Paragraphs {
			result.Paragraphs = append(result.Paragraphs, analysis.Paragraph{
				Text:       strings.TrimRight(textFromLayout(para.Layout, doc.Text), "\n"),
				PageNumber: number,
			})
		}
	}
	return result
}

// inchesPerUnit returns the factor that converts a page dimension unit into inches
func inchesPerUnit(unit string, dpi float64) float64 {
	switch strings.ToLower(unit) {
	case "inch", "inches", "in":
		return 1
	case "cm":
		return 1 / 2.54
	case "mm":
		return 1 / 25.4
	case "points", "point", "pt":
		return 1.0 / 72
	}
	// "pixels" or unspecified
	return 1 / dpi
}

// polygonFromLayout returns the layout's bounding polygon in inches.
// Normalized vertices are preferred; absolute vertices are in the page's unit.
func polygonFromLayout(layout *documentaipb.Document_Page_Layout, width, height, scale float64) (analysis.Polygon, bool) {
	var poly analysis.Polygon
	bp := layout.GetBoundingPoly()
	if nv := bp.GetNormalizedVertices(); len(nv) >= 4 {
		for i := range poly {
			poly[i] = analysis.Point{X: float64(nv[i].X) * width, Y: float64(nv[i].Y) * height}
		}
		return poly, true
	}
	if v := bp.GetVertices(); len(v) >= 4 {
		for i := range poly {
			poly[i] = analysis.Point{X: float64(v[i].X) * scale, Y: float64(v[i].Y) * scale}
		}
		return poly, true
	}
	return poly, false
}
