package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultDPI converts pixel based results when no resolution is given
const DefaultDPI = 300

// ErrUnsupportedUnit is returned for page units that cannot be converted to inches
var ErrUnsupportedUnit = errors.New("unsupported page unit")

// jsonResult mirrors the analyze result layout used by cloud layout services:
// flat polygons, "content" for text and bounding regions on paragraphs.
type jsonResult struct {
	Pages      []jsonPage      `json:"pages"`
	Paragraphs []jsonParagraph `json:"paragraphs"`
}

type jsonEnvelope struct {
	AnalyzeResult *jsonResult `json:"analyzeResult"`
	jsonResult
}

type jsonPage struct {
	PageNumber int        `json:"pageNumber"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Unit       string     `json:"unit,omitempty"`
	Words      []jsonWord `json:"words"`
}

type jsonWord struct {
	Content    string    `json:"content"`
	Polygon    []float64 `json:"polygon"`
	Confidence float64   `json:"confidence,omitempty"`
}

type jsonParagraph struct {
	Content         string       `json:"content"`
	BoundingRegions []jsonRegion `json:"boundingRegions"`
}

type jsonRegion struct {
	PageNumber int       `json:"pageNumber"`
	Polygon    []float64 `json:"polygon,omitempty"`
}

// DecodeJSON reads an analysis result. Both a bare result and one wrapped in an
// "analyzeResult" envelope are accepted. Pages are converted to inches; pixel
// pages are scaled by dpi (DefaultDPI when zero or negative).
func DecodeJSON(r io.Reader, dpi float64) (*AnalysisResult, error) {
	var env jsonEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result: %w", err)
	}
	src := env.jsonResult
	if env.AnalyzeResult != nil {
		src = *env.AnalyzeResult
	}

	result := &AnalysisResult{
		Pages:      make([]Page, 0, len(src.Pages)),
		Paragraphs: make([]Paragraph, 0, len(src.Paragraphs)),
	}
	for _, jp := range src.Pages {
		perInch, err := unitsPerInch(jp.Unit, dpi)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", jp.PageNumber, err)
		}
		page := Page{
			PageNumber: jp.PageNumber,
			Width:      jp.Width / perInch,
			Height:     jp.Height / perInch,
			Unit:       "inch",
			Words:      make([]Word, 0, len(jp.Words)),
		}
		for i, jw := range jp.Words {
			poly, err := polygonFromFlat(jw.Polygon)
			if err != nil {
				return nil, fmt.Errorf("page %d word %d: %w", jp.PageNumber, i+1, err)
			}
			if perInch != 1 {
				for j := range poly {
					poly[j] = Point{X: poly[j].X / perInch, Y: poly[j].Y / perInch}
				}
			}
			page.Words = append(page.Words, Word{
				Text:       jw.Content,
				Polygon:    poly,
				Confidence: jw.Confidence,
			})
		}
		result.Pages = append(result.Pages, page)
	}
	for _, jp := range src.Paragraphs {
		// Paragraphs without a region keep page 0, which never matches a real page
		para := Paragraph{Text: jp.Content}
		if len(jp.BoundingRegions) > 0 {
			para.PageNumber = jp.BoundingRegions[0].PageNumber
		}
		result.Paragraphs = append(result.Paragraphs, para)
	}
	return result, nil
}

// EncodeJSON writes r in the form read by DecodeJSON. Page images are not included.
func EncodeJSON(w io.Writer, r *AnalysisResult) error {
	out := jsonResult{
		Pages:      make([]jsonPage, 0, len(r.Pages)),
		Paragraphs: make([]jsonParagraph, 0, len(r.Paragraphs)),
	}
	for _, p := range r.Pages {
		jp := jsonPage{
			PageNumber: p.PageNumber,
			Width:      p.Width,
			Height:     p.Height,
			Unit:       p.Unit,
			Words:      make([]jsonWord, 0, len(p.Words)),
		}
		for _, w := range p.Words {
			flat := make([]float64, 0, 8)
			for _, pt := range w.Polygon {
				flat = append(flat, pt.X, pt.Y)
			}
			jp.Words = append(jp.Words, jsonWord{Content: w.Text, Polygon: flat, Confidence: w.Confidence})
		}
		out.Pages = append(out.Pages, jp)
	}
	for _, para := range r.Paragraphs {
		out.Paragraphs = append(out.Paragraphs, jsonParagraph{
			Content:         para.Text,
			BoundingRegions: []jsonRegion{{PageNumber: para.PageNumber}},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode analysis result: %w", err)
	}
	return nil
}

// unitsPerInch returns how many units of unit make up one inch
func unitsPerInch(unit string, dpi float64) (float64, error) {
	switch strings.ToLower(unit) {
	case "", "inch", "inches", "in":
		return 1, nil
	case "pixel", "pixels", "px":
		if dpi <= 0 {
			dpi = DefaultDPI
		}
		return dpi, nil
	case "point", "points", "pt":
		return 72, nil
	case "cm":
		return 2.54, nil
	case "mm":
		return 25.4, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnsupportedUnit, unit)
}

func polygonFromFlat(v []float64) (Polygon, error) {
	var p Polygon
	if len(v) != 8 {
		return p, fmt.Errorf("%w: got %d coordinates", ErrInvalidPolygon, len(v))
	}
	for i := range p {
		p[i] = Point{X: v[2*i], Y: v[2*i+1]}
	}
	return p, nil
}
