package analysis

import "context"

// Point is a position on a page in inches
type Point struct {
	X float64
	Y float64
}

// Polygon is a word's bounding quadrilateral
// Points are ordered top-left, top-right, bottom-right, bottom-left
type Polygon [4]Point

// TopLeft returns the first corner of the polygon
func (p Polygon) TopLeft() Point { return p[0] }

// Height is the bottom-left Y minus the top-left Y.
// It may be zero or negative when the OCR geometry is degenerate.
func (p Polygon) Height() float64 { return p[3].Y - p[0].Y }

// Width is the top-right X minus the top-left X.
func (p Polygon) Width() float64 { return p[1].X - p[0].X }

// RectPolygon builds a polygon from an axis-aligned rectangle
func RectPolygon(x1, y1, x2, y2 float64) Polygon {
	return Polygon{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}}
}

// AnalysisResult is the output of one OCR analysis pass over a document.
// It is produced once and only read afterwards.
type AnalysisResult struct {
	Pages      []Page      // Pages in physical order
	Paragraphs []Paragraph // Paragraphs in reading order
}

// Page is one detected page
type Page struct {
	PageNumber int     // 1-based page number as reported by the OCR provider
	Width      float64 // Page width in physical units
	Height     float64 // Page height in physical units
	Unit       string  // Physical unit name, "inch" by default
	Words      []Word  // Words in the order the OCR engine emitted them
	Image      []byte  // Optional encoded scan of the page (PNG/JPEG)
}

// Word is a recognized word
type Word struct {
	Text       string
	Polygon    Polygon
	Confidence float64 // Recognition confidence (0-1), zero when unknown
}

// Paragraph is a recognized paragraph and the page its first bounding region lies on
type Paragraph struct {
	Text       string
	PageNumber int
}

// WordCount returns the number of words across all pages
func (r *AnalysisResult) WordCount() int {
	n := 0
	for _, p := range r.Pages {
		n += len(p.Words)
	}
	return n
}

// Analyzer turns raw document bytes into an AnalysisResult.
// Implementations block until the analysis has completed.
type Analyzer interface {
	Analyze(ctx context.Context, data []byte, mimeType string) (*AnalysisResult, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface
type AnalyzerFunc func(ctx context.Context, data []byte, mimeType string) (*AnalysisResult, error)

// Analyze calls f
func (f AnalyzerFunc) Analyze(ctx context.Context, data []byte, mimeType string) (*AnalysisResult, error) {
	return f(ctx, data, mimeType)
}
