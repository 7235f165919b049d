package hocr

import "github.com/gardar/ocrebuild/pkg/analysis"

// HOCR represents the entire hOCR document structure
type HOCR struct {
	Title    string            // Document title
	Language string            // Document language
	Metadata map[string]string // ocr-system, ocr-langs, ...
	Pages    []Page            // Pages in the document
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID         string
	PageNumber int         // ppageno + 1 when present, otherwise 0
	ImageName  string      // Source image filename
	Lang       string      // Language code for this page
	DPI        float64     // scan_res, 0 when absent
	BBox       BoundingBox // Page coordinates
	Areas      []Area      // Content areas (columns)
	Paragraphs []Paragraph // Paragraphs directly under page
	Lines      []Line      // Lines directly under page (no parent)
}

// Area represents a content area (column or region)
// Corresponds to hOCR element with class: 'ocr_carea'
type Area struct {
	ID         string
	BBox       BoundingBox
	Paragraphs []Paragraph
	Lines      []Line // Text lines directly under area
	Words      []Word // Words directly under area (no line parent)
}

// Paragraph represents a paragraph within an area or block
// Corresponds to hOCR element with class: 'ocr_par'
type Paragraph struct {
	ID    string
	Lang  string
	BBox  BoundingBox
	Lines []Line
	Words []Word // Words directly under paragraph (no line parent)
}

// Line represents a line of text
// Corresponds to hOCR element with class: 'ocr_line' (or ocrx_line, ocr_caption, ...)
type Line struct {
	ID       string
	BBox     BoundingBox
	Baseline string
	Words    []Word
}

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string
	Text       string
	BBox       BoundingBox
	Confidence float64 // Recognition confidence (0-100)
	Lang       string
}

// BoundingBox represents a rectangle in pixels
// Used to store hOCR 'bbox' property values
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// IsZero reports whether the box was never set
func (b BoundingBox) IsZero() bool { return b == BoundingBox{} }

// Polygon converts the box into a four point polygon in inches at the given resolution
func (b BoundingBox) Polygon(dpi float64) analysis.Polygon {
	return analysis.RectPolygon(b.X1/dpi, b.Y1/dpi, b.X2/dpi, b.Y2/dpi)
}
