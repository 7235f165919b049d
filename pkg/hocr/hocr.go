// Package hocr parses hOCR data, the HTML-based format used by Tesseract and other OCR
// engines, and converts it into an analysis result.
//
// The package implements the hierarchical structure defined in the hOCR format:
// Document → Pages → Areas → Paragraphs → Lines → Words, with metadata at each level.
// hOCR coordinates are pixels; the conversion divides them by the scan resolution to
// get inches, the physical unit of the analysis model.
//
// Key Types:
//
// - HOCR: Top-level structure representing an entire hOCR document
// - Page: Represents a single page with class 'ocr_page'
// - Area: Represents a content area with class 'ocr_carea'
// - Paragraph: Represents a paragraph with class 'ocr_par'
// - Line: Represents a line of text with class 'ocr_line'
// - Word: Represents a single word with class 'ocrx_word'
// - BoundingBox: Represents a rectangle with coordinates for positioning elements
//
// Main Functions:
//
// - ParseHOCR: Parses hOCR data from HTML into the object model
// - HOCR.Analysis: Converts the object model into an analysis.AnalysisResult
// - Analyzer: An analysis.Analyzer that reads hOCR files
package hocr
