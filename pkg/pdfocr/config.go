package pdfocr

import (
	"log/slog"
	"time"

	"github.com/gardar/ocrebuild/pkg/layout"
)

// Config holds user options for synthesizing a PDF from an analysis result
type Config struct {
	Variance   float64      // Vertical tolerance for merging words into runs
	Workers    int          // Concurrent page planners (0 = NumCPU)
	LayerName  string       // Base name of the text layer (page number will be appended)
	Title      string       // Document title written to the PDF metadata
	Background bool         // Draw the source page or page scan beneath the text
	Source     []byte       // Original PDF; with Background its pages are used before page scans
	Invisible  bool         // Render text fully transparent (searchable overlay)
	Debug      bool         // Red text and run bounding boxes
	Compress   bool         // Compress page content streams
	Timestamp  time.Time    // Creation and modification date written to the PDF
	Logger     *slog.Logger // Logger for skipped pages and encoding warnings (nil = slog.Default())
	Font       FontConfig
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Variance:  layout.DefaultVariance,
		LayerName: "OCR Text", // Will be formatted as "OCR Text (Page X)" in the final PDF
		Compress:  true,
		Timestamp: time.Unix(0, 0).UTC(),
		Font:      DefaultFont,
	}
}

// FontConfig contains font settings for OCR text rendering
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	AscentRatio float64 // Distance from the top of a run to its baseline, as a share of font size
}

// DefaultFont sets the default font to Helvetica which is tried and tested for the OCR layer
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	AscentRatio: 0.718,
}
