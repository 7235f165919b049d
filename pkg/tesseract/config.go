package tesseract

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOCRNotEnabled is returned when Tesseract support was not compiled in
var ErrOCRNotEnabled = errors.New("tesseract support not enabled; rebuild with -tags ocr")

// ErrUnsupportedInput is returned for documents Tesseract cannot read directly
var ErrUnsupportedInput = errors.New("tesseract only accepts image input")

// Config holds the engine settings
type Config struct {
	Languages []string // Tesseract language codes, e.g. "eng", "isl"
	DPI       int      // Resolution assumed for images without metadata
}

func checkMimeType(mimeType string) error {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return nil
	case mimeType == "":
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedInput, mimeType)
}
