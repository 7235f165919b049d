//go:build !ocr

package tesseract

import (
	"context"
	"errors"
	"testing"
)

func TestNewReturnsError(t *testing.T) {
	a, err := New(Config{})
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Fatalf("expected ErrOCRNotEnabled, got: %v", err)
	}
	if a != nil {
		t.Fatal("expected nil analyzer when OCR is disabled")
	}

	var stub *Analyzer
	if _, err := stub.Analyze(context.Background(), nil, "image/png"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Fatalf("expected ErrOCRNotEnabled, got: %v", err)
	}
}
