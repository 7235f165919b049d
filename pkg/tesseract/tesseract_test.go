package tesseract

import (
	"errors"
	"testing"
)

func TestCheckMimeType(t *testing.T) {
	tests := []struct {
		mimeType string
		ok       bool
	}{
		{"image/png", true},
		{"image/tiff", true},
		{"", true},
		{"application/pdf", false},
	}
	for _, tt := range tests {
		err := checkMimeType(tt.mimeType)
		if (err == nil) != tt.ok {
			t.Errorf("checkMimeType(%q) error = %v", tt.mimeType, err)
		}
		if err != nil && !errors.Is(err, ErrUnsupportedInput) {
			t.Errorf("checkMimeType(%q) error = %v, want ErrUnsupportedInput", tt.mimeType, err)
		}
	}
}
