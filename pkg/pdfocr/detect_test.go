package pdfocr

import (
	"reflect"
	"testing"
)

func TestDetectLayersUTF16(t *testing.T) {
	data := []byte("1 0 obj\n<</Type /OCG /Name (\xfe\xff\x00O\x00C\x00R\x00 \x00\\(\x001\x00\\))>>\nendobj\n" +
		"2 0 obj\n<</Type /OCG /Name (plain)>>\nendobj\n" +
		"3 0 obj\n<</Type /OCG /Name (plain)>>\nendobj\n")
	layers, err := DetectLayers(data)
	if err != nil {
		t.Fatalf("DetectLayers() error = %v", err)
	}
	want := []string{"OCR (1)", "plain"}
	if !reflect.DeepEqual(layers, want) {
		t.Fatalf("DetectLayers() = %q, want %q", layers, want)
	}
}

func TestDetectLayersEmpty(t *testing.T) {
	if _, err := DetectLayers(nil); err == nil {
		t.Fatalf("expected error for empty data")
	}
}

func TestCheckLayers(t *testing.T) {
	data := []byte("<</Type /OCG /Name (OCR Text \\(Page 1\\))>>" +
		"<</Type /OCG /Name (Scan)>>" +
		"<</Type /OCG /Name (OCR Text \\(Page 12\\))>>")
	res, err := CheckLayers(data, "OCR Text")
	if err != nil {
		t.Fatalf("CheckLayers() error = %v", err)
	}
	if len(res.Layers) != 3 {
		t.Fatalf("expected 3 layers, got %q", res.Layers)
	}
	if !reflect.DeepEqual(res.Pages, []int{1, 12}) {
		t.Fatalf("unexpected pages: %v", res.Pages)
	}
}

func TestEncodeWinAnsi(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Invoice", "Invoice", true},
		{"Grüße", "Gr\xfc\xdfe", true},
		{"Don’t", "Don\x92t", true},
		{"“€5” – net", "\x93\x805\x94 \x96 net", true},
		{"☃", "?", false},
	}
	for _, tt := range tests {
		got, ok := encodeWinAnsi(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("encodeWinAnsi(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
