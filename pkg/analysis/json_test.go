package analysis

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const sampleJSON = `{
  "analyzeResult": {
    "pages": [
      {
        "pageNumber": 1,
        "width": 8.5,
        "height": 11,
        "unit": "inch",
        "words": [
          {"content": "Invoice", "polygon": [1, 1, 2, 1, 2, 1.2, 1, 1.2], "confidence": 0.99}
        ]
      }
    ],
    "paragraphs": [
      {"content": "Invoice", "boundingRegions": [{"pageNumber": 1, "polygon": [1, 1, 2, 1, 2, 1.2, 1, 1.2]}]},
      {"content": "orphan"}
    ]
  }
}`

func TestDecodeJSONEnvelope(t *testing.T) {
	r, err := DecodeJSON(strings.NewReader(sampleJSON), 0)
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if len(r.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(r.Pages))
	}
	p := r.Pages[0]
	if p.Width != 8.5 || p.Height != 11 || p.Unit != "inch" {
		t.Fatalf("unexpected page geometry: %+v", p)
	}
	want := RectPolygon(1, 1, 2, 1.2)
	if p.Words[0].Polygon != want {
		t.Fatalf("unexpected polygon: %+v", p.Words[0].Polygon)
	}
	if len(r.Paragraphs) != 2 || r.Paragraphs[0].PageNumber != 1 || r.Paragraphs[1].PageNumber != 0 {
		t.Fatalf("unexpected paragraphs: %+v", r.Paragraphs)
	}
}

func TestDecodeJSONUnits(t *testing.T) {
	const pixelPage = `{"pages":[{"pageNumber":1,"width":2550,"height":3300,"unit":"pixel",
		"words":[{"content":"Invoice","polygon":[300,300,600,300,600,360,300,360]}]}]}`

	tests := []struct {
		name string
		in   string
		dpi  float64
		w, h float64
		poly Polygon
	}{
		{"pixels at default dpi", pixelPage, 0, 8.5, 11, RectPolygon(1, 1, 2, 1.2)},
		{"pixels at 150 dpi", pixelPage, 150, 17, 22, RectPolygon(2, 2, 4, 2.4)},
		{"points", `{"pages":[{"pageNumber":1,"width":612,"height":792,"unit":"point",
			"words":[{"content":"x","polygon":[72,72,144,72,144,144,72,144]}]}]}`, 0, 8.5, 11, RectPolygon(1, 1, 2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DecodeJSON(strings.NewReader(tt.in), tt.dpi)
			if err != nil {
				t.Fatalf("DecodeJSON() error = %v", err)
			}
			p := r.Pages[0]
			if p.Width != tt.w || p.Height != tt.h || p.Unit != "inch" {
				t.Fatalf("page = %vx%v %s, want %vx%v inch", p.Width, p.Height, p.Unit, tt.w, tt.h)
			}
			if p.Words[0].Polygon != tt.poly {
				t.Fatalf("polygon = %+v, want %+v", p.Words[0].Polygon, tt.poly)
			}
		})
	}

	_, err := DecodeJSON(strings.NewReader(`{"pages":[{"pageNumber":1,"width":1,"height":1,"unit":"furlong"}]}`), 0)
	if !errors.Is(err, ErrUnsupportedUnit) {
		t.Fatalf("expected ErrUnsupportedUnit, got %v", err)
	}
}

func TestDecodeJSONBadPolygon(t *testing.T) {
	in := `{"pages":[{"pageNumber":1,"width":1,"height":1,"words":[{"content":"x","polygon":[0,0,1,1]}]}]}`
	_, err := DecodeJSON(strings.NewReader(in), 0)
	if !errors.Is(err, ErrInvalidPolygon) {
		t.Fatalf("expected ErrInvalidPolygon, got %v", err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	orig := &AnalysisResult{
		Pages: []Page{{
			PageNumber: 2,
			Width:      8.5,
			Height:     11,
			Unit:       "inch",
			Words:      []Word{{Text: "a", Polygon: RectPolygon(0.5, 0.5, 0.7, 0.6)}},
		}},
		Paragraphs: []Paragraph{{Text: "a", PageNumber: 2}},
	}
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, orig); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	got, err := JSONAnalyzer{}.Analyze(context.Background(), buf.Bytes(), "application/json")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !reflect.DeepEqual(got, orig) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, orig)
	}
}

func TestPolygonHeight(t *testing.T) {
	tests := []struct {
		name string
		p    Polygon
		want float64
	}{
		{"normal", RectPolygon(1, 1, 2, 1.5), 0.5},
		{"flat", RectPolygon(1, 1, 2, 1), 0},
		{"inverted", Polygon{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 0, Y: 1}}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Height(); got != tt.want {
				t.Fatalf("Height() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	r := &AnalysisResult{
		Pages: []Page{{
			PageNumber: 1,
			Words:      []Word{{Text: "flat", Polygon: RectPolygon(0, 1, 1, 1)}},
		}},
		Paragraphs: []Paragraph{{Text: "x", PageNumber: 1}, {Text: "y", PageNumber: 7}},
	}
	warnings := r.Check()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[1], "missing page 7") {
		t.Fatalf("unexpected warning: %s", warnings[1])
	}
}

func TestMimeType(t *testing.T) {
	tests := map[string]string{
		"scan.PDF":    "application/pdf",
		"a/b/c.tiff":  "image/tiff",
		"photo.jpeg":  "image/jpeg",
		"result.json": "application/json",
		"noext":       "application/octet-stream",
	}
	for name, want := range tests {
		if got := MimeType(name); got != want {
			t.Errorf("MimeType(%q) = %q, want %q", name, got, want)
		}
	}
}
