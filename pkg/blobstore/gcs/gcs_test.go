package gcs

import "testing"

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"doc-page-1.txt": "text/plain; charset=utf-8",
		"doc.pdf":        "application/pdf",
		"doc.json":       "application/json",
		"doc":            "application/octet-stream",
	}
	for key, want := range tests {
		if got := contentType(key); got != want {
			t.Errorf("contentType(%q) = %q, want %q", key, got, want)
		}
	}
}
