package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeFile(t, `
provider: hocr
render:
  invisible: true
storage:
  root: /tmp/ocr
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider != ProviderHOCR || !cfg.Render.Invisible || cfg.Storage.Root != "/tmp/ocr" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.LineMergeVariance != 0.02 || cfg.DPI != 300 || cfg.Storage.Backend != BackendFS {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if !cfg.Render.Compress || cfg.Render.Font != "Helvetica" {
		t.Fatalf("render defaults lost: %+v", cfg.Render)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
	if _, err := Load(writeFile(t, "provider: [unclosed")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"defaults need documentai ids", func(c *Config) {}, "project_id"},
		{"zero variance", func(c *Config) { c.Provider = ProviderJSON; c.LineMergeVariance = 0 }, "line_merge_variance"},
		{"negative dpi", func(c *Config) { c.Provider = ProviderJSON; c.DPI = -1 }, "dpi"},
		{"unknown provider", func(c *Config) { c.Provider = "azure" }, "unknown provider"},
		{"unknown backend", func(c *Config) { c.Provider = ProviderJSON; c.Storage.Backend = "s3" }, "unknown storage backend"},
		{"ascent ratio", func(c *Config) { c.Provider = ProviderJSON; c.Render.AscentRatio = 2 }, "ascent_ratio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.DocumentAI = DocumentAIConfig{ProjectID: "p", Location: "eu", ProcessorID: "x"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("complete config rejected: %v", err)
	}
}

func TestPDF(t *testing.T) {
	cfg := Default()
	cfg.LineMergeVariance = 0.05
	cfg.Workers = 3
	cfg.Render.Debug = true
	cfg.Render.LayerName = "Text"
	cfg.Render.Font = "Courier"

	render := cfg.PDF()
	if render.Variance != 0.05 || render.Workers != 3 || !render.Debug || render.LayerName != "Text" {
		t.Fatalf("unexpected render config: %+v", render)
	}
	if render.Font.Name != "Courier" || render.Font.AscentRatio != 0.718 {
		t.Fatalf("unexpected font: %+v", render.Font)
	}
	if render.Timestamp.IsZero() {
		t.Fatal("render timestamp must be fixed")
	}
}
