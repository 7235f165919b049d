package textexport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/gardar/ocrebuild/pkg/analysis"
	"github.com/gardar/ocrebuild/pkg/blobstore"
	"github.com/gardar/ocrebuild/pkg/layout"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// failingStore rejects puts for selected keys
type failingStore struct {
	*blobstore.Memory
	fail map[string]bool
}

func (s failingStore) Put(ctx context.Context, container, key string, data []byte) error {
	if s.fail[key] {
		return errors.New("disk full")
	}
	return s.Memory.Put(ctx, container, key, data)
}

func TestArtifactsNumberedByPosition(t *testing.T) {
	groups := layout.GroupParagraphs([]analysis.Paragraph{
		{Text: "third page", PageNumber: 3},
		{Text: "Hello", PageNumber: 1},
		{Text: "World", PageNumber: 1},
	})
	got := Artifacts("doc", groups)
	want := []Artifact{
		{Key: "doc-page-1.txt", PageNumber: 3, Data: []byte("third page\n")},
		{Key: "doc-page-2.txt", PageNumber: 1, Data: []byte("Hello\nWorld\n")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Artifacts() = %+v, want %+v", got, want)
	}
}

func TestWriteContinuesAfterFailure(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemory()
	if err := mem.EnsureContainer(ctx, "out"); err != nil {
		t.Fatalf("EnsureContainer() error = %v", err)
	}
	store := failingStore{Memory: mem, fail: map[string]bool{"doc-page-1.txt": true}}

	artifacts := []Artifact{
		{Key: "doc-page-1.txt", Data: []byte("a\n")},
		{Key: "doc-page-2.txt", Data: []byte("b\n")},
	}
	outcomes := Write(ctx, store, "out", artifacts, quiet)
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Err == nil || outcomes[1].Err != nil {
		t.Fatalf("unexpected outcomes: %+v", outcomes)
	}
	if !reflect.DeepEqual(mem.Keys("out"), []string{"doc-page-2.txt"}) {
		t.Fatalf("unexpected keys: %v", mem.Keys("out"))
	}
}

func TestKey(t *testing.T) {
	if got := Key("scan", 12); got != "scan-page-12.txt" {
		t.Fatalf("Key() = %q", got)
	}
}
