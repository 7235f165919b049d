package blobstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"fs":     NewFS(filepath.Join(t.TempDir(), "root")),
		"memory": NewMemory(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put(ctx, "out", "a.txt", []byte("x")); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Put() into missing container: expected ErrNotFound, got %v", err)
			}
			if err := s.EnsureContainer(ctx, "out"); err != nil {
				t.Fatalf("EnsureContainer() error = %v", err)
			}
			if err := s.EnsureContainer(ctx, "out"); err != nil {
				t.Fatalf("EnsureContainer() second call error = %v", err)
			}

			ok, err := s.Exists(ctx, "out", "doc-page-1.txt")
			if err != nil || ok {
				t.Fatalf("Exists() = %v, %v; want false, nil", ok, err)
			}
			if _, err := s.Get(ctx, "out", "doc-page-1.txt"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get() missing: expected ErrNotFound, got %v", err)
			}

			if err := s.Put(ctx, "out", "doc-page-1.txt", []byte("Hello\n")); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if err := s.Put(ctx, "out", "doc-page-1.txt", []byte("Hello\nWorld\n")); err != nil {
				t.Fatalf("Put() overwrite error = %v", err)
			}
			got, err := s.Get(ctx, "out", "doc-page-1.txt")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != "Hello\nWorld\n" {
				t.Fatalf("Get() = %q", got)
			}
			ok, err = s.Exists(ctx, "out", "doc-page-1.txt")
			if err != nil || !ok {
				t.Fatalf("Exists() = %v, %v; want true, nil", ok, err)
			}
		})
	}
}

func TestStoreRejectsUnsafeNames(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.EnsureContainer(ctx, ""); !errors.Is(err, ErrInvalidName) {
				t.Fatalf("expected ErrInvalidName for empty container, got %v", err)
			}
			if err := s.EnsureContainer(ctx, "out"); err != nil {
				t.Fatalf("EnsureContainer() error = %v", err)
			}
			for _, key := range []string{"", "../escape.txt", "a//b", `a\b`} {
				if err := s.Put(ctx, "out", key, nil); !errors.Is(err, ErrInvalidName) {
					t.Fatalf("key %q: expected ErrInvalidName, got %v", key, err)
				}
			}
		})
	}
}

func TestFSLeavesNoTemporaryFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewFS(root)
	if err := s.EnsureContainer(ctx, "out"); err != nil {
		t.Fatalf("EnsureContainer() error = %v", err)
	}
	if err := s.Put(ctx, "out", "doc.pdf", []byte("%PDF-")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(root, "out"))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "doc.pdf" {
		t.Fatalf("unexpected directory content: %v", entries)
	}
}

func TestMemoryCopiesData(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.EnsureContainer(ctx, "out")
	data := []byte("abc")
	if err := m.Put(ctx, "out", "k", data); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	data[0] = 'z'
	got, _ := m.Get(ctx, "out", "k")
	if string(got) != "abc" {
		t.Fatalf("stored data was aliased: %q", got)
	}
	if !reflect.DeepEqual(m.Keys("out"), []string{"k"}) {
		t.Fatalf("unexpected keys: %v", m.Keys("out"))
	}
}
