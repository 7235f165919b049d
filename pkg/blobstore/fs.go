package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FS stores containers as directories under a root directory
type FS struct {
	root string
}

// NewFS returns a store rooted at dir. The directory is created on first use.
func NewFS(dir string) *FS {
	return &FS{root: dir}
}

func (s *FS) containerPath(container string) (string, error) {
	if err := validateName("container", container); err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(container)), nil
}

func (s *FS) objectPath(container, key string) (string, error) {
	dir, err := s.containerPath(container)
	if err != nil {
		return "", err
	}
	if err := validateName("key", key); err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.FromSlash(key)), nil
}

// EnsureContainer creates the container directory
func (s *FS) EnsureContainer(ctx context.Context, container string) error {
	dir, err := s.containerPath(container)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create container %s: %w", container, err)
	}
	return nil
}

// Put writes data to a temporary file next to the object and renames it into place
func (s *FS) Put(ctx context.Context, container, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.objectPath(container, key)
	if err != nil {
		return err
	}
	dir, err := s.containerPath(container)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("container %s: %w", container, ErrNotFound)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", key, err)
	}
	return nil
}

// Get reads an object from disk
func (s *FS) Get(ctx context.Context, container, key string) ([]byte, error) {
	path, err := s.objectPath(container, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s/%s: %w", container, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", container, key, err)
	}
	return data, nil
}

// Exists reports whether the object file exists
func (s *FS) Exists(ctx context.Context, container, key string) (bool, error) {
	path, err := s.objectPath(container, key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s/%s: %w", container, key, err)
	}
	return true, nil
}
