// Package blobstore provides key-addressed object storage for output artifacts.
//
// Objects live in named containers (a directory, a bucket). Every Put is atomic from
// the reader's point of view: the object either has the full new content or does not
// change.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a container or object does not exist
var ErrNotFound = errors.New("not found")

// ErrInvalidName is returned for empty or unsafe container and object names
var ErrInvalidName = errors.New("invalid name")

// Store is the storage contract used by the pipeline
type Store interface {
	// EnsureContainer creates the container if it does not exist yet
	EnsureContainer(ctx context.Context, container string) error
	// Put writes the whole object, replacing any previous content
	Put(ctx context.Context, container, key string, data []byte) error
	// Get reads an object
	Get(ctx context.Context, container, key string) ([]byte, error)
	// Exists reports whether an object exists
	Exists(ctx context.Context, container, key string) (bool, error)
}

// validateName rejects names that would escape a container or are empty
func validateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidName, kind)
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %s %q", ErrInvalidName, kind, name)
		}
	}
	if strings.ContainsRune(name, '\\') {
		return fmt.Errorf("%w: %s %q", ErrInvalidName, kind, name)
	}
	return nil
}
