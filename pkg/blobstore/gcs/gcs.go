// Package gcs implements blobstore.Store on Google Cloud Storage.
//
// Containers are buckets and keys are object names. Authentication follows the usual
// Google Cloud rules (GOOGLE_APPLICATION_CREDENTIALS or the ambient service account),
// and any option.ClientOption can be passed through.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/gardar/ocrebuild/pkg/blobstore"
)

// Store writes artifacts to Cloud Storage buckets
type Store struct {
	client    *storage.Client
	projectID string // Project that owns buckets created by EnsureContainer
}

var _ blobstore.Store = (*Store)(nil)

// New creates a Cloud Storage client
func New(ctx context.Context, projectID string, opts ...option.ClientOption) (*Store, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}
	return &Store{client: client, projectID: projectID}, nil
}

// Close releases the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}

// EnsureContainer creates the bucket if it does not exist
func (s *Store) EnsureContainer(ctx context.Context, container string) error {
	bkt := s.client.Bucket(container)
	_, err := bkt.Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("failed to look up bucket %s: %w", container, err)
	}
	if s.projectID == "" {
		return fmt.Errorf("bucket %s does not exist and no project is configured to create it: %w",
			container, blobstore.ErrNotFound)
	}
	if err := bkt.Create(ctx, s.projectID, nil); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", container, err)
	}
	return nil
}

// Put uploads data. The object only becomes visible once the upload completes.
func (s *Store) Put(ctx context.Context, container, key string, data []byte) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := s.client.Bucket(container).Object(key).NewWriter(ctx)
	w.ContentType = contentType(key)
	if _, err := w.Write(data); err != nil {
		// Canceling the context aborts the upload
		cancel()
		w.Close()
		return fmt.Errorf("failed to upload %s/%s: %w", container, key, err)
	}
	if err := w.Close(); err != nil {
		if errors.Is(err, storage.ErrBucketNotExist) {
			return fmt.Errorf("bucket %s: %w", container, blobstore.ErrNotFound)
		}
		return fmt.Errorf("failed to finish upload of %s/%s: %w", container, key, err)
	}
	return nil
}

// Get downloads an object
func (s *Store) Get(ctx context.Context, container, key string) ([]byte, error) {
	r, err := s.client.Bucket(container).Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return nil, fmt.Errorf("%s/%s: %w", container, key, blobstore.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s/%s: %w", container, key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", container, key, err)
	}
	return data, nil
}

// Exists checks the object's attributes
func (s *Store) Exists(ctx context.Context, container, key string) (bool, error) {
	_, err := s.client.Bucket(container).Object(key).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s/%s: %w", container, key, err)
	}
	return true, nil
}

func contentType(key string) string {
	switch path.Ext(key) {
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	case ".json":
		return "application/json"
	}
	return "application/octet-stream"
}
