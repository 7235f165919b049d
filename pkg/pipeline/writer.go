package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gardar/ocrebuild/pkg/blobstore"
)

// writer puts artifacts into one container
type writer struct {
	store     blobstore.Store
	container string
	overwrite bool
	logger    *slog.Logger
}

// exists reports whether key should be left alone. Lookup errors count as absent
// so the write is attempted and its failure reported.
func (w writer) exists(ctx context.Context, key string) bool {
	if w.overwrite {
		return false
	}
	ok, err := w.store.Exists(ctx, w.container, key)
	if err != nil {
		w.logger.Debug("existence check failed", "key", key, "error", err)
		return false
	}
	if ok {
		w.logger.Info("artifact exists, skipping", "key", key)
	}
	return ok
}

func (w writer) put(ctx context.Context, key, kind string, data []byte) ArtifactResult {
	res := ArtifactResult{Key: key, Kind: kind, Bytes: len(data)}
	if err := w.store.Put(ctx, w.container, key, data); err != nil {
		res.Err = fmt.Errorf("failed to write %s: %w", key, err)
		w.logger.Error("artifact not written", "key", key, "kind", kind, "error", res.Err)
		return res
	}
	w.logger.Info("artifact written", "key", key, "kind", kind, "bytes", len(data))
	return res
}
