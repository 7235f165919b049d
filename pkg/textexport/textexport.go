// Package textexport writes the per-page plain-text artifacts of a document.
//
// Each page that has at least one paragraph becomes one UTF-8 text object named
// "{base}-page-{n}.txt". The number n is the page's 1-based position among the pages
// that have paragraphs, in the order those pages first appear, not the page number
// assigned by the OCR provider.
package textexport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gardar/ocrebuild/pkg/blobstore"
	"github.com/gardar/ocrebuild/pkg/layout"
)

// Artifact is one text object ready to be written
type Artifact struct {
	Key        string
	PageNumber int // OCR page number the text came from
	Data       []byte
}

// Outcome is the result of writing one artifact
type Outcome struct {
	Key string
	Err error
}

// Key returns the object key of the n-th exported page (1-based)
func Key(base string, n int) string {
	return fmt.Sprintf("%s-page-%d.txt", base, n)
}

// Artifacts builds one artifact per page group, numbered by position in groups
func Artifacts(base string, groups []layout.PageText) []Artifact {
	artifacts := make([]Artifact, 0, len(groups))
	for i, g := range groups {
		artifacts = append(artifacts, Artifact{
			Key:        Key(base, i+1),
			PageNumber: g.PageNumber,
			Data:       []byte(g.Text()),
		})
	}
	return artifacts
}

// Write puts every artifact into the container. A failed write does not stop the
// remaining ones; each artifact gets an outcome in input order.
func Write(ctx context.Context, store blobstore.Store, container string, artifacts []Artifact, logger *slog.Logger) []Outcome {
	if logger == nil {
		logger = slog.Default()
	}
	outcomes := make([]Outcome, 0, len(artifacts))
	for _, a := range artifacts {
		err := store.Put(ctx, container, a.Key, a.Data)
		if err != nil {
			err = fmt.Errorf("failed to write %s: %w", a.Key, err)
			logger.Error("text artifact not written", "key", a.Key, "page", a.PageNumber, "error", err)
		} else {
			logger.Info("text artifact written", "key", a.Key, "page", a.PageNumber, "bytes", len(a.Data))
		}
		outcomes = append(outcomes, Outcome{Key: a.Key, Err: err})
	}
	return outcomes
}
