// Package pipeline runs one document through OCR and writes its artifacts.
//
// A run analyzes the input once, then exports per-page text and synthesizes the PDF
// concurrently from the same read-only analysis result. Artifact writes are independent:
// a failed write is recorded in the Report and the remaining artifacts are still written.
// A failed analysis is fatal and nothing is written.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gardar/ocrebuild/pkg/analysis"
	"github.com/gardar/ocrebuild/pkg/blobstore"
	"github.com/gardar/ocrebuild/pkg/layout"
	"github.com/gardar/ocrebuild/pkg/pdfocr"
	"github.com/gardar/ocrebuild/pkg/textexport"
)

// ErrAnalysis wraps failures of the OCR provider
var ErrAnalysis = errors.New("analysis failed")

// Artifact kinds
const (
	KindText     = "text"
	KindPDF      = "pdf"
	KindAnalysis = "analysis"
)

// Input is one source document
type Input struct {
	Name     string // File name or object key, used to derive artifact names
	Data     []byte
	MimeType string // Guessed from Name when empty
}

// Options controls a run
type Options struct {
	Container    string        // Output container (bucket, directory)
	Variance     float64       // Line merge variance, layout.DefaultVariance when zero
	Overwrite    bool          // Replace existing artifacts instead of skipping them
	SaveAnalysis bool          // Also store the analysis result as {base}.analysis.json
	SkipText     bool          // Do not export page text
	SkipPDF      bool          // Do not render the PDF
	Render       pdfocr.Config // PDF rendering settings
	Logger       *slog.Logger
}

// ArtifactResult is the outcome for one artifact
type ArtifactResult struct {
	Key     string
	Kind    string
	Bytes   int
	Existed bool  // Left in place because Overwrite was off
	Err     error // Non-nil when the artifact was attempted and not written
}

// Report summarizes a run
type Report struct {
	Base         string
	Pages        int
	Attempted    int // Artifacts the run tried to write
	Written      int // Artifacts successfully written
	Artifacts    []ArtifactResult
	SkippedPages []int // OCR pages left out of the PDF
}

// Err joins the errors of all failed artifacts, nil when everything was written
func (r *Report) Err() error {
	var errs []error
	for _, a := range r.Artifacts {
		if a.Err != nil {
			errs = append(errs, a.Err)
		}
	}
	return errors.Join(errs...)
}

// Failures returns the artifacts that were attempted and not written
func (r *Report) Failures() []ArtifactResult {
	var failed []ArtifactResult
	for _, a := range r.Artifacts {
		if a.Err != nil {
			failed = append(failed, a)
		}
	}
	return failed
}

func (r *Report) add(results ...ArtifactResult) {
	for _, a := range results {
		r.Artifacts = append(r.Artifacts, a)
		if a.Existed {
			continue
		}
		r.Attempted++
		if a.Err == nil {
			r.Written++
		}
	}
}

// BaseName strips the directory and the extension from a document name
func BaseName(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// PDFKey returns the object key of the rendered document
func PDFKey(base string) string { return base + ".pdf" }

// AnalysisKey returns the object key of the stored analysis result
func AnalysisKey(base string) string { return base + ".analysis.json" }

// Run analyzes in and writes its artifacts to store.
// The returned error is non-nil only when nothing could be attempted; artifact
// failures are reported through Report.Err.
func Run(ctx context.Context, analyzer analysis.Analyzer, store blobstore.Store, in Input, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = analysis.MimeType(in.Name)
	}
	base := BaseName(in.Name)
	logger = logger.With("document", base)
	opts.Logger = logger

	logger.Info("analyzing document", "bytes", len(in.Data), "mime_type", mimeType)
	result, err := analyzer.Analyze(ctx, in.Data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAnalysis, in.Name, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%w: %s: provider returned no result", ErrAnalysis, in.Name)
	}
	logger.Info("analysis complete",
		"pages", len(result.Pages), "paragraphs", len(result.Paragraphs), "words", result.WordCount())
	for _, w := range result.Check() {
		logger.Warn("analysis input problem", "detail", w)
	}
	if opts.Render.Background && mimeType == "application/pdf" && opts.Render.Source == nil {
		opts.Render.Source = in.Data
	}

	return Write(ctx, store, base, result, opts)
}

// Write exports an existing analysis result. It is the part of Run after the OCR call.
func Write(ctx context.Context, store blobstore.Store, base string, result *analysis.AnalysisResult, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Variance == 0 {
		opts.Variance = layout.DefaultVariance
	}
	opts.Render.Variance = opts.Variance
	if opts.Render.Logger == nil {
		opts.Render.Logger = logger
	}
	if opts.Render.Timestamp.IsZero() {
		// fpdf stamps the current time otherwise and reruns would differ
		opts.Render.Timestamp = time.Unix(0, 0).UTC()
	}

	if err := store.EnsureContainer(ctx, opts.Container); err != nil {
		return nil, fmt.Errorf("failed to prepare container %s: %w", opts.Container, err)
	}

	report := &Report{Base: base, Pages: len(result.Pages)}
	w := writer{store: store, container: opts.Container, overwrite: opts.Overwrite, logger: logger}

	// Neither branch returns an error, so one never cancels the other
	var g errgroup.Group
	var textResults, pdfResults []ArtifactResult
	if !opts.SkipText {
		g.Go(func() error {
			textResults = exportText(ctx, w, base, result, logger)
			return nil
		})
	}
	if !opts.SkipPDF {
		g.Go(func() error {
			pdfResults, report.SkippedPages = exportPDF(ctx, w, base, result, opts.Render, logger)
			return nil
		})
	}
	_ = g.Wait()

	report.add(textResults...)
	report.add(pdfResults...)
	if opts.SaveAnalysis {
		report.add(exportAnalysis(ctx, w, base, result))
	}

	logger.Info("document done", "attempted", report.Attempted, "written", report.Written,
		"skipped_pages", len(report.SkippedPages))
	return report, nil
}

func exportText(ctx context.Context, w writer, base string, result *analysis.AnalysisResult, logger *slog.Logger) []ArtifactResult {
	groups := layout.GroupParagraphs(result.Paragraphs)
	artifacts := textexport.Artifacts(base, groups)

	var results []ArtifactResult
	var pending []textexport.Artifact
	for _, a := range artifacts {
		if w.exists(ctx, a.Key) {
			results = append(results, ArtifactResult{Key: a.Key, Kind: KindText, Existed: true})
			continue
		}
		pending = append(pending, a)
	}
	outcomes := textexport.Write(ctx, w.store, w.container, pending, logger)
	for i, o := range outcomes {
		results = append(results, ArtifactResult{Key: o.Key, Kind: KindText, Bytes: len(pending[i].Data), Err: o.Err})
	}
	return results
}

func exportPDF(ctx context.Context, w writer, base string, result *analysis.AnalysisResult, cfg pdfocr.Config, logger *slog.Logger) ([]ArtifactResult, []int) {
	key := PDFKey(base)
	if len(result.Pages) == 0 {
		logger.Info("no OCR pages, skipping PDF")
		return nil, nil
	}
	if w.exists(ctx, key) {
		return []ArtifactResult{{Key: key, Kind: KindPDF, Existed: true}}, nil
	}

	doc, err := pdfocr.Synthesize(ctx, result, cfg)
	var skipped []int
	if doc != nil {
		skipped = doc.Skipped()
	}
	if err != nil {
		err = fmt.Errorf("failed to render %s: %w", key, err)
		logger.Error("PDF not rendered", "key", key, "error", err)
		return []ArtifactResult{{Key: key, Kind: KindPDF, Err: err}}, skipped
	}
	return []ArtifactResult{w.put(ctx, key, KindPDF, doc.Bytes)}, skipped
}

func exportAnalysis(ctx context.Context, w writer, base string, result *analysis.AnalysisResult) ArtifactResult {
	key := AnalysisKey(base)
	if w.exists(ctx, key) {
		return ArtifactResult{Key: key, Kind: KindAnalysis, Existed: true}
	}
	var buf bytes.Buffer
	if err := analysis.EncodeJSON(&buf, result); err != nil {
		return ArtifactResult{Key: key, Kind: KindAnalysis, Err: fmt.Errorf("failed to encode %s: %w", key, err)}
	}
	return w.put(ctx, key, KindAnalysis, buf.Bytes())
}
