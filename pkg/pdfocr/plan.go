package pdfocr

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gardar/ocrebuild/pkg/analysis"
	"github.com/gardar/ocrebuild/pkg/layout"
)

// TextRun is a run of words positioned on the output page, in points
type TextRun struct {
	Text     string  // Joined run text
	Encoded  string  // Text in the PDF core font encoding
	X        float64 // Left edge of the first word
	Y        float64 // Top edge of the first word
	Width    float64 // From the first word's left edge to the last word's right edge
	Height   float64 // Text height used for sizing
	FontSize float64
}

// PagePlan is everything needed to emit one output page
type PagePlan struct {
	PageNumber     int
	Width          float64 // Page width in points
	Height         float64 // Page height in points
	Runs           []TextRun
	SourcePage     int    // Page of Config.Source drawn beneath the text, 0 for none
	Image          []byte // Background scan, used when there is no source page
	ImageType      string // fpdf image type of Image
	EncodingErrors int    // Runs containing characters outside the core font encoding
}

// PlanPage lays out one page: it merges the page's words into runs, sizes each run by
// its first word and converts every position to points.
func PlanPage(page analysis.Page, cfg Config) (PagePlan, error) {
	plan := PagePlan{PageNumber: page.PageNumber}
	if !validLength(page.Width) || !validLength(page.Height) {
		return plan, fmt.Errorf("%w: page %d is %vx%v", ErrInvalidPageSize,
			page.PageNumber, page.Width, page.Height)
	}
	plan.Width = layout.ToPoints(page.Width)
	plan.Height = layout.ToPoints(page.Height)

	runs := layout.MergeRuns(page.Words, cfg.Variance)
	plan.Runs = make([]TextRun, 0, len(runs))
	for _, run := range runs {
		first := run.First()
		last := run.Words[len(run.Words)-1]
		tl := first.Polygon.TopLeft()

		encoded, ok := encodeWinAnsi(run.Text())
		if !ok {
			plan.EncodingErrors++
		}

		plan.Runs = append(plan.Runs, TextRun{
			Text:     run.Text(),
			Encoded:  encoded,
			X:        layout.ToPoints(tl.X),
			Y:        layout.ToPoints(tl.Y),
			Width:    layout.ToPoints(last.Polygon[1].X - tl.X),
			Height:   layout.ToPoints(layout.TextHeight(first)),
			FontSize: layout.RunFontSize(run),
		})
	}

	// Report encoding errors if more than a threshold
	if plan.EncodingErrors > 0 && plan.EncodingErrors > len(plan.Runs)/10 {
		return plan, fmt.Errorf("%w: %d of %d runs on page %d",
			ErrEncoding, plan.EncodingErrors, len(plan.Runs), page.PageNumber)
	}

	if cfg.Background {
		plan.SourcePage, plan.Image, plan.ImageType = pageBackground(page, cfg)
	}
	return plan, nil
}

// pageBackground picks what is drawn beneath the text: the matching page of the
// source PDF, else the page scan. Anything that fpdf could not embed is dropped
// with a warning and the page is rendered without a background.
func pageBackground(page analysis.Page, cfg Config) (int, []byte, string) {
	logger := getLogger(cfg)
	if len(cfg.Source) > 0 {
		err := checkSourcePage(cfg.Source, page.PageNumber)
		if err == nil {
			return page.PageNumber, nil, ""
		}
		logger.Warn("ignoring source page", "page", page.PageNumber, "error", err)
	}
	if len(page.Image) == 0 {
		return 0, nil, ""
	}
	imageType, err := detectImageType(page.Image)
	if err == nil {
		err = checkImage(page.Image, imageType)
	}
	if err != nil {
		logger.Warn("ignoring page background", "page", page.PageNumber, "error", err)
		return 0, nil, ""
	}
	return 0, page.Image, imageType
}

// planned pairs a page plan with the error that prevented it
type planned struct {
	plan PagePlan
	err  error
}

// planPages plans every page concurrently. Results keep the order of pages.
// Only context cancellation is returned as an error; page failures are carried
// in the individual results.
func planPages(ctx context.Context, pages []analysis.Page, cfg Config) ([]planned, error) {
	results := make([]planned, len(pages))

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range pages {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plan, err := PlanPage(pages[i], cfg)
			results[i] = planned{plan: plan, err: err}
			getLogger(cfg).Debug("planned page",
				"page", pages[i].PageNumber, "runs", len(plan.Runs), "error", err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validLength(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
