package pdfocr

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
)

// drawTextLayer draws the planned runs onto a layer in the current pdf page.
// The pageNum parameter is used to create unique layer names for each page.
func drawTextLayer(pdf *fpdf.Fpdf, plan PagePlan, pageNum int, cfg Config) {
	// Format layer name with page number if not already included
	layerName := cfg.LayerName
	if pageNum > 0 {
		layerName = fmt.Sprintf("%s (Page %d)", cfg.LayerName, pageNum)
	}

	layer := pdf.AddLayer(layerName, true)
	pdf.BeginLayer(layer)
	pdf.SetFont(cfg.Font.Name, cfg.Font.Style, 0)

	if cfg.Debug {
		pdf.SetTextColor(255, 0, 0) // highlight text in red
		pdf.SetDrawColor(255, 0, 0)
	} else {
		pdf.SetTextColor(0, 0, 0)
	}
	if cfg.Invisible {
		pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	}

	for _, run := range plan.Runs {
		drawRun(pdf, run, cfg)
	}

	if cfg.Invisible {
		pdf.SetAlpha(1.0, "Normal")
	}
	pdf.EndLayer()
}

// drawRun renders a single run with its top-left corner at the run position
func drawRun(pdf *fpdf.Fpdf, run TextRun, cfg Config) {
	pdf.SetFontSize(run.FontSize)

	// fpdf places text on its baseline
	baseline := run.Y + run.FontSize*cfg.Font.AscentRatio
	pdf.Text(run.X, baseline, run.Encoded)

	if cfg.Debug {
		pdf.Rect(run.X, run.Y, run.Width, run.Height, "D")
	}
}
