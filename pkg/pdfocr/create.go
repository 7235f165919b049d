package pdfocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF for detectImageType
	_ "image/jpeg" // register JPEG for detectImageType
	_ "image/png"  // register PNG for detectImageType
	"strings"

	"codeberg.org/go-pdf/fpdf"
)

// newDocument creates an empty fpdf document in points with reproducible metadata
func newDocument(cfg Config) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetCompression(cfg.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(cfg.Timestamp)
	pdf.SetModificationDate(cfg.Timestamp)
	pdf.SetCreator("ocrebuild", true)
	if cfg.Title != "" {
		pdf.SetTitle(cfg.Title, true)
	}
	return pdf
}

// addPage starts a page sized to the plan and draws its background and text layer.
// src is nil unless the source PDF provides backgrounds.
func addPage(pdf *fpdf.Fpdf, plan PagePlan, pageNum int, cfg Config, src *source) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", plan.PageNumber, r)
		}
	}()
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: plan.Width, Ht: plan.Height})

	switch {
	case plan.SourcePage > 0 && src != nil:
		if err := src.draw(pdf, plan.SourcePage, plan.Width, plan.Height); err != nil {
			return err
		}
	case len(plan.Image) > 0:
		imageName := fmt.Sprintf("img%d", pageNum)
		opts := fpdf.ImageOptions{ReadDpi: false, ImageType: plan.ImageType}
		pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(plan.Image))
		pdf.ImageOptions(imageName, 0, 0, plan.Width, plan.Height, false, opts, 0, "")
	}

	drawTextLayer(pdf, plan, pageNum, cfg)
	if pdf.Err() {
		return pdf.Error()
	}
	return nil
}

// detectImageType tries to figure out whether the data is PNG, JPEG, etc.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), nil
}

// checkImage registers data in a scratch document the way addPage does, so an
// image that fpdf cannot embed is caught while planning. fpdf panics on some
// truncated streams; the panic is returned as an error.
func checkImage(data []byte, imageType string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read %s image: %v", imageType, r)
		}
	}()
	pdf := fpdf.New("P", "pt", "", "")
	info := pdf.RegisterImageOptionsReader("check", fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if pdf.Err() {
		return pdf.Error()
	}
	if info == nil {
		return errors.New("image not registered")
	}
	return nil
}
