package pdfocr

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// source is the original PDF whose pages are drawn beneath the text layer
type source struct {
	importer *gofpdi.Importer
	rs       io.ReadSeeker
}

func newSource(data []byte) *source {
	return &source{importer: gofpdi.NewImporter(), rs: bytes.NewReader(data)}
}

// draw imports page pageno of the source and scales it over the whole output page.
// The same reader is passed on every call so the importer parses the source once.
func (s *source) draw(pdf *fpdf.Fpdf, pageno int, w, h float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to draw source page %d: %v", pageno, r)
		}
	}()
	tpl, err := importSourcePage(pdf, s.importer, &s.rs, pageno)
	if err != nil {
		return err
	}
	s.importer.UseImportedTemplate(pdf, tpl, 0, 0, w, h)
	return nil
}

// importSourcePage imports one page as a template. The gofpdi reader panics on
// malformed input and missing pages; those panics are returned as errors.
func importSourcePage(pdf *fpdf.Fpdf, importer *gofpdi.Importer, rs *io.ReadSeeker, pageno int) (tpl int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to import source page %d: %v", pageno, r)
		}
	}()
	tpl = importer.ImportPageFromStream(pdf, rs, pageno, "/MediaBox")
	if pdf.Err() {
		return 0, pdf.Error()
	}
	return tpl, nil
}

// checkSourcePage imports pageno into a scratch document, so a broken source
// never reaches the output document.
func checkSourcePage(data []byte, pageno int) error {
	if pageno <= 0 {
		return fmt.Errorf("source page %d out of range", pageno)
	}
	rs := io.ReadSeeker(bytes.NewReader(data))
	_, err := importSourcePage(fpdf.New("P", "pt", "", ""), gofpdi.NewImporter(), &rs, pageno)
	return err
}
