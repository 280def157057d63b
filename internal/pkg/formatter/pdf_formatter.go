package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// In Docker runtime fonts are copied to /app/ttf
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"
	pdfFontSourcePath  = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func resolveFontPath() string {
	for _, p := range []string{pdfFontRuntimePath, pdfFontSourcePath} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (pf *PDFFormatter) Format(doc *Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	// Core fonts are cp1252 only, so text is translated when the TTF is missing
	fontName := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		tr = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 18)
	pdf.MultiCell(0, 9, tr(doc.Title), "", "", false)
	pdf.Ln(4)

	pdf.SetFont(fontName, "", 11)
	for _, f := range doc.Fields {
		if f.Value == "" {
			continue
		}
		pdf.MultiCell(0, 6, tr(f.Label+": "+f.Value), "", "", false)
	}

	for _, s := range doc.Sections {
		pdf.Ln(4)
		pdf.SetFont(fontName, "B", 13)
		pdf.MultiCell(0, 7, tr(s.Heading), "", "", false)

		for _, item := range s.Items {
			style := ""
			if item.Checked {
				style = "B"
			}
			pdf.SetFont(fontName, style, 11)
			pdf.SetX(pdf.GetX() + 5)
			pdf.MultiCell(0, 6, tr(checkbox(item.Checked)+" "+item.Text), "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
