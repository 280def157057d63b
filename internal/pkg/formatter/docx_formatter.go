package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(doc *Document) ([]byte, error) {
	out := document.New()
	defer out.Close()

	titlePar := out.AddParagraph()
	titlePar.SetStyle("Title")
	titlePar.AddRun().AddText(doc.Title)

	for _, f := range doc.Fields {
		if f.Value == "" {
			continue
		}
		par := out.AddParagraph()
		label := par.AddRun()
		label.Properties().SetBold(true)
		label.AddText(f.Label + ": ")
		par.AddRun().AddText(f.Value)
	}

	for _, s := range doc.Sections {
		heading := out.AddParagraph()
		heading.SetStyle("Heading2")
		heading.AddRun().AddText(s.Heading)

		for _, item := range s.Items {
			par := out.AddParagraph()
			run := par.AddRun()
			run.AddText(checkbox(item.Checked) + " " + item.Text)
			if item.Checked {
				run.Properties().SetBold(true)
			}
		}
	}

	var buf bytes.Buffer
	if err := out.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
