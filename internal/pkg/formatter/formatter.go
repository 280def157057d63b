package formatter

import (
	"fmt"

	"github.com/futig/interview-cases/internal/entity"
)

// Document is a format-independent export of an interview
type Document struct {
	Title    string
	Fields   []Field
	Sections []Section
}

// Field is a labelled value shown under the title
type Field struct {
	Label string
	Value string
}

// Section is one numbered question with its considerations
type Section struct {
	Heading string
	Items   []Item
}

type Item struct {
	Text    string
	Checked bool
}

type Formatter interface {
	Format(doc *Document) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
