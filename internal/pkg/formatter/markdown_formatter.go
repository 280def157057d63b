package formatter

import (
	"bytes"
	"fmt"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", doc.Title)

	for _, f := range doc.Fields {
		if f.Value == "" {
			continue
		}
		fmt.Fprintf(&buf, "- **%s:** %s\n", f.Label, f.Value)
	}
	if len(doc.Fields) > 0 {
		buf.WriteString("\n")
	}

	for _, s := range doc.Sections {
		fmt.Fprintf(&buf, "## %s\n\n", s.Heading)
		for _, item := range s.Items {
			fmt.Fprintf(&buf, "- %s %s\n", checkbox(item.Checked), item.Text)
		}
		if len(s.Items) > 0 {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
