package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/pkg/formatter"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const exportDateLayout = "2006-01-02 15:04"

// ExportInterview renders the interview with its ordered selections in the
// requested format
func (uc *InterviewUsecase) ExportInterview(ctx context.Context, id int64, format entity.ExportFormat) (*entity.ExportedFile, error) {
	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	detail, err := uc.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := f.Format(buildDocument(detail))
	if err != nil {
		return nil, fmt.Errorf("format interview: %w", err)
	}

	ctxzap.Info(ctx, "interview exported",
		zap.Int64("interview_id", id),
		zap.String("format", string(format)),
		zap.Int("size", len(content)),
	)

	return &entity.ExportedFile{
		Filename:    detail.Interview.InterviewCode + f.FileExtension(),
		ContentType: f.ContentType(),
		Content:     content,
	}, nil
}

func buildDocument(detail *entity.InterviewDetail) *formatter.Document {
	iv := detail.Interview

	caseName := ""
	if detail.Case != nil {
		caseName = detail.Case.Name
	}

	doc := &formatter.Document{
		Title: "Interview " + iv.InterviewCode,
		Fields: []formatter.Field{
			{Label: "Case", Value: caseName},
			{Label: "Candidate", Value: iv.CandidateName},
			{Label: "Date", Value: iv.InterviewDate.UTC().Format(exportDateLayout)},
			{Label: "Notes", Value: strings.TrimSpace(iv.Notes)},
		},
		Sections: make([]formatter.Section, 0, len(detail.Questions)),
	}

	for _, sq := range detail.Questions {
		items := make([]formatter.Item, 0, len(sq.Question.Metadata.Considerations))
		for _, c := range sq.Question.Metadata.Considerations {
			items = append(items, formatter.Item{
				Text:    c.Question,
				Checked: sq.Selection.Metadata.Contains(c.ID),
			})
		}

		doc.Sections = append(doc.Sections, formatter.Section{
			Heading: fmt.Sprintf("%d. %s", sq.Selection.Order, sq.Question.Question),
			Items:   items,
		})
	}

	return doc
}
