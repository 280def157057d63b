package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportInterviewMarkdown(t *testing.T) {
	f := ledgerFixture()
	ctx := context.Background()
	f.db.interviews[1].CandidateName = "Ana"

	_, err := f.uc.ToggleSelection(ctx, 1, toggle(11, true))
	require.NoError(t, err)
	_, err = f.uc.ToggleSelection(ctx, 1, toggleConsideration(10, "c2", true))
	require.NoError(t, err)

	file, err := f.uc.ExportInterview(ctx, 1, entity.FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, "E2601-0001.md", file.Filename)
	assert.Equal(t, "text/markdown; charset=utf-8", file.ContentType)

	md := string(file.Content)
	assert.Contains(t, md, "# Interview E2601-0001")
	assert.Contains(t, md, "- **Case:** Estrategia Cloud")
	assert.Contains(t, md, "- **Candidate:** Ana")
	assert.Contains(t, md, "- **Date:** 2026-01-15 10:00")
	assert.NotContains(t, md, "Notes", "empty fields are omitted")

	assert.Contains(t, md, "## 1. question")
	assert.Contains(t, md, "## 2. question")
	assert.Contains(t, md, "- [ ] consideration c1")
	assert.Contains(t, md, "- [x] consideration c2")
}

func TestBuildDocumentFollowsSelectionOrder(t *testing.T) {
	detail := &entity.InterviewDetail{
		Interview: entity.Interview{InterviewCode: "E2601-0003"},
		Questions: []entity.SelectedQuestionWithQuestion{
			{
				Selection: entity.SelectedQuestion{Order: 1, Metadata: entity.SelectionMetadata{SelectedConsiderations: []string{"a"}}},
				Question: entity.Question{Question: "First", Metadata: entity.QuestionMetadata{
					Considerations: []entity.Consideration{{ID: "a", Question: "A"}, {ID: "b", Question: "B"}},
				}},
			},
			{
				Selection: entity.SelectedQuestion{Order: 2},
				Question:  entity.Question{Question: "Second"},
			},
		},
	}

	doc := buildDocument(detail)

	assert.Equal(t, "Interview E2601-0003", doc.Title)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "1. First", doc.Sections[0].Heading)
	assert.Equal(t, "2. Second", doc.Sections[1].Heading)
	require.Len(t, doc.Sections[0].Items, 2)
	assert.True(t, doc.Sections[0].Items[0].Checked)
	assert.False(t, doc.Sections[0].Items[1].Checked)
	assert.Empty(t, doc.Sections[1].Items)
}

func TestExportInterviewUnsupportedFormat(t *testing.T) {
	f := ledgerFixture()

	_, err := f.uc.ExportInterview(context.Background(), 1, entity.ExportFormat("html"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrUnsupportedFormat))
}

func TestExportInterviewNotFound(t *testing.T) {
	f := ledgerFixture()

	_, err := f.uc.ExportInterview(context.Background(), 8, entity.FormatMarkdown)
	assert.True(t, errors.Is(err, entity.ErrInterviewNotFound))
}
