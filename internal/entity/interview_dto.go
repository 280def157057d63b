package entity

import "time"

type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatDOCX     ExportFormat = "docx"
	FormatPDF      ExportFormat = "pdf"
)

func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

type CreateInterviewRequest struct {
	CaseID        int64  `json:"caseId" validate:"required,gt=0"`
	CandidateName string `json:"candidateName" validate:"max=255"`
	Notes         string `json:"notes" validate:"max=5000"`
}

// ToggleSelectionRequest selects or deselects a question, or one of its
// considerations when ConsiderationID is set
type ToggleSelectionRequest struct {
	QuestionID      int64   `json:"questionId" validate:"required,gt=0"`
	ConsiderationID *string `json:"considerationId" validate:"omitnil,min=1"`
	Selected        *bool   `json:"selected" validate:"required"`
}

// SelectionResult is the ledger state of one question after a toggle
type SelectionResult struct {
	InterviewID            int64
	QuestionID             int64
	ConsiderationID        string
	Selected               bool
	Changed                bool
	Order                  int
	SelectedConsiderations []string
}

type QuestionSelectionResponse struct {
	Message     string `json:"message"`
	InterviewID int64  `json:"interviewId"`
	QuestionID  int64  `json:"questionId"`
	Selected    bool   `json:"selected"`
	Order       *int   `json:"order,omitempty"`
}

type ConsiderationSelectionResponse struct {
	Message                string   `json:"message"`
	InterviewID            int64    `json:"interviewId"`
	QuestionID             int64    `json:"questionId"`
	ConsiderationID        string   `json:"considerationId"`
	Selected               bool     `json:"selected"`
	Order                  *int     `json:"order,omitempty"`
	SelectedConsiderations []string `json:"selectedConsiderations"`
}

type SelectionDTO struct {
	Order    int               `json:"order"`
	Metadata SelectionMetadata `json:"metadata"`
}

type InterviewQuestionDTO struct {
	*Question
	Selection SelectionDTO `json:"selection"`
}

type InterviewResponse struct {
	ID            int64                   `json:"id"`
	InterviewCode string                  `json:"interviewCode"`
	InterviewDate time.Time               `json:"interviewDate"`
	CandidateName string                  `json:"candidateName"`
	Notes         string                  `json:"notes"`
	CaseID        int64                   `json:"caseId"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
	Case          *Case                   `json:"case,omitempty"`
	Questions     []*InterviewQuestionDTO `json:"questions"`
}

type DatabaseProbe struct {
	LatencyMS int64            `json:"latencyMs"`
	Counts    map[string]int64 `json:"counts"`
}

type ProbeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ExportedFile is a rendered interview document
type ExportedFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// GeneratorProbeResponse flattens the probe into the response body
type GeneratorProbeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	*GeneratorProbe
	Error string `json:"error,omitempty"`
}
