package entity

import (
	"fmt"
	"time"
)

type QuestionType string

const (
	QuestionTypeProcess       QuestionType = "process"
	QuestionTypeConsideration QuestionType = "consideration"
	QuestionTypeGeneral       QuestionType = "general"
)

func (qt QuestionType) Validate() error {
	switch qt {
	case QuestionTypeProcess, QuestionTypeConsideration, QuestionTypeGeneral:
		return nil
	default:
		return fmt.Errorf("unknown question type: %s", qt)
	}
}

// Case is a named interview topic that questions are generated against
type Case struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Objective       string    `json:"objective"`
	ExpectedOutcome string    `json:"expectedOutcome"`
	IsDefault       bool      `json:"isDefault"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Consideration is a sub-question nested under a process question.
// Its content is fixed when the parent question is generated.
type Consideration struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

// QuestionMetadata is stored as JSONB on the questions table
type QuestionMetadata struct {
	ExternalID     string          `json:"externalId,omitempty"`
	Considerations []Consideration `json:"considerations,omitempty"`
}

// HasConsideration reports whether id is one of the stored considerations
func (m QuestionMetadata) HasConsideration(id string) bool {
	for _, c := range m.Considerations {
		if c.ID == id {
			return true
		}
	}
	return false
}

type Question struct {
	ID        int64            `json:"id"`
	CaseID    int64            `json:"caseId"`
	Question  string           `json:"question"`
	Type      QuestionType     `json:"type"`
	Metadata  QuestionMetadata `json:"metadata"`
	BatchID   string           `json:"batchId,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

type Interview struct {
	ID            int64     `json:"id"`
	InterviewCode string    `json:"interviewCode"`
	InterviewDate time.Time `json:"interviewDate"`
	CandidateName string    `json:"candidateName"`
	Notes         string    `json:"notes"`
	CaseID        int64     `json:"caseId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SelectionMetadata records which considerations were chosen for a selected question
type SelectionMetadata struct {
	SelectedConsiderations []string `json:"selectedConsiderations"`
}

// Contains reports whether the consideration id is already selected
func (m SelectionMetadata) Contains(id string) bool {
	for _, s := range m.SelectedConsiderations {
		if s == id {
			return true
		}
	}
	return false
}

// With returns a copy with id appended, keeping ids unique
func (m SelectionMetadata) With(id string) SelectionMetadata {
	out := make([]string, 0, len(m.SelectedConsiderations)+1)
	out = append(out, m.SelectedConsiderations...)
	if !m.Contains(id) {
		out = append(out, id)
	}
	return SelectionMetadata{SelectedConsiderations: out}
}

// Without returns a copy with every occurrence of id removed
func (m SelectionMetadata) Without(id string) SelectionMetadata {
	out := make([]string, 0, len(m.SelectedConsiderations))
	for _, s := range m.SelectedConsiderations {
		if s != id {
			out = append(out, s)
		}
	}
	return SelectionMetadata{SelectedConsiderations: out}
}

// SelectedQuestion marks a question as chosen for an interview.
// Order is 1-based and dense within an interview.
type SelectedQuestion struct {
	InterviewID int64             `json:"interviewId"`
	QuestionID  int64             `json:"questionId"`
	Order       int               `json:"order"`
	Metadata    SelectionMetadata `json:"metadata"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// SelectedQuestionWithQuestion joins a selection with its question
type SelectedQuestionWithQuestion struct {
	Selection SelectedQuestion
	Question  Question
}

// InterviewDetail is an interview with its case and ordered selections
type InterviewDetail struct {
	Interview Interview
	Case      *Case
	Questions []SelectedQuestionWithQuestion
}
