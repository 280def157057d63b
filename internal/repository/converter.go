package repository

import (
	"github.com/futig/interview-cases/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// rowScanner is implemented by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

const caseColumns = `id, name, description, objective, expected_outcome, is_default, created_at, updated_at`

func scanCase(row rowScanner) (*entity.Case, error) {
	var c entity.Case
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Objective, &c.ExpectedOutcome,
		&c.IsDefault, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const questionColumns = `id, case_id, question, type, metadata, batch_id, created_at`

func scanQuestion(row rowScanner) (*entity.Question, error) {
	var (
		q       entity.Question
		batchID pgtype.UUID
	)
	err := row.Scan(&q.ID, &q.CaseID, &q.Question, &q.Type, &q.Metadata, &batchID, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	q.BatchID = toBatchID(batchID)
	return &q, nil
}

const interviewColumns = `id, interview_code, interview_date, candidate_name, notes, case_id, created_at, updated_at`

func scanInterview(row rowScanner) (*entity.Interview, error) {
	var iv entity.Interview
	err := row.Scan(
		&iv.ID, &iv.InterviewCode, &iv.InterviewDate, &iv.CandidateName, &iv.Notes,
		&iv.CaseID, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

const selectionColumns = `interview_id, question_id, sort_order, metadata, created_at, updated_at`

func scanSelection(row rowScanner) (*entity.SelectedQuestion, error) {
	var s entity.SelectedQuestion
	err := row.Scan(&s.InterviewID, &s.QuestionID, &s.Order, &s.Metadata, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Metadata = normalizeSelectionMetadata(s.Metadata)
	return &s, nil
}

func scanSelectionWithQuestion(row rowScanner) (*entity.SelectedQuestionWithQuestion, error) {
	var (
		item    entity.SelectedQuestionWithQuestion
		batchID pgtype.UUID
	)
	s, q := &item.Selection, &item.Question
	err := row.Scan(
		&s.InterviewID, &s.QuestionID, &s.Order, &s.Metadata, &s.CreatedAt, &s.UpdatedAt,
		&q.ID, &q.CaseID, &q.Question, &q.Type, &q.Metadata, &batchID, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Metadata = normalizeSelectionMetadata(s.Metadata)
	q.BatchID = toBatchID(batchID)
	return &item, nil
}

// normalizeSelectionMetadata keeps the consideration list non-nil so it
// serializes as [] rather than null
func normalizeSelectionMetadata(md entity.SelectionMetadata) entity.SelectionMetadata {
	if md.SelectedConsiderations == nil {
		md.SelectedConsiderations = []string{}
	}
	return md
}

func toBatchID(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

func toPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
