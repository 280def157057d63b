package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/jackc/pgx/v5"
)

const interviewsCodeKey = "interviews_interview_code_key"

type InterviewRepository interface {
	Create(ctx context.Context, iv entity.Interview) (*entity.Interview, error)
	Get(ctx context.Context, id int64) (*entity.Interview, error)
	// List returns interviews most recently created first
	List(ctx context.Context) ([]*entity.Interview, error)
	Count(ctx context.Context) (int64, error)
	// ListSelections returns the selections of each interview joined with
	// their questions, ordered by selection order
	ListSelections(ctx context.Context, interviewIDs []int64) (map[int64][]entity.SelectedQuestionWithQuestion, error)
}

var _ InterviewRepository = &InterviewPostgres{}

type InterviewPostgres struct {
	db Pool
}

func NewInterviewPostgres(db Pool) *InterviewPostgres {
	return &InterviewPostgres{db: db}
}

func (r *InterviewPostgres) Create(ctx context.Context, iv entity.Interview) (*entity.Interview, error) {
	const q = `
INSERT INTO interviews (interview_code, interview_date, candidate_name, notes, case_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + interviewColumns

	created, err := scanInterview(r.db.QueryRow(ctx, q,
		iv.InterviewCode, iv.InterviewDate, iv.CandidateName, iv.Notes, iv.CaseID,
	))
	if err != nil {
		if uniqueViolation(err, interviewsCodeKey) {
			return nil, entity.ErrInterviewCodeTaken
		}
		if foreignKeyViolation(err) {
			return nil, entity.ErrCaseNotFound
		}
		return nil, fmt.Errorf("create interview: %w", err)
	}

	return created, nil
}

func (r *InterviewPostgres) Get(ctx context.Context, id int64) (*entity.Interview, error) {
	const q = `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`

	iv, err := scanInterview(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrInterviewNotFound
		}
		return nil, fmt.Errorf("get interview: %w", err)
	}

	return iv, nil
}

func (r *InterviewPostgres) List(ctx context.Context) ([]*entity.Interview, error) {
	const q = `SELECT ` + interviewColumns + ` FROM interviews ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer rows.Close()

	interviews := make([]*entity.Interview, 0)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		interviews = append(interviews, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interviews: %w", err)
	}

	return interviews, nil
}

func (r *InterviewPostgres) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM interviews`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count interviews: %w", err)
	}
	return n, nil
}

func (r *InterviewPostgres) ListSelections(ctx context.Context, interviewIDs []int64) (map[int64][]entity.SelectedQuestionWithQuestion, error) {
	result := make(map[int64][]entity.SelectedQuestionWithQuestion, len(interviewIDs))
	if len(interviewIDs) == 0 {
		return result, nil
	}

	const q = `
SELECT
	sq.interview_id, sq.question_id, sq.sort_order, sq.metadata, sq.created_at, sq.updated_at,
	q.id, q.case_id, q.question, q.type, q.metadata, q.batch_id, q.created_at
FROM selected_questions sq
JOIN questions q ON q.id = sq.question_id
WHERE sq.interview_id = ANY($1)
ORDER BY sq.interview_id, sq.sort_order`

	rows, err := r.db.Query(ctx, q, interviewIDs)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanSelectionWithQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		id := item.Selection.InterviewID
		result[id] = append(result[id], *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate selections: %w", err)
	}

	return result, nil
}
