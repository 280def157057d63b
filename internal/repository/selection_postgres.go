package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/interview-cases/internal/entity"
	pkgRetry "github.com/futig/interview-cases/internal/pkg/retry"
	"github.com/jackc/pgx/v5"
)

// SelectionStore operates on the selections of a single locked interview.
// It is only valid inside the callback passed to InInterviewTx.
type SelectionStore interface {
	Interview() entity.Interview
	Find(ctx context.Context, questionID int64) (*entity.SelectedQuestion, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, sel entity.SelectedQuestion) (*entity.SelectedQuestion, error)
	Delete(ctx context.Context, questionID int64) error
	Repack(ctx context.Context) error
	UpdateMetadata(ctx context.Context, questionID int64, md entity.SelectionMetadata) (*entity.SelectedQuestion, error)
}

type SelectionRepository interface {
	// InInterviewTx locks the interview row and runs fn in one transaction.
	// Mutations of the same interview are serialized by the row lock.
	InInterviewTx(ctx context.Context, interviewID int64, fn func(ctx context.Context, store SelectionStore) error) error
}

var (
	_ SelectionRepository = &SelectionPostgres{}
	_ SelectionStore      = &selectionTxStore{}
)

type SelectionPostgres struct {
	db      Pool
	txRetry *pkgRetry.RetryConfig
}

func NewSelectionPostgres(db Pool, txRetry *pkgRetry.RetryConfig) *SelectionPostgres {
	return &SelectionPostgres{
		db:      db,
		txRetry: txRetry,
	}
}

func (r *SelectionPostgres) InInterviewTx(
	ctx context.Context,
	interviewID int64,
	fn func(ctx context.Context, store SelectionStore) error,
) error {
	return runInTx(ctx, r.db, r.txRetry, func(tx pgx.Tx) error {
		const q = `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1 FOR UPDATE`

		iv, err := scanInterview(tx.QueryRow(ctx, q, interviewID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return entity.ErrInterviewNotFound
			}
			return fmt.Errorf("lock interview: %w", err)
		}

		return fn(ctx, &selectionTxStore{tx: tx, interview: *iv})
	})
}

type selectionTxStore struct {
	tx        pgx.Tx
	interview entity.Interview
}

func (s *selectionTxStore) Interview() entity.Interview {
	return s.interview
}

func (s *selectionTxStore) Find(ctx context.Context, questionID int64) (*entity.SelectedQuestion, error) {
	const q = `
SELECT ` + selectionColumns + `
FROM selected_questions
WHERE interview_id = $1 AND question_id = $2`

	sel, err := scanSelection(s.tx.QueryRow(ctx, q, s.interview.ID, questionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSelectionNotFound
		}
		return nil, fmt.Errorf("get selection: %w", err)
	}

	return sel, nil
}

func (s *selectionTxStore) Count(ctx context.Context) (int, error) {
	var n int
	const q = `SELECT COUNT(*) FROM selected_questions WHERE interview_id = $1`
	if err := s.tx.QueryRow(ctx, q, s.interview.ID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count selections: %w", err)
	}
	return n, nil
}

func (s *selectionTxStore) Insert(ctx context.Context, sel entity.SelectedQuestion) (*entity.SelectedQuestion, error) {
	const q = `
INSERT INTO selected_questions (interview_id, question_id, sort_order, metadata)
VALUES ($1, $2, $3, $4)
RETURNING ` + selectionColumns

	created, err := scanSelection(s.tx.QueryRow(ctx, q,
		s.interview.ID, sel.QuestionID, sel.Order, normalizeSelectionMetadata(sel.Metadata),
	))
	if err != nil {
		if foreignKeyViolation(err) {
			return nil, entity.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("insert selection: %w", err)
	}

	return created, nil
}

func (s *selectionTxStore) Delete(ctx context.Context, questionID int64) error {
	const q = `DELETE FROM selected_questions WHERE interview_id = $1 AND question_id = $2`

	tag, err := s.tx.Exec(ctx, q, s.interview.ID, questionID)
	if err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrSelectionNotFound
	}

	return nil
}

func (s *selectionTxStore) Repack(ctx context.Context) error {
	return repackSelections(ctx, s.tx, []int64{s.interview.ID})
}

func (s *selectionTxStore) UpdateMetadata(ctx context.Context, questionID int64, md entity.SelectionMetadata) (*entity.SelectedQuestion, error) {
	const q = `
UPDATE selected_questions
SET metadata = $3, updated_at = now()
WHERE interview_id = $1 AND question_id = $2
RETURNING ` + selectionColumns

	updated, err := scanSelection(s.tx.QueryRow(ctx, q, s.interview.ID, questionID, normalizeSelectionMetadata(md)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSelectionNotFound
		}
		return nil, fmt.Errorf("update selection metadata: %w", err)
	}

	return updated, nil
}

// repackSelections renumbers the selections of each interview to 1..N keeping
// their relative order. Rows already in place are left untouched.
func repackSelections(ctx context.Context, db dbtx, interviewIDs []int64) error {
	const q = `
UPDATE selected_questions sq
SET sort_order = ranked.rn, updated_at = now()
FROM (
	SELECT interview_id, question_id,
		ROW_NUMBER() OVER (PARTITION BY interview_id ORDER BY sort_order) AS rn
	FROM selected_questions
	WHERE interview_id = ANY($1)
) ranked
WHERE sq.interview_id = ranked.interview_id
	AND sq.question_id = ranked.question_id
	AND sq.sort_order <> ranked.rn`

	if _, err := db.Exec(ctx, q, interviewIDs); err != nil {
		return fmt.Errorf("repack selections: %w", err)
	}
	return nil
}
