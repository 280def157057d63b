package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/interview-cases/internal/entity"
	pkgRetry "github.com/futig/interview-cases/internal/pkg/retry"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type QuestionRepository interface {
	ListByCase(ctx context.Context, caseID int64) ([]*entity.Question, error)
	Get(ctx context.Context, id int64) (*entity.Question, error)
	// SaveGeneratedBatch stores questions as one batch and prunes the case
	// down to the newest retentionCap questions, atomically. Only the
	// questions that survived the prune are returned.
	SaveGeneratedBatch(ctx context.Context, caseID int64, questions []entity.Question, retentionCap int) ([]*entity.Question, error)
}

var _ QuestionRepository = &QuestionPostgres{}

type QuestionPostgres struct {
	db      Pool
	txRetry *pkgRetry.RetryConfig
}

func NewQuestionPostgres(db Pool, txRetry *pkgRetry.RetryConfig) *QuestionPostgres {
	return &QuestionPostgres{
		db:      db,
		txRetry: txRetry,
	}
}

// ListByCase returns the newest batch first, keeping generation order inside a batch
func (r *QuestionPostgres) ListByCase(ctx context.Context, caseID int64) ([]*entity.Question, error) {
	const q = `
SELECT ` + questionColumns + `
FROM questions
WHERE case_id = $1
ORDER BY created_at DESC, id ASC`

	rows, err := r.db.Query(ctx, q, caseID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]*entity.Question, 0)
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return questions, nil
}

func (r *QuestionPostgres) Get(ctx context.Context, id int64) (*entity.Question, error) {
	const q = `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	question, err := scanQuestion(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return question, nil
}

func (r *QuestionPostgres) SaveGeneratedBatch(
	ctx context.Context,
	caseID int64,
	questions []entity.Question,
	retentionCap int,
) ([]*entity.Question, error) {
	if len(questions) == 0 {
		return []*entity.Question{}, nil
	}

	var saved []*entity.Question
	err := runInTx(ctx, r.db, r.txRetry, func(tx pgx.Tx) error {
		// Serializes concurrent generations for the same case
		var lockedID int64
		err := tx.QueryRow(ctx, `SELECT id FROM cases WHERE id = $1 FOR UPDATE`, caseID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return entity.ErrCaseNotFound
			}
			return fmt.Errorf("lock case: %w", err)
		}

		inserted, err := insertBatch(ctx, tx, caseID, questions)
		if err != nil {
			return err
		}

		pruned, repacked, err := pruneQuestions(ctx, tx, caseID, retentionCap)
		if err != nil {
			return err
		}
		saved = withoutPruned(inserted, pruned)

		if len(pruned) > 0 {
			ctxzap.Info(ctx, "pruned questions over retention cap",
				zap.Int64("case_id", caseID),
				zap.Int("pruned", len(pruned)),
				zap.Int("retention_cap", retentionCap),
				zap.Int("repacked_interviews", repacked),
			)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func insertBatch(ctx context.Context, tx pgx.Tx, caseID int64, questions []entity.Question) ([]*entity.Question, error) {
	const q = `
INSERT INTO questions (case_id, question, type, metadata, batch_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + questionColumns

	batchID := toPgUUID(uuid.New())

	batch := &pgx.Batch{}
	for _, question := range questions {
		batch.Queue(q, caseID, question.Question, string(question.Type), question.Metadata, batchID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	saved := make([]*entity.Question, 0, len(questions))
	for range questions {
		question, err := scanQuestion(results.QueryRow())
		if err != nil {
			return nil, fmt.Errorf("insert question: %w", err)
		}
		saved = append(saved, question)
	}

	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("close insert batch: %w", err)
	}

	return saved, nil
}

// withoutPruned drops the questions whose ids were deleted by the prune
func withoutPruned(questions []*entity.Question, pruned []int64) []*entity.Question {
	if len(pruned) == 0 {
		return questions
	}

	gone := make(map[int64]struct{}, len(pruned))
	for _, id := range pruned {
		gone[id] = struct{}{}
	}

	kept := make([]*entity.Question, 0, len(questions))
	for _, q := range questions {
		if _, ok := gone[q.ID]; !ok {
			kept = append(kept, q)
		}
	}
	return kept
}

// pruneQuestions deletes everything past the newest retentionCap questions of
// the case and returns the deleted ids. Interviews that had pruned questions
// selected are locked and re-packed so their order stays dense.
func pruneQuestions(ctx context.Context, tx pgx.Tx, caseID int64, retentionCap int) ([]int64, int, error) {
	const doomedQ = `
SELECT id
FROM questions
WHERE case_id = $1
ORDER BY created_at DESC, id DESC
OFFSET $2`

	rows, err := tx.Query(ctx, doomedQ, caseID, retentionCap)
	if err != nil {
		return nil, 0, fmt.Errorf("select questions over cap: %w", err)
	}
	doomed, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, 0, fmt.Errorf("collect questions over cap: %w", err)
	}
	if len(doomed) == 0 {
		return nil, 0, nil
	}

	const lockInterviewsQ = `
SELECT id
FROM interviews
WHERE id IN (SELECT DISTINCT interview_id FROM selected_questions WHERE question_id = ANY($1))
ORDER BY id
FOR UPDATE`

	rows, err = tx.Query(ctx, lockInterviewsQ, doomed)
	if err != nil {
		return nil, 0, fmt.Errorf("lock affected interviews: %w", err)
	}
	affected, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, 0, fmt.Errorf("collect affected interviews: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM selected_questions WHERE question_id = ANY($1)`, doomed); err != nil {
		return nil, 0, fmt.Errorf("delete selections of pruned questions: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = ANY($1)`, doomed); err != nil {
		return nil, 0, fmt.Errorf("delete pruned questions: %w", err)
	}

	if len(affected) > 0 {
		if err := repackSelections(ctx, tx, affected); err != nil {
			return nil, 0, err
		}
	}

	return doomed, len(affected), nil
}
