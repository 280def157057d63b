package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/jackc/pgx/v5"
)

const casesNameKey = "cases_name_key"

// CaseRepository defines the interface for case persistence
type CaseRepository interface {
	Create(ctx context.Context, c entity.Case) (*entity.Case, error)
	Get(ctx context.Context, id int64) (*entity.Case, error)
	GetByName(ctx context.Context, name string) (*entity.Case, error)
	FindByNameSubstring(ctx context.Context, fragment string) (*entity.Case, error)
	First(ctx context.Context) (*entity.Case, error)
	List(ctx context.Context) ([]*entity.Case, error)
	Update(ctx context.Context, c entity.Case) (*entity.Case, error)
	Count(ctx context.Context) (int64, error)
}

var _ CaseRepository = &CasePostgres{}

// CasePostgres implements CaseRepository using PostgreSQL
type CasePostgres struct {
	db Pool
}

func NewCasePostgres(db Pool) *CasePostgres {
	return &CasePostgres{db: db}
}

func (r *CasePostgres) Create(ctx context.Context, c entity.Case) (*entity.Case, error) {
	const q = `
INSERT INTO cases (name, description, objective, expected_outcome, is_default)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + caseColumns

	created, err := scanCase(r.db.QueryRow(ctx, q,
		c.Name, c.Description, c.Objective, c.ExpectedOutcome, c.IsDefault,
	))
	if err != nil {
		if uniqueViolation(err, casesNameKey) {
			return nil, entity.ErrCaseNameTaken
		}
		return nil, fmt.Errorf("create case: %w", err)
	}

	return created, nil
}

func (r *CasePostgres) Get(ctx context.Context, id int64) (*entity.Case, error) {
	const q = `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`

	c, err := scanCase(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrCaseNotFound
		}
		return nil, fmt.Errorf("get case: %w", err)
	}

	return c, nil
}

func (r *CasePostgres) GetByName(ctx context.Context, name string) (*entity.Case, error) {
	const q = `SELECT ` + caseColumns + ` FROM cases WHERE name = $1`

	c, err := scanCase(r.db.QueryRow(ctx, q, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrCaseNotFound
		}
		return nil, fmt.Errorf("get case by name: %w", err)
	}

	return c, nil
}

// FindByNameSubstring returns the lowest-id case whose name contains fragment,
// compared case-insensitively
func (r *CasePostgres) FindByNameSubstring(ctx context.Context, fragment string) (*entity.Case, error) {
	const q = `
SELECT ` + caseColumns + `
FROM cases
WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'
ORDER BY id
LIMIT 1`

	c, err := scanCase(r.db.QueryRow(ctx, q, escapeLike(fragment)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrCaseNotFound
		}
		return nil, fmt.Errorf("find case by substring: %w", err)
	}

	return c, nil
}

func (r *CasePostgres) First(ctx context.Context) (*entity.Case, error) {
	const q = `SELECT ` + caseColumns + ` FROM cases ORDER BY id LIMIT 1`

	c, err := scanCase(r.db.QueryRow(ctx, q))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrCaseNotFound
		}
		return nil, fmt.Errorf("get first case: %w", err)
	}

	return c, nil
}

// List returns default cases first, then the rest alphabetically
func (r *CasePostgres) List(ctx context.Context) ([]*entity.Case, error) {
	const q = `SELECT ` + caseColumns + ` FROM cases ORDER BY is_default DESC, name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	cases := make([]*entity.Case, 0)
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cases: %w", err)
	}

	return cases, nil
}

// Update overwrites every editable column. The unique constraint only fires
// when the new name belongs to another row.
func (r *CasePostgres) Update(ctx context.Context, c entity.Case) (*entity.Case, error) {
	const q = `
UPDATE cases
SET name = $2, description = $3, objective = $4, expected_outcome = $5, updated_at = now()
WHERE id = $1
RETURNING ` + caseColumns

	updated, err := scanCase(r.db.QueryRow(ctx, q,
		c.ID, c.Name, c.Description, c.Objective, c.ExpectedOutcome,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrCaseNotFound
		}
		if uniqueViolation(err, casesNameKey) {
			return nil, entity.ErrCaseNameTaken
		}
		return nil, fmt.Errorf("update case: %w", err)
	}

	return updated, nil
}

func (r *CasePostgres) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cases`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cases: %w", err)
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
