package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthRepository interface {
	Probe(ctx context.Context) (*entity.DatabaseProbe, error)
}

var _ HealthRepository = &HealthPostgres{}

type HealthPostgres struct {
	db *pgxpool.Pool
}

func NewHealthPostgres(db *pgxpool.Pool) *HealthPostgres {
	return &HealthPostgres{db: db}
}

// Probe pings the database and counts rows of every table
func (r *HealthPostgres) Probe(ctx context.Context) (*entity.DatabaseProbe, error) {
	start := time.Now()
	if err := r.db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	latency := time.Since(start)

	const q = `
SELECT
	(SELECT COUNT(*) FROM cases),
	(SELECT COUNT(*) FROM questions),
	(SELECT COUNT(*) FROM interviews),
	(SELECT COUNT(*) FROM selected_questions)`

	var cases, questions, interviews, selections int64
	if err := r.db.QueryRow(ctx, q).Scan(&cases, &questions, &interviews, &selections); err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}

	return &entity.DatabaseProbe{
		LatencyMS: latency.Milliseconds(),
		Counts: map[string]int64{
			"cases":              cases,
			"questions":          questions,
			"interviews":         interviews,
			"selected_questions": selections,
		},
	}, nil
}
