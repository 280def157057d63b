package diagnostics

import (
	"context"

	"github.com/futig/interview-cases/internal/entity"
)

type DatabaseProber interface {
	Probe(ctx context.Context) (*entity.DatabaseProbe, error)
}

type GeneratorProber interface {
	Ping(ctx context.Context) (*entity.GeneratorProbe, error)
}
