package cases

import (
	"context"

	"github.com/futig/interview-cases/internal/entity"
)

type CaseUsecase interface {
	ListCases(ctx context.Context) ([]*entity.Case, error)
	CreateCase(ctx context.Context, req *entity.CreateCaseRequest) (*entity.Case, error)
	GetCase(ctx context.Context, id int64) (*entity.Case, error)
	UpdateCase(ctx context.Context, id int64, req *entity.UpdateCaseRequest) (*entity.Case, error)
	GetQuestions(ctx context.Context, id int64) (*entity.Case, []*entity.Question, error)
	GenerateQuestions(ctx context.Context, identifier string, refresh bool) (*entity.GenerationResult, error)
}
