package cases

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/interview-cases/internal/config"
	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/pkg/cache"
	"github.com/futig/interview-cases/internal/pkg/metrics"
	"github.com/futig/interview-cases/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const caseListCacheKey = "cases:list"

// CaseUsecase implements case management and the question cache
type CaseUsecase struct {
	caseRepo     repository.CaseRepository
	questionRepo repository.QuestionRepository
	generator    QuestionGenerator
	resolver     *Resolver
	listCache    cache.Cache
	metrics      *metrics.Metrics
	cfg          config.QuestionsConfig
	logger       *zap.Logger
}

// NewUsecase creates a new case use case
func NewUsecase(
	caseRepo repository.CaseRepository,
	questionRepo repository.QuestionRepository,
	generator QuestionGenerator,
	resolver *Resolver,
	listCache cache.Cache,
	metrics *metrics.Metrics,
	cfg config.QuestionsConfig,
	logger *zap.Logger,
) *CaseUsecase {
	return &CaseUsecase{
		caseRepo:     caseRepo,
		questionRepo: questionRepo,
		generator:    generator,
		resolver:     resolver,
		listCache:    listCache,
		metrics:      metrics,
		cfg:          cfg,
		logger:       logger,
	}
}

// ListCases returns default cases first, then alphabetically
func (uc *CaseUsecase) ListCases(ctx context.Context) ([]*entity.Case, error) {
	var cached []*entity.Case
	err := uc.listCache.Get(ctx, caseListCacheKey, &cached)
	switch {
	case err == nil:
		uc.metrics.RecordCacheLookup(metrics.CacheListingCases, metrics.CacheResultHit)
		ctxzap.Debug(ctx, "case list served from cache", zap.Int("count", len(cached)))
		return cached, nil
	case errors.Is(err, cache.ErrMiss):
		uc.metrics.RecordCacheLookup(metrics.CacheListingCases, metrics.CacheResultMiss)
	default:
		uc.metrics.RecordCacheLookup(metrics.CacheListingCases, metrics.CacheResultError)
		ctxzap.Warn(ctx, "failed to read case list cache", zap.Error(err))
	}

	list, err := uc.caseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}

	if err := uc.listCache.Set(ctx, caseListCacheKey, list); err != nil {
		ctxzap.Warn(ctx, "failed to cache case list", zap.Error(err))
	}

	return list, nil
}

func (uc *CaseUsecase) CreateCase(ctx context.Context, req *entity.CreateCaseRequest) (*entity.Case, error) {
	created, err := uc.caseRepo.Create(ctx, entity.Case{
		Name:            req.Name,
		Description:     req.Description,
		Objective:       req.Objective,
		ExpectedOutcome: req.ExpectedOutcome,
	})
	if err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}

	uc.invalidateList(ctx)

	ctxzap.Info(ctx, "case created",
		zap.Int64("case_id", created.ID),
		zap.String("name", created.Name),
	)

	return created, nil
}

func (uc *CaseUsecase) GetCase(ctx context.Context, id int64) (*entity.Case, error) {
	c, err := uc.caseRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}
	return c, nil
}

// UpdateCase applies the non-nil fields of req. Renaming to a name held by
// another case fails with ErrCaseNameTaken; keeping the own name succeeds.
func (uc *CaseUsecase) UpdateCase(ctx context.Context, id int64, req *entity.UpdateCaseRequest) (*entity.Case, error) {
	current, err := uc.caseRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}

	if req.Name != nil && *req.Name != current.Name {
		other, err := uc.caseRepo.GetByName(ctx, *req.Name)
		switch {
		case err == nil && other.ID != id:
			return nil, fmt.Errorf("%w: %q", entity.ErrCaseNameTaken, *req.Name)
		case err != nil && !errors.Is(err, entity.ErrCaseNotFound):
			return nil, fmt.Errorf("check case name: %w", err)
		}
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Objective != nil {
		current.Objective = *req.Objective
	}
	if req.ExpectedOutcome != nil {
		current.ExpectedOutcome = *req.ExpectedOutcome
	}

	updated, err := uc.caseRepo.Update(ctx, *current)
	if err != nil {
		return nil, fmt.Errorf("update case: %w", err)
	}

	uc.invalidateList(ctx)

	ctxzap.Info(ctx, "case updated", zap.Int64("case_id", id))

	return updated, nil
}

// GetQuestions returns the stored questions of a case, newest first
func (uc *CaseUsecase) GetQuestions(ctx context.Context, id int64) (*entity.Case, []*entity.Question, error) {
	c, err := uc.caseRepo.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get case: %w", err)
	}

	questions, err := uc.questionRepo.ListByCase(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list questions: %w", err)
	}

	return c, questions, nil
}

// EnsureDefaultCases seeds the default cases when the store has no cases.
// It returns the number of cases created.
func (uc *CaseUsecase) EnsureDefaultCases(ctx context.Context) (int, error) {
	count, err := uc.caseRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count cases: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	for _, c := range defaultCases {
		if _, err := uc.caseRepo.Create(ctx, c); err != nil {
			if errors.Is(err, entity.ErrCaseNameTaken) {
				continue
			}
			return created, fmt.Errorf("seed case %q: %w", c.Name, err)
		}
		created++
	}

	uc.invalidateList(ctx)

	ctxzap.Info(ctx, "default cases seeded", zap.Int("count", created))

	return created, nil
}

func (uc *CaseUsecase) invalidateList(ctx context.Context) {
	if err := uc.listCache.Delete(ctx, caseListCacheKey); err != nil {
		ctxzap.Warn(ctx, "failed to invalidate case list cache", zap.Error(err))
	}
}
