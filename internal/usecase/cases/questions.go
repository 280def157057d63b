package cases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/pkg/metrics"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Trail steps of a generation request
const (
	StepLoadStored    = "load_stored"
	StepCacheDecision = "cache_decision"
	StepCredentials   = "generator_credentials"
	StepGenerate      = "generate"
	StepPersist       = "persist"
)

// GenerateQuestions resolves identifier to a case and returns its stored
// questions when there are enough of them and refresh is false. Otherwise it
// asks the generator for a new set and stores it atomically, pruning the
// case to the retention cap. A failed generation leaves the store unchanged.
func (uc *CaseUsecase) GenerateQuestions(ctx context.Context, identifier string, refresh bool) (*entity.GenerationResult, error) {
	var trail entity.Trail

	resolution, trail, err := uc.resolver.Resolve(ctx, identifier, trail)
	if err != nil {
		return nil, &entity.GenerationError{Stage: "resolve", Trail: trail, Err: err}
	}
	if resolution.Created {
		uc.invalidateList(ctx)
	}

	c := resolution.Case
	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.Int64("case_id", c.ID)))

	stored, err := uc.questionRepo.ListByCase(ctx, c.ID)
	if err != nil {
		trail = trail.Add(StepLoadStored, entity.TrailStatusFailed, err.Error())
		return nil, &entity.GenerationError{Stage: StepLoadStored, Trail: trail, Err: fmt.Errorf("list questions: %w", err)}
	}
	trail = trail.Add(StepLoadStored, entity.TrailStatusOK, fmt.Sprintf("%d stored", len(stored)))

	result := &entity.GenerationResult{
		Case:               c,
		CaseCreated:        resolution.Created,
		GeneratorConnected: uc.generator.Configured(),
	}

	if !refresh && len(stored) >= uc.cfg.CacheThreshold {
		trail = trail.Add(StepCacheDecision, entity.TrailStatusOK,
			fmt.Sprintf("serving %d stored questions (threshold %d)", len(stored), uc.cfg.CacheThreshold))
		uc.metrics.RecordGeneration(metrics.OutcomeFromCache)

		ctxzap.Info(ctx, "questions served from cache", zap.Int("count", len(stored)))

		result.Questions = stored
		result.FromCache = true
		result.Trail = trail
		return result, nil
	}

	reason := fmt.Sprintf("%d stored, threshold %d", len(stored), uc.cfg.CacheThreshold)
	if refresh {
		reason = "refresh requested"
	}
	trail = trail.Add(StepCacheDecision, entity.TrailStatusMiss, reason)

	if !result.GeneratorConnected {
		trail = trail.Add(StepCredentials, entity.TrailStatusFailed, entity.ErrGeneratorNotConfigured.Error())
		uc.metrics.RecordGeneration(metrics.OutcomeNotConfig)
		return nil, &entity.GenerationError{Stage: StepCredentials, Trail: trail, Err: entity.ErrGeneratorNotConfigured}
	}
	trail = trail.Add(StepCredentials, entity.TrailStatusOK, "")

	set, trail, err := uc.generate(ctx, c, trail)
	if err != nil {
		uc.metrics.RecordGeneration(metrics.OutcomeFailed)
		return nil, err
	}

	questions := toQuestions(c.ID, set)
	if limit := uc.cfg.RetentionCap; limit > 0 && len(questions) > limit {
		ctxzap.Warn(ctx, "generated batch exceeds retention cap, truncating",
			zap.Int("generated", len(questions)),
			zap.Int("retention_cap", limit),
		)
		questions = questions[:limit]
	}

	saved, err := uc.questionRepo.SaveGeneratedBatch(ctx, c.ID, questions, uc.cfg.RetentionCap)
	if err != nil {
		trail = trail.Add(StepPersist, entity.TrailStatusFailed, err.Error())
		uc.metrics.RecordGeneration(metrics.OutcomeFailed)
		return nil, &entity.GenerationError{Stage: StepPersist, Trail: trail, Err: fmt.Errorf("save questions: %w", err)}
	}
	trail = trail.Add(StepPersist, entity.TrailStatusOK,
		fmt.Sprintf("%d saved, retention cap %d", len(saved), uc.cfg.RetentionCap))

	uc.metrics.RecordGeneration(metrics.OutcomeGenerated)
	ctxzap.Info(ctx, "questions generated and stored",
		zap.Int("count", len(saved)),
		zap.Bool("refresh", refresh),
	)

	result.Questions = saved
	result.Trail = trail
	return result, nil
}

func (uc *CaseUsecase) generate(ctx context.Context, c *entity.Case, trail entity.Trail) (*entity.GeneratedQuestionSet, entity.Trail, error) {
	start := time.Now()
	set, err := uc.generator.GenerateQuestions(ctx, &entity.GenerateQuestionsRequest{
		CaseName:        c.Name,
		Description:     c.Description,
		Objective:       c.Objective,
		ExpectedOutcome: c.ExpectedOutcome,
	})
	uc.metrics.ObserveGeneratorCall(time.Since(start))

	if err != nil {
		ctxzap.Error(ctx, "question generation failed", zap.Error(err))

		var genErr *entity.GenerationError
		if errors.As(err, &genErr) {
			trail = trail.Add(genErr.Stage, entity.TrailStatusFailed, genErr.Err.Error())
			return nil, trail, &entity.GenerationError{
				Stage:      genErr.Stage,
				Trail:      trail,
				RawPayload: genErr.RawPayload,
				Err:        genErr.Err,
			}
		}

		if !errors.Is(err, entity.ErrGeneratorNotConfigured) && !errors.Is(err, entity.ErrMalformedGeneration) {
			err = fmt.Errorf("%w: %w", entity.ErrGeneratorFailed, err)
		}
		trail = trail.Add(StepGenerate, entity.TrailStatusFailed, err.Error())
		return nil, trail, &entity.GenerationError{Stage: StepGenerate, Trail: trail, Err: err}
	}

	trail = trail.Add(StepGenerate, entity.TrailStatusOK,
		fmt.Sprintf("%d questions from %s", len(set.Questions), set.Model))

	return set, trail, nil
}

// toQuestions embeds each generated question's considerations in its metadata
func toQuestions(caseID int64, set *entity.GeneratedQuestionSet) []entity.Question {
	questions := make([]entity.Question, 0, len(set.Questions))
	for _, g := range set.Questions {
		considerations := make([]entity.Consideration, 0, len(g.Considerations))
		for _, gc := range g.Considerations {
			considerations = append(considerations, entity.Consideration{
				ID:       gc.ID,
				Question: gc.Question,
			})
		}

		questions = append(questions, entity.Question{
			CaseID:   caseID,
			Question: g.Question,
			Type:     entity.QuestionType(g.Type),
			Metadata: entity.QuestionMetadata{
				ExternalID:     g.ID,
				Considerations: considerations,
			},
		})
	}
	return questions
}
