package interview

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/pkg/formatter"
	pkgRetry "github.com/futig/interview-cases/internal/pkg/retry"
	"github.com/futig/interview-cases/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// InterviewUsecase implements the interview lifecycle and the selection ledger
type InterviewUsecase struct {
	interviewRepo repository.InterviewRepository
	selectionRepo repository.SelectionRepository
	caseRepo      repository.CaseRepository
	questionRepo  repository.QuestionRepository
	codes         *CodeGenerator
	formatters    *formatter.Factory
	codeRetry     *pkgRetry.RetryConfig
	logger        *zap.Logger
}

// NewUsecase creates a new interview use case
func NewUsecase(
	interviewRepo repository.InterviewRepository,
	selectionRepo repository.SelectionRepository,
	caseRepo repository.CaseRepository,
	questionRepo repository.QuestionRepository,
	codes *CodeGenerator,
	formatters *formatter.Factory,
	codeRetry *pkgRetry.RetryConfig,
	logger *zap.Logger,
) *InterviewUsecase {
	return &InterviewUsecase{
		interviewRepo: interviewRepo,
		selectionRepo: selectionRepo,
		caseRepo:      caseRepo,
		questionRepo:  questionRepo,
		codes:         codes,
		formatters:    formatters,
		codeRetry:     codeRetry,
		logger:        logger,
	}
}

// CreateInterview stores a new interview for an existing case. The code is
// counter based; when the counter fails or its code is taken, timestamp
// codes are tried until one is free.
func (uc *InterviewUsecase) CreateInterview(ctx context.Context, req *entity.CreateInterviewRequest) (*entity.Interview, error) {
	if _, err := uc.caseRepo.Get(ctx, req.CaseID); err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}

	iv := entity.Interview{
		InterviewDate: uc.codes.Now().UTC(),
		CandidateName: req.CandidateName,
		Notes:         req.Notes,
		CaseID:        req.CaseID,
	}

	code, err := uc.codes.Sequential(ctx)
	if err != nil {
		ctxzap.Warn(ctx, "falling back to timestamp interview code", zap.Error(err))
		code = uc.codes.Timestamp()
	}
	iv.InterviewCode = code

	created, err := uc.interviewRepo.Create(ctx, iv)
	if errors.Is(err, entity.ErrInterviewCodeTaken) {
		ctxzap.Warn(ctx, "interview code taken, falling back to timestamp code", zap.String("code", code))

		err = pkgRetry.Do(ctx, uc.codeRetry, isCodeTaken, func() error {
			iv.InterviewCode = uc.codes.Timestamp()
			created, err = uc.interviewRepo.Create(ctx, iv)
			return err
		})
	}
	if err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}

	ctxzap.Info(ctx, "interview created",
		zap.Int64("interview_id", created.ID),
		zap.String("interview_code", created.InterviewCode),
		zap.Int64("case_id", created.CaseID),
	)

	return created, nil
}

func isCodeTaken(err error) bool {
	return errors.Is(err, entity.ErrInterviewCodeTaken)
}

// ListInterviews returns every interview, newest first, with its case and
// selected questions
func (uc *InterviewUsecase) ListInterviews(ctx context.Context) ([]*entity.InterviewDetail, error) {
	interviews, err := uc.interviewRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	if len(interviews) == 0 {
		return []*entity.InterviewDetail{}, nil
	}

	allCases, err := uc.caseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	casesByID := make(map[int64]*entity.Case, len(allCases))
	for _, c := range allCases {
		casesByID[c.ID] = c
	}

	ids := make([]int64, len(interviews))
	for i, iv := range interviews {
		ids[i] = iv.ID
	}

	selections, err := uc.interviewRepo.ListSelections(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}

	details := make([]*entity.InterviewDetail, 0, len(interviews))
	for _, iv := range interviews {
		details = append(details, &entity.InterviewDetail{
			Interview: *iv,
			Case:      casesByID[iv.CaseID],
			Questions: selections[iv.ID],
		})
	}

	return details, nil
}

// GetInterview returns one interview with its selections in ascending order
func (uc *InterviewUsecase) GetInterview(ctx context.Context, id int64) (*entity.InterviewDetail, error) {
	iv, err := uc.interviewRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get interview: %w", err)
	}

	c, err := uc.caseRepo.Get(ctx, iv.CaseID)
	if err != nil && !errors.Is(err, entity.ErrCaseNotFound) {
		return nil, fmt.Errorf("get case: %w", err)
	}

	selections, err := uc.interviewRepo.ListSelections(ctx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}

	return &entity.InterviewDetail{
		Interview: *iv,
		Case:      c,
		Questions: selections[id],
	}, nil
}
