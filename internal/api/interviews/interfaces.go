package interviews

import (
	"context"

	"github.com/futig/interview-cases/internal/entity"
)

type InterviewUsecase interface {
	CreateInterview(ctx context.Context, req *entity.CreateInterviewRequest) (*entity.Interview, error)
	ListInterviews(ctx context.Context) ([]*entity.InterviewDetail, error)
	GetInterview(ctx context.Context, id int64) (*entity.InterviewDetail, error)
	ToggleSelection(ctx context.Context, interviewID int64, req *entity.ToggleSelectionRequest) (*entity.SelectionResult, error)
	ExportInterview(ctx context.Context, id int64, format entity.ExportFormat) (*entity.ExportedFile, error)
}
