package cases

import (
	"context"

	"github.com/futig/interview-cases/internal/entity"
)

// QuestionGenerator produces a fresh question set for a case
type QuestionGenerator interface {
	Configured() bool
	GenerateQuestions(ctx context.Context, req *entity.GenerateQuestionsRequest) (*entity.GeneratedQuestionSet, error)
}
