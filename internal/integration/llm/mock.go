package llm

import (
	"context"
	"fmt"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const mockModel = "mock"

// MockConnector returns a fixed question set, used when ENABLE_MOCKS is set
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Configured() bool {
	return true
}

var mockTopics = []struct {
	question       string
	considerations [2]string
}{
	{
		question: "How would you assess the current state before proposing a target architecture for %s?",
		considerations: [2]string{
			"Which stakeholders would you interview first?",
			"What metrics would you collect as a baseline?",
		},
	},
	{
		question: "Walk through the process you would follow to define the roadmap for %s.",
		considerations: [2]string{
			"How would you prioritize initiatives?",
			"How would you handle dependencies between teams?",
		},
	},
	{
		question: "How would you evaluate technology options for %s?",
		considerations: [2]string{
			"What evaluation criteria would you weigh most?",
			"How would you validate a choice before committing to it?",
		},
	},
	{
		question: "Describe how you would manage risks during the execution of %s.",
		considerations: [2]string{
			"Which risks would you expect to be the most critical?",
			"How would you communicate risks to leadership?",
		},
	},
	{
		question: "How would you measure the success of %s once delivered?",
		considerations: [2]string{
			"Which KPIs would you track?",
			"How would you feed results back into the architecture?",
		},
	},
}

func (m *MockConnector) GenerateQuestions(ctx context.Context, req *entity.GenerateQuestionsRequest) (
	*entity.GeneratedQuestionSet, error,
) {
	ctxzap.Info(ctx, "[MOCK] generating questions via LLM", zap.String("case_name", req.CaseName))

	set := &entity.GeneratedQuestionSet{
		Questions: make([]entity.GeneratedQuestion, 0, len(mockTopics)),
		Model:     mockModel,
	}

	for i, topic := range mockTopics {
		id := fmt.Sprintf("p%d", i+1)
		q := entity.GeneratedQuestion{
			ID:       id,
			Question: fmt.Sprintf(topic.question, req.CaseName),
			Type:     string(entity.QuestionTypeProcess),
		}
		for j, c := range topic.considerations {
			q.Considerations = append(q.Considerations, entity.GeneratedConsideration{
				ID:       fmt.Sprintf("%s-c%d", id, j+1),
				Question: c,
			})
		}
		set.Questions = append(set.Questions, q)
	}

	ctxzap.Info(ctx, "[MOCK] questions generated", zap.Int("question_count", len(set.Questions)))
	return set, nil
}

func (m *MockConnector) Ping(ctx context.Context) (*entity.GeneratorProbe, error) {
	ctxzap.Info(ctx, "[MOCK] pinging LLM")

	return &entity.GeneratorProbe{
		Configured: true,
		Model:      mockModel,
		BaseURL:    "mock://",
		Sample:     "OK",
	}, nil
}
