package cases

import "github.com/futig/interview-cases/internal/entity"

// toGenerateResponse converts an orchestrator result to the response DTO
func toGenerateResponse(res *entity.GenerationResult) *entity.GenerateQuestionsResponse {
	return &entity.GenerateQuestionsResponse{
		Case:            res.Case,
		Questions:       nonNilQuestions(res.Questions),
		OpenAIConnected: res.GeneratorConnected,
		FromCache:       res.FromCache,
		Debug:           res.Trail,
	}
}

func toQuestionsResponse(c *entity.Case, questions []*entity.Question) *entity.CaseQuestionsResponse {
	return &entity.CaseQuestionsResponse{
		Case:      c,
		Questions: nonNilQuestions(questions),
	}
}

func nonNilQuestions(questions []*entity.Question) []*entity.Question {
	if questions == nil {
		return []*entity.Question{}
	}
	return questions
}
