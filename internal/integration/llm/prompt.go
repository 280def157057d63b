package llm

import (
	"fmt"
	"strings"

	"github.com/futig/interview-cases/internal/entity"
)

const systemPrompt = "You are an expert technical interviewer for software architects. " +
	"You answer only with valid JSON."

const questionsInstruction = `Generate 5 key interview questions for an architect candidate about the case below.
Each question must be of type "process" and describe how the candidate would approach the work.
For every question add 2 or 3 "considerations": short follow-up questions about key aspects to consider.

Respond with a JSON object of this exact shape:
{"questions": [{"id": "p1", "question": "...", "type": "process",
  "considerations": [{"id": "p1-c1", "question": "..."}]}]}`

func buildQuestionMessages(req *entity.GenerateQuestionsRequest) []entity.ChatMessage {
	var b strings.Builder
	b.WriteString(questionsInstruction)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Case: %q\n", req.CaseName)
	if req.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", req.Description)
	}
	if req.Objective != "" {
		fmt.Fprintf(&b, "Objective: %s\n", req.Objective)
	}
	if req.ExpectedOutcome != "" {
		fmt.Fprintf(&b, "Expected outcome: %s\n", req.ExpectedOutcome)
	}

	return []entity.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: b.String()},
	}
}
