package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/interview-cases/internal/entity"
)

type questionEnvelope struct {
	Questions []entity.GeneratedQuestion `json:"questions"`
}

// ParseQuestionSet decodes the model output into a normalized question set.
// It accepts a {"questions": [...]} object or a bare array, optionally wrapped
// in a markdown code fence. Entries without text or with an unknown type are
// dropped; missing ids are assigned as p<n> and <parent>-c<n>.
func ParseQuestionSet(content string) (*entity.GeneratedQuestionSet, error) {
	payload := stripCodeFence(content)
	if payload == "" {
		return nil, fmt.Errorf("%w: empty content", entity.ErrMalformedGeneration)
	}

	var raw []entity.GeneratedQuestion
	if strings.HasPrefix(payload, "[") {
		if err := json.Unmarshal([]byte(payload), &raw); err != nil {
			return nil, fmt.Errorf("%w: %w", entity.ErrMalformedGeneration, err)
		}
	} else {
		var env questionEnvelope
		if err := json.Unmarshal([]byte(payload), &env); err != nil {
			return nil, fmt.Errorf("%w: %w", entity.ErrMalformedGeneration, err)
		}
		raw = env.Questions
	}

	questions := normalizeQuestions(raw)

	processCount := 0
	for _, q := range questions {
		if q.Type == string(entity.QuestionTypeProcess) {
			processCount++
		}
	}
	if processCount == 0 {
		return nil, fmt.Errorf("%w: no process questions in payload", entity.ErrMalformedGeneration)
	}

	return &entity.GeneratedQuestionSet{
		Questions:  questions,
		RawPayload: content,
	}, nil
}

func normalizeQuestions(raw []entity.GeneratedQuestion) []entity.GeneratedQuestion {
	out := make([]entity.GeneratedQuestion, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, q := range raw {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			continue
		}

		q.Type = strings.ToLower(strings.TrimSpace(q.Type))
		if q.Type == "" {
			q.Type = string(entity.QuestionTypeProcess)
		}
		if entity.QuestionType(q.Type).Validate() != nil {
			continue
		}

		q.ID = uniqueID(seen, strings.TrimSpace(q.ID), "p", len(out)+1)

		q.Considerations = normalizeConsiderations(q.ID, q.Considerations)
		out = append(out, q)
	}

	return out
}

func normalizeConsiderations(parentID string, raw []entity.GeneratedConsideration) []entity.GeneratedConsideration {
	out := make([]entity.GeneratedConsideration, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, c := range raw {
		c.Question = strings.TrimSpace(c.Question)
		if c.Question == "" {
			continue
		}

		c.ID = uniqueID(seen, strings.TrimSpace(c.ID), parentID+"-c", len(out)+1)

		out = append(out, c)
	}

	return out
}

// uniqueID keeps id when it is set and unused, otherwise it numbers from n
// with prefix until it finds a free id. The result is marked as seen.
func uniqueID(seen map[string]struct{}, id, prefix string, n int) string {
	if _, dup := seen[id]; id == "" || dup {
		for {
			id = fmt.Sprintf("%s%d", prefix, n)
			if _, dup := seen[id]; !dup {
				break
			}
			n++
		}
	}
	seen[id] = struct{}{}
	return id
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the language tag line, e.g. ```json
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
