package entity

// GenerateQuestionsRequest is the prompt input for the question generator
type GenerateQuestionsRequest struct {
	CaseName        string
	Description     string
	Objective       string
	ExpectedOutcome string
}

type GeneratedConsideration struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

type GeneratedQuestion struct {
	ID             string                   `json:"id"`
	Question       string                   `json:"question"`
	Type           string                   `json:"type"`
	Considerations []GeneratedConsideration `json:"considerations"`
}

// GeneratedQuestionSet is the parsed generator payload
type GeneratedQuestionSet struct {
	Questions  []GeneratedQuestion `json:"questions"`
	RawPayload string              `json:"-"`
	Model      string              `json:"-"`
}

// GeneratorProbe is the result of a connectivity check against the generator
type GeneratorProbe struct {
	Configured bool   `json:"configured"`
	Model      string `json:"model"`
	BaseURL    string `json:"baseUrl"`
	LatencyMS  int64  `json:"latencyMs"`
	Sample     string `json:"sample,omitempty"`
}

// OpenAI-compatible chat completion wire types

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponseFormat struct {
	Type string `json:"type"`
}

type ChatCompletionRequest struct {
	Model          string              `json:"model"`
	Messages       []ChatMessage       `json:"messages"`
	Temperature    float32             `json:"temperature,omitempty"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	ResponseFormat *ChatResponseFormat `json:"response_format,omitempty"`
}

type ChatCompletionChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type ChatCompletionResponse struct {
	ID      string                 `json:"id"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}
