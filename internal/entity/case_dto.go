package entity

type CreateCaseRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	Description     string `json:"description" validate:"max=2000"`
	Objective       string `json:"objective" validate:"max=2000"`
	ExpectedOutcome string `json:"expectedOutcome" validate:"max=2000"`
}

// UpdateCaseRequest is a partial update: nil fields are left unchanged
type UpdateCaseRequest struct {
	Name            *string `json:"name" validate:"omitnil,min=1,max=255"`
	Description     *string `json:"description" validate:"omitnil,max=2000"`
	Objective       *string `json:"objective" validate:"omitnil,max=2000"`
	ExpectedOutcome *string `json:"expectedOutcome" validate:"omitnil,max=2000"`
}

type CaseQuestionsResponse struct {
	Case      *Case       `json:"case"`
	Questions []*Question `json:"questions"`
}

// GenerationResult is returned by the question orchestrator
type GenerationResult struct {
	Case               *Case
	Questions          []*Question
	FromCache          bool
	CaseCreated        bool
	GeneratorConnected bool
	Trail              Trail
}

type GenerateQuestionsResponse struct {
	Case            *Case       `json:"case"`
	Questions       []*Question `json:"questions"`
	OpenAIConnected bool        `json:"openaiConnected"`
	FromCache       bool        `json:"fromCache"`
	Debug           Trail       `json:"debug"`
}

type ErrorResponse struct {
	Error       string `json:"error"`
	Message     string `json:"message,omitempty"`
	Debug       Trail  `json:"debug,omitempty"`
	RawResponse string `json:"rawResponse,omitempty"`
}
