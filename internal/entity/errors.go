package entity

import "errors"

// Domain errors
var (
	// Case errors
	ErrCaseNotFound  = errors.New("case not found")
	ErrCaseNameTaken = errors.New("case name already in use")

	// Question errors
	ErrQuestionNotFound     = errors.New("question not found")
	ErrUnknownConsideration = errors.New("consideration does not belong to question")

	// Interview errors
	ErrInterviewNotFound    = errors.New("interview not found")
	ErrInterviewCodeTaken   = errors.New("interview code already in use")
	ErrSelectionNotFound    = errors.New("question is not selected for interview")
	ErrQuestionCaseMismatch = errors.New("question belongs to a different case")

	// Generator errors
	ErrGeneratorNotConfigured = errors.New("question generator credentials are not configured")
	ErrGeneratorFailed        = errors.New("question generator call failed")
	ErrMalformedGeneration    = errors.New("question generator returned malformed payload")

	// Validation errors
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// GenerationError describes a failed question generation.
// Trail and RawPayload are surfaced to the caller for debugging.
type GenerationError struct {
	Stage      string
	Trail      Trail
	RawPayload string
	Err        error
}

func (e *GenerationError) Error() string {
	return "generation failed at " + e.Stage + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
