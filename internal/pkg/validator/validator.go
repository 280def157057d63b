package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/futig/interview-cases/internal/entity"
	playground "github.com/go-playground/validator/v10"
)

// Validator validates request payloads and reports failures as domain errors
type Validator struct {
	validate *playground.Validate
}

func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())

	// Report json names so messages match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateCreateCase trims the text fields in place and validates them
func (v *Validator) ValidateCreateCase(req *entity.CreateCaseRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Objective = strings.TrimSpace(req.Objective)
	req.ExpectedOutcome = strings.TrimSpace(req.ExpectedOutcome)

	return v.structErr(req)
}

func (v *Validator) ValidateUpdateCase(req *entity.UpdateCaseRequest) error {
	for _, field := range []*string{req.Name, req.Description, req.Objective, req.ExpectedOutcome} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}

	return v.structErr(req)
}

func (v *Validator) ValidateCreateInterview(req *entity.CreateInterviewRequest) error {
	req.CandidateName = strings.TrimSpace(req.CandidateName)
	req.Notes = strings.TrimSpace(req.Notes)

	return v.structErr(req)
}

func (v *Validator) ValidateToggleSelection(req *entity.ToggleSelectionRequest) error {
	if req.ConsiderationID != nil {
		trimmed := strings.TrimSpace(*req.ConsiderationID)
		req.ConsiderationID = &trimmed
	}

	return v.structErr(req)
}

// structErr converts the first validation failure into ErrMissingField or
// ErrInvalidParameter naming the offending field
func (v *Validator) structErr(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %w", entity.ErrInvalidParameter, err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s", entity.ErrMissingField, fe.Field())
	case "max":
		return fmt.Errorf("%w: %s must be at most %s characters", entity.ErrInvalidParameter, fe.Field(), fe.Param())
	case "min":
		return fmt.Errorf("%w: %s must not be empty", entity.ErrInvalidParameter, fe.Field())
	case "gt":
		return fmt.Errorf("%w: %s must be greater than %s", entity.ErrInvalidParameter, fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%w: %s failed %s", entity.ErrInvalidParameter, fe.Field(), fe.Tag())
	}
}
