package cases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/pkg/logger"
	"github.com/futig/interview-cases/internal/pkg/response"
	"github.com/futig/interview-cases/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   CaseUsecase
	validator *validator.Validator
}

func NewHandler(usecase CaseUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// ListCases handles GET /api/cases
func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListCases")

	list, err := h.usecase.ListCases(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}
	if list == nil {
		list = []*entity.Case{}
	}

	ctxzap.Info(ctx, "cases listed successfully", zap.Int("count", len(list)))
	response.JSON(w, http.StatusOK, list)
}

// CreateCase handles POST /api/cases
func (h *Handler) CreateCase(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateCase")

	var req entity.CreateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateCreateCase(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	c, err := h.usecase.CreateCase(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusCreated, c)
}

// GetCase handles GET /api/cases/{id}
func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetCase")

	id, err := parseID(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid case id", err)
		return
	}
	ctx = logger.AddFields(ctx, zap.Int64("case_id", id))

	c, err := h.usecase.GetCase(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, c)
}

// UpdateCase handles PUT /api/cases/{id}
func (h *Handler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateCase")

	id, err := parseID(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid case id", err)
		return
	}
	ctx = logger.AddFields(ctx, zap.Int64("case_id", id))

	var req entity.UpdateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateUpdateCase(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	c, err := h.usecase.UpdateCase(ctx, id, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, c)
}

// GetQuestions handles GET /api/cases/{id}/questions
func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetQuestions")

	id, err := parseID(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid case id", err)
		return
	}
	ctx = logger.AddFields(ctx, zap.Int64("case_id", id))

	c, questions, err := h.usecase.GetQuestions(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Debug(ctx, "questions fetched", zap.Int("count", len(questions)))
	response.JSON(w, http.StatusOK, toQuestionsResponse(c, questions))
}

// GenerateQuestions handles POST /api/cases/{id}/questions?refresh=true.
// The id segment is resolved loosely: numeric id, name or slug.
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("case_identifier", identifier),
		zap.String("action", "GenerateQuestions"),
	)

	refresh := false
	if raw := r.URL.Query().Get("refresh"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(ctx, w, http.StatusBadRequest, "refresh must be a boolean", err)
			return
		}
		refresh = v
	}

	res, err := h.usecase.GenerateQuestions(ctx, identifier, refresh)
	if err != nil {
		var genErr *entity.GenerationError
		if errors.As(err, &genErr) {
			fields := []zap.Field{
				zap.String("stage", genErr.Stage),
				zap.Strings("trail", genErr.Trail.Steps()),
				zap.Error(err),
			}
			if last, ok := genErr.Trail.Last(); ok && last.Detail != "" {
				fields = append(fields, zap.String("detail", last.Detail))
			}
			ctxzap.Error(ctx, "question generation failed", fields...)
			response.GenerationError(w, http.StatusInternalServerError, generationMessage(genErr), genErr)
			return
		}
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "questions returned",
		zap.Int64("case_id", res.Case.ID),
		zap.Bool("from_cache", res.FromCache),
		zap.Int("count", len(res.Questions)),
	)
	response.JSON(w, http.StatusOK, toGenerateResponse(res))
}

func generationMessage(genErr *entity.GenerationError) string {
	switch {
	case errors.Is(genErr, entity.ErrGeneratorNotConfigured):
		return "question generator is not configured"
	case errors.Is(genErr, entity.ErrMalformedGeneration):
		return "question generator returned an unreadable response"
	case errors.Is(genErr, entity.ErrGeneratorFailed):
		return "question generator call failed"
	default:
		return "failed to generate questions"
	}
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", entity.ErrInvalidParameter, raw)
	}
	return id, nil
}

// Helper methods
func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrCaseNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "case not found", err)
	} else if errors.Is(err, entity.ErrCaseNameTaken) {
		h.respondError(ctx, w, http.StatusBadRequest, "a case with this name already exists", err)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
