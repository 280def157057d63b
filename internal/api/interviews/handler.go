package interviews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/pkg/logger"
	"github.com/futig/interview-cases/internal/pkg/response"
	"github.com/futig/interview-cases/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   InterviewUsecase
	validator *validator.Validator
}

func NewHandler(usecase InterviewUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// CreateInterview handles POST /api/interviews
func (h *Handler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateInterview")

	var req entity.CreateInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateCreateInterview(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	iv, err := h.usecase.CreateInterview(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toInterviewResponse(iv))
}

// ListInterviews handles GET /api/interviews
func (h *Handler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListInterviews")

	details, err := h.usecase.ListInterviews(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	out := make([]*entity.InterviewResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toInterviewDetail(d))
	}

	ctxzap.Info(ctx, "interviews listed successfully", zap.Int("count", len(out)))
	response.JSON(w, http.StatusOK, out)
}

// GetInterview handles GET /api/interviews/{id}
func (h *Handler) GetInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetInterview")

	id, err := parseID(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid interview id", err)
		return
	}
	ctx = logger.AddFields(ctx, zap.Int64("interview_id", id))

	d, err := h.usecase.GetInterview(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, toInterviewDetail(d))
}

// ToggleSelection handles POST /api/interviews/{id}/questions
func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ToggleSelection")

	id, err := parseID(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid interview id", err)
		return
	}
	ctx = logger.AddFields(ctx, zap.Int64("interview_id", id))

	var req entity.ToggleSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateToggleSelection(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	res, err := h.usecase.ToggleSelection(ctx, id, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, toSelectionResponse(res))
}

// ExportInterview handles GET /api/interviews/{id}/export?format=markdown|pdf|docx
func (h *Handler) ExportInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportInterview")

	id, err := parseID(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid interview id", err)
		return
	}

	format := entity.FormatMarkdown
	if raw := strings.ToLower(r.URL.Query().Get("format")); raw != "" {
		format = entity.ExportFormat(raw)
	}
	ctx = logger.AddFields(ctx,
		zap.Int64("interview_id", id),
		zap.String("format", string(format)),
	)

	file, err := h.usecase.ExportInterview(ctx, id, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Attachment(w, file)
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
	if errors.Is(err, entity.ErrInterviewNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "interview not found", err)
	} else if errors.Is(err, entity.ErrCaseNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "case not found", err)
	} else if errors.Is(err, entity.ErrQuestionNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "question not found", err)
	} else if errors.Is(err, entity.ErrQuestionCaseMismatch) || errors.Is(err, entity.ErrUnknownConsideration) {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	} else if errors.Is(err, entity.ErrUnsupportedFormat) || errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
