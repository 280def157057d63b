package diagnostics

import (
	"errors"
	"net/http"

	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/pkg/logger"
	"github.com/futig/interview-cases/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	database  DatabaseProber
	generator GeneratorProber
}

func NewHandler(database DatabaseProber, generator GeneratorProber) *Handler {
	return &Handler{
		database:  database,
		generator: generator,
	}
}

// TestDatabase handles GET /api/test-database
func (h *Handler) TestDatabase(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "TestDatabase")

	probe, err := h.database.Probe(ctx)
	if err != nil {
		ctxzap.Error(ctx, "database probe failed", zap.Error(err))
		response.JSON(w, http.StatusInternalServerError, &entity.ProbeResponse{
			Success: false,
			Message: "database is not reachable",
			Error:   err.Error(),
		})
		return
	}

	ctxzap.Info(ctx, "database probe succeeded", zap.Int64("latency_ms", probe.LatencyMS))
	response.JSON(w, http.StatusOK, &entity.ProbeResponse{
		Success: true,
		Message: "database connection is working",
		Details: probe,
	})
}

// TestGenerator handles GET /api/test-openai
func (h *Handler) TestGenerator(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "TestGenerator")

	probe, err := h.generator.Ping(ctx)
	if err != nil {
		msg := "question generator call failed"
		if errors.Is(err, entity.ErrGeneratorNotConfigured) {
			msg = "question generator is not configured"
		}

		ctxzap.Error(ctx, msg, zap.Error(err))
		response.JSON(w, http.StatusInternalServerError, &entity.GeneratorProbeResponse{
			Success:        false,
			Message:        msg,
			GeneratorProbe: probe,
			Error:          err.Error(),
		})
		return
	}

	ctxzap.Info(ctx, "generator probe succeeded",
		zap.String("model", probe.Model),
		zap.Int64("latency_ms", probe.LatencyMS),
	)
	response.JSON(w, http.StatusOK, &entity.GeneratorProbeResponse{
		Success:        true,
		Message:        "question generator connection is working",
		GeneratorProbe: probe,
	})
}
