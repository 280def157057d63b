package api

import (
	"net/http"
	"time"

	casesapi "github.com/futig/interview-cases/internal/api/cases"
	diagnosticsapi "github.com/futig/interview-cases/internal/api/diagnostics"
	"github.com/futig/interview-cases/internal/api/docs"
	interviewsapi "github.com/futig/interview-cases/internal/api/interviews"
	"github.com/futig/interview-cases/internal/api/middleware"
	"github.com/futig/interview-cases/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	casesHandler *casesapi.Handler,
	interviewsHandler *interviewsapi.Handler,
	diagnosticsHandler *diagnosticsapi.Handler,
	m *metrics.Metrics,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.Metrics(m))                   // Record request metrics
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Prometheus scrape endpoint
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	casesapi.RegisterRoutes(r, casesHandler)
	interviewsapi.RegisterRoutes(r, interviewsHandler)
	diagnosticsapi.RegisterRoutes(r, diagnosticsHandler)

	return r
}
