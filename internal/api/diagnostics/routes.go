package diagnostics

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers connectivity probe routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/api/test-database", h.TestDatabase)
	r.Get("/api/test-openai", h.TestGenerator)
}
