package interviews

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers interview routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/interviews", func(r chi.Router) {
		r.Post("/", h.CreateInterview)
		r.Get("/", h.ListInterviews)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetInterview)
			r.Post("/questions", h.ToggleSelection)
			r.Get("/export", h.ExportInterview)
		})
	})
}
