package cases

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers case routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/cases", func(r chi.Router) {
		r.Get("/", h.ListCases)
		r.Post("/", h.CreateCase)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetCase)
			r.Put("/", h.UpdateCase)
			r.Get("/questions", h.GetQuestions)
			r.Post("/questions", h.GenerateQuestions)
		})
	})
}
