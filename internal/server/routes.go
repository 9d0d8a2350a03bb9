package server

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/chat", h.HandleChat)
	r.Post("/suggestions", h.HandleSuggestions)
	r.Get("/health", h.HandleHealth)
}
