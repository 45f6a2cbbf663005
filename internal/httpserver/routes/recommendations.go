package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerRecommendations) }

func registerRecommendations(r chi.Router, d deps.Deps) {
	r.Get("/api/recommendations", handlers.Recommendations(d))
	r.Get("/api/usage", handlers.UsagePattern(d))
}
