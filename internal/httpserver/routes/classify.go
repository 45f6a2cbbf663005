package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerClassify) }

func registerClassify(r chi.Router, d deps.Deps) {
	r.Post("/api/classify", handlers.ClassifyCandidate(d))
	r.Get("/api/classify", handlers.ClassifyAll(d))
}
