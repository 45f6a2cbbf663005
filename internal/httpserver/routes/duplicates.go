package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerDuplicates) }

func registerDuplicates(r chi.Router, d deps.Deps) {
	r.Get("/api/duplicates", handlers.ListDuplicates(d))
	r.Post("/api/duplicates/check", handlers.CheckDuplicate(d))
}
