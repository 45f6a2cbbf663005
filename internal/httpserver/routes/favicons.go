package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerFavicons) }

func registerFavicons(r chi.Router, d deps.Deps) {
	r.Route("/api/favicons", func(r chi.Router) {
		r.Get("/stats", handlers.FaviconStats(d))
		r.Delete("/", handlers.ClearFavicons(d))
		r.Get("/{domain}", handlers.GetFavicon(d))
		r.Post("/{domain}", handlers.ReportFavicon(d))
	})
}
