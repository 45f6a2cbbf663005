package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerSites) }

func registerSites(r chi.Router, d deps.Deps) {
	r.Route("/api/sites", func(r chi.Router) {
		r.Get("/", handlers.ListSites(d))
		r.Post("/", handlers.CreateSite(d))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetSite(d))
			r.Put("/", handlers.UpdateSite(d))
			r.Delete("/", handlers.DeleteSite(d))
			r.Post("/click", handlers.TrackClick(d))
			r.Get("/clicks", handlers.SiteClicks(d))
			r.Get("/suggestions", handlers.SiteSuggestions(d))
		})
	})
}
