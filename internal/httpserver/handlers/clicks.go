package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

// TrackClick records one access event for a site. Unknown ids are a
// silent no-op so a stale dashboard tab never surfaces an error.
func TrackClick(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.Sites.Get(id); ok {
			d.Clicks.TrackClick(id)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SiteClicks returns the rolling counters for a site. A site that was
// never clicked reports zeroes.
func SiteClicks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.Sites.Get(id); !ok {
			writeError(w, http.StatusNotFound, "site not found")
			return
		}
		stats, ok := d.Clicks.Get(id)
		if !ok {
			stats = domain.ClickStats{}
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
