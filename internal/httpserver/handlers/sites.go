package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/sites"
)

func ListSites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Sites.List())
	}
}

func GetSite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		site, ok := d.Sites.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "site not found")
			return
		}
		writeJSON(w, http.StatusOK, site)
	}
}

func CreateSite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input sites.Input
		if !decodeBody(w, r, &input) {
			return
		}

		site, err := d.Sites.Add(input)
		if err != nil {
			d.Logger.Debug("site rejected", logger.Error(err))
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, site)
	}
}

func UpdateSite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var input sites.Input
		if !decodeBody(w, r, &input) {
			return
		}

		site, err := d.Sites.Update(id, input)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, site)
	}
}

func DeleteSite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.Sites.Delete(id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SiteSuggestions returns category proposals for one record.
func SiteSuggestions(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		site, ok := d.Sites.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "site not found")
			return
		}
		writeJSON(w, http.StatusOK, d.Classifier.ClassifySite(&site))
	}
}
