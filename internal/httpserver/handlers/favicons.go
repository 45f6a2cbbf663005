package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/favicon"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

type faviconResponse struct {
	Domain  string `json:"domain"`
	IconURL string `json:"iconUrl"`
	Cached  bool   `json:"cached"`
}

// GetFavicon resolves the icon URL for a domain. A cached success is
// served from the table; a cached failure is a 404 so the UI renders
// its fallback badge without probing; otherwise the well-known icon
// endpoint is proposed for the client to probe and report back.
func GetFavicon(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dom := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "domain")))
		if dom == "" {
			writeError(w, http.StatusBadRequest, "domain must not be empty")
			return
		}

		if url, ok := d.Favicons.Get(dom); ok {
			writeJSON(w, http.StatusOK, faviconResponse{Domain: dom, IconURL: url, Cached: true})
			return
		}
		if d.Favicons.IsFailed(dom) {
			writeError(w, http.StatusNotFound, "no icon known for this domain")
			return
		}

		writeJSON(w, http.StatusOK, faviconResponse{
			Domain:  dom,
			IconURL: favicon.IconURL(dom),
			Cached:  false,
		})
	}
}

type faviconReport struct {
	URL     string `json:"url"`
	Success bool   `json:"success"`
}

// ReportFavicon records a probe outcome for a domain. Successful
// reports need the resolved URL; failures are cached without one.
func ReportFavicon(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dom := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "domain")))
		if dom == "" {
			writeError(w, http.StatusBadRequest, "domain must not be empty")
			return
		}

		var report faviconReport
		if !decodeBody(w, r, &report) {
			return
		}

		if report.Success {
			if report.URL == "" {
				writeError(w, http.StatusBadRequest, "url required for a successful report")
				return
			}
			d.Favicons.Set(dom, report.URL, true)
		} else {
			d.Favicons.SetFailed(dom)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// FaviconStats reports cache occupancy.
func FaviconStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Favicons.GetStats())
	}
}

// ClearFavicons drops every cached probe outcome.
func ClearFavicons(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Favicons.Clear()
		w.WriteHeader(http.StatusNoContent)
	}
}
