package handlers

import (
	"net/http"

	"github.com/linkdeck/linkdeck/internal/dedup"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

type duplicatesResponse struct {
	Groups map[string][]dedup.Result `json:"groups"`
	Stats  dedup.Stats               `json:"stats"`
}

// ListDuplicates scans the whole corpus pairwise and returns every
// duplicate relation keyed by site id, with summary counts.
func ListDuplicates(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detector := dedup.New(d.Sites.List(), d.DupConfig)
		writeJSON(w, http.StatusOK, duplicatesResponse{
			Groups: detector.FindAll(),
			Stats:  detector.GetStats(),
		})
	}
}

type duplicateCheckRequest struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CheckDuplicate runs the detector cascade for an unsaved candidate.
// Advisory only: nothing is written.
func CheckDuplicate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req duplicateCheckRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "url must not be empty")
			return
		}

		result := d.Sites.CheckDuplicate(dedup.Candidate{
			URL:         req.URL,
			Name:        req.Name,
			Description: req.Description,
		})
		writeJSON(w, http.StatusOK, result)
	}
}
