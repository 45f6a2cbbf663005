package handlers

import (
	"net/http"

	"github.com/linkdeck/linkdeck/internal/classify"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

type classifyRequest struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ClassifyCandidate scores an unsaved record against the rule table.
func ClassifyCandidate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "url must not be empty")
			return
		}
		writeJSON(w, http.StatusOK, d.Classifier.Classify(req.URL, req.Name, req.Description))
	}
}

type classifyAllResponse struct {
	Suggestions   map[string][]classify.Suggestion `json:"suggestions"`
	NewCategories []string                         `json:"newCategories"`
}

// ClassifyAll batch-classifies every uncategorized site in the corpus,
// keyed by site id, and proposes rule categories missing from the
// corpus entirely.
func ClassifyAll(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		corpus := d.Sites.List()
		resp := classifyAllResponse{
			Suggestions:   d.Classifier.ClassifyAll(corpus),
			NewCategories: d.Classifier.SuggestNewCategories(corpus),
		}
		if resp.NewCategories == nil {
			resp.NewCategories = []string{}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
