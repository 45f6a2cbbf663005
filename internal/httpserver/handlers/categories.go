package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/classify"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

type categoriesResponse struct {
	Counts map[string]int    `json:"counts"`
	Icons  map[string]string `json:"icons"`
}

// Categories reports the category population of the corpus alongside
// the icon assignments.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, categoriesResponse{
			Counts: classify.CategoryStats(d.Sites.List()),
			Icons:  d.Sites.CategoryIcons(),
		})
	}
}

type iconRequest struct {
	Icon string `json:"icon"`
}

// SetCategoryIcon assigns an icon glyph to a category.
func SetCategoryIcon(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := strings.TrimSpace(chi.URLParam(r, "category"))
		if category == "" {
			writeError(w, http.StatusBadRequest, "category must not be empty")
			return
		}

		var req iconRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Icon) == "" {
			writeError(w, http.StatusBadRequest, "icon must not be empty")
			return
		}

		if err := d.Sites.SetCategoryIcon(category, req.Icon); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{category: req.Icon})
	}
}
