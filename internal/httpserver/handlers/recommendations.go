package handlers

import (
	"net/http"
	"strconv"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/recommend"
)

const defaultRecommendationLimit = 5

// Recommendations returns ranked site proposals derived from the click
// history and the current wall clock.
func Recommendations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultRecommendationLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = parsed
		}

		engine := recommend.New(d.Sites.List(), d.Clicks.All())
		recs := engine.Recommendations(d.Now(), limit)
		if recs == nil {
			recs = []recommend.Recommendation{}
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

// UsagePattern exposes the aggregated click analysis behind the
// recommenders.
func UsagePattern(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine := recommend.New(d.Sites.List(), d.Clicks.All())
		writeJSON(w, http.StatusOK, engine.AnalyzeUsage())
	}
}
