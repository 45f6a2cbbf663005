package handlers

import (
	"net/http"
	"strings"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/logger"
)

type searchResponse struct {
	Query   string                 `json:"query"`
	Results []domain.SiteCandidate `json:"results"`
}

// Search ranks the corpus against q after applying the optional
// category and tags filters. A non-empty query lands in the recent
// search history.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		filter := domain.Filter{
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
		}
		if rawTags := strings.TrimSpace(r.URL.Query().Get("tags")); rawTags != "" {
			for _, tag := range strings.Split(rawTags, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					filter.Tags = append(filter.Tags, tag)
				}
			}
		}

		corpus := filter.Apply(d.Sites.List())

		// Empty query -> the filtered corpus in stable order, unscored.
		if query == "" {
			results := make([]domain.SiteCandidate, 0, len(corpus))
			for _, site := range corpus {
				results = append(results, domain.SiteCandidate{Site: site, Score: 0})
			}
			writeJSON(w, http.StatusOK, searchResponse{Query: query, Results: results})
			return
		}

		results := domain.RankSites(query, corpus)
		d.Sites.RecordSearch(query)

		d.Logger.Debug("search",
			logger.String("query", query),
			logger.Int("results", len(results)))

		if results == nil {
			results = []domain.SiteCandidate{}
		}
		writeJSON(w, http.StatusOK, searchResponse{Query: query, Results: results})
	}
}

// History returns the recent search terms, most recent first.
func History(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history := d.Sites.SearchHistory()
		if history == nil {
			history = []string{}
		}
		writeJSON(w, http.StatusOK, history)
	}
}
