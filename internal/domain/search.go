package domain

import (
	"sort"
	"strings"
)

// ScoreThreshold is the minimum fuzzy score a site must reach to
// survive filtering.
const ScoreThreshold = 0.3

// SiteCandidate represents a site with its match score against a query.
type SiteCandidate struct {
	Site  Site
	Score float64 // Score from fuzzy matching, in [0,1]
}

// FuzzyMatch scores text against a free-text query without requiring an
// exact substring match, so typos and partial input still hit.
//
// Contiguous containment always scores 1. Otherwise the query must
// appear as an in-order subsequence of text; a full subsequence also
// scores matched/len(query) = 1, a partial one scores 0.
func FuzzyMatch(text, query string) float64 {
	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	if strings.Contains(textLower, queryLower) {
		return 1
	}

	textRunes := []rune(textLower)
	queryRunes := []rune(queryLower)

	matched := 0
	queryIdx := 0
	for i := 0; i < len(textRunes) && queryIdx < len(queryRunes); i++ {
		if textRunes[i] == queryRunes[queryIdx] {
			matched++
			queryIdx++
		}
	}

	if queryIdx == len(queryRunes) {
		return float64(matched) / float64(len(queryRunes))
	}
	return 0
}

// ScoreSite calculates the match score for a site against a query.
// The overall score is the maximum across name, url, description and
// every tag. Absent optional fields score 0, same as empty ones.
func ScoreSite(query string, site *Site) float64 {
	if site == nil || query == "" {
		return 0
	}

	score := FuzzyMatch(site.Name, query)

	if s := FuzzyMatch(site.URL, query); s > score {
		score = s
	}
	if site.Description != "" {
		if s := FuzzyMatch(site.Description, query); s > score {
			score = s
		}
	}
	for _, tag := range site.Tags {
		if s := FuzzyMatch(tag, query); s > score {
			score = s
		}
	}

	return score
}

// RankSites scores every site against the query, discards scores at or
// below ScoreThreshold and sorts the survivors descending by score.
// The sort is stable: original relative order is preserved among equal
// scores.
func RankSites(query string, sites []Site) []SiteCandidate {
	candidates := make([]SiteCandidate, 0, len(sites))

	for _, site := range sites {
		score := ScoreSite(query, &site)
		if score <= ScoreThreshold {
			continue
		}
		candidates = append(candidates, SiteCandidate{Site: site, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

// Search is the convenience form of RankSites returning sites only.
func Search(query string, sites []Site) []Site {
	candidates := RankSites(query, sites)
	results := make([]Site, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, c.Site)
	}
	return results
}

// Filter holds the independent post-search filters. They intersect with
// the fuzzy results and are never fused into the score.
type Filter struct {
	Category string   // exact category equality, empty = no filter
	Tags     []string // site must carry every selected tag
}

// Apply narrows sites to those matching every configured filter.
func (f Filter) Apply(sites []Site) []Site {
	if f.Category == "" && len(f.Tags) == 0 {
		return sites
	}

	filtered := make([]Site, 0, len(sites))
	for _, site := range sites {
		if f.Category != "" && site.Category != f.Category {
			continue
		}
		if !hasAllTags(&site, f.Tags) {
			continue
		}
		filtered = append(filtered, site)
	}
	return filtered
}

func hasAllTags(site *Site, tags []string) bool {
	for _, want := range tags {
		found := false
		for _, have := range site.Tags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// AllTags collects the distinct tags across a corpus, sorted.
func AllTags(sites []Site) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, site := range sites {
		for _, tag := range site.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
