// Package recommend derives advisory site suggestions from the corpus
// and the aggregated click history. Nothing here is persisted; callers
// pass snapshots in and render the result.
package recommend

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
)

// Type labels why a site was recommended.
type Type string

const (
	TypeFrequent  Type = "frequent"
	TypeSimilar   Type = "similar"
	TypeTrending  Type = "trending"
	TypeTimeBased Type = "time_based"
)

// Recommendation is one ranked proposal.
type Recommendation struct {
	Site    domain.Site `json:"site"`
	Score   float64     `json:"score"`
	Reasons []string    `json:"reasons"`
	Type    Type        `json:"type"`
}

// UsagePattern summarizes the click history for recommendation seeding.
type UsagePattern struct {
	CategoryPreferences map[string]int `json:"categoryPreferences"`
	FrequentSites       []string       `json:"frequentSites"` // site ids, most clicked first
}

// trendingTags mark sites surfaced by the trending recommender.
var trendingTags = map[string]bool{
	"trending": true,
	"popular":  true,
	"new":      true,
	"hot":      true,
	"featured": true,
}

// Engine computes recommendations over immutable snapshots.
type Engine struct {
	sites  []domain.Site
	clicks map[string]domain.ClickStats
}

// New creates an engine over a corpus and its click table.
func New(sites []domain.Site, clicks map[string]domain.ClickStats) *Engine {
	return &Engine{sites: sites, clicks: clicks}
}

// Recommendations gathers every recommender's output, deduplicates by
// site id (first occurrence wins), sorts descending by score and
// truncates to limit.
func (e *Engine) Recommendations(now time.Time, limit int) []Recommendation {
	var recs []Recommendation
	recs = append(recs, e.frequentCategoryRecs()...)
	recs = append(recs, e.similarSiteRecs()...)
	recs = append(recs, e.timeBasedRecs(now)...)
	recs = append(recs, e.trendingRecs()...)

	unique := dedupe(recs)
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Score > unique[j].Score
	})

	if limit > 0 && len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}

// AnalyzeUsage aggregates total clicks per site and per category.
// The per-site total is the sum of the three rolling windows.
func (e *Engine) AnalyzeUsage() UsagePattern {
	pattern := UsagePattern{CategoryPreferences: make(map[string]int)}

	type siteCount struct {
		id    string
		count int
	}
	counts := make([]siteCount, 0, len(e.clicks))

	for i := range e.sites {
		site := &e.sites[i]
		stats, ok := e.clicks[site.ID]
		if !ok {
			continue
		}
		total := windowSum(stats)
		counts = append(counts, siteCount{id: site.ID, count: total})
		pattern.CategoryPreferences[site.CategoryOrDefault()] += total
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].id < counts[j].id
	})

	limit := 10
	if len(counts) < limit {
		limit = len(counts)
	}
	for _, c := range counts[:limit] {
		pattern.FrequentSites = append(pattern.FrequentSites, c.id)
	}

	return pattern
}

// Similarity scores two sites: 0.5 for a shared category, up to 0.3
// for tag-set overlap, 0.2 when one domain contains the other.
func Similarity(a, b *domain.Site) float64 {
	score := 0.0

	if a.Category == b.Category {
		score += 0.5
	}

	if len(a.Tags) > 0 && len(b.Tags) > 0 {
		common := 0
		for _, tagA := range a.Tags {
			for _, tagB := range b.Tags {
				if tagA == tagB {
					common++
					break
				}
			}
		}
		maxLen := len(a.Tags)
		if len(b.Tags) > maxLen {
			maxLen = len(b.Tags)
		}
		score += float64(common) / float64(maxLen) * 0.3
	}

	domainA := domain.ExtractDomain(a.URL)
	domainB := domain.ExtractDomain(b.URL)
	if strings.Contains(domainA, domainB) || strings.Contains(domainB, domainA) {
		score += 0.2
	}

	return score
}

// frequentCategoryRecs proposes unused sites from the user's two most
// clicked categories.
func (e *Engine) frequentCategoryRecs() []Recommendation {
	pattern := e.AnalyzeUsage()

	type catCount struct {
		category string
		count    int
	}
	prefs := make([]catCount, 0, len(pattern.CategoryPreferences))
	for category, count := range pattern.CategoryPreferences {
		prefs = append(prefs, catCount{category, count})
	}
	sort.SliceStable(prefs, func(i, j int) bool {
		if prefs[i].count != prefs[j].count {
			return prefs[i].count > prefs[j].count
		}
		return prefs[i].category < prefs[j].category
	})
	if len(prefs) > 2 {
		prefs = prefs[:2]
	}

	frequent := make(map[string]bool, len(pattern.FrequentSites))
	for _, id := range pattern.FrequentSites {
		frequent[id] = true
	}

	var recs []Recommendation
	for _, pref := range prefs {
		picked := 0
		for i := range e.sites {
			site := &e.sites[i]
			if site.CategoryOrDefault() != pref.category || frequent[site.ID] {
				continue
			}
			recs = append(recs, Recommendation{
				Site:    *site,
				Score:   0.8,
				Reasons: []string{fmt.Sprintf("you often use %q sites", pref.category)},
				Type:    TypeFrequent,
			})
			picked++
			if picked == 2 {
				break
			}
		}
	}
	return recs
}

// similarSiteRecs proposes sites resembling the three most clicked ones.
func (e *Engine) similarSiteRecs() []Recommendation {
	pattern := e.AnalyzeUsage()

	seeds := pattern.FrequentSites
	if len(seeds) > 3 {
		seeds = seeds[:3]
	}

	var recs []Recommendation
	for _, seedID := range seeds {
		seed := e.findSite(seedID)
		if seed == nil {
			continue
		}

		similar := e.findSimilar(seed)
		if len(similar) > 2 {
			similar = similar[:2]
		}
		for _, site := range similar {
			recs = append(recs, Recommendation{
				Site:    site,
				Score:   0.6,
				Reasons: []string{fmt.Sprintf("similar to the frequently used %q", seed.Name)},
				Type:    TypeSimilar,
			})
		}
	}
	return recs
}

// timeBasedRecs proposes sites whose category fits the current daypart.
func (e *Engine) timeBasedRecs(now time.Time) []Recommendation {
	daypart := DaypartFor(now.Hour())

	var recs []Recommendation
	for _, category := range daypart.Categories {
		picked := 0
		for i := range e.sites {
			site := &e.sites[i]
			if site.Category != category {
				continue
			}
			recs = append(recs, Recommendation{
				Site:    *site,
				Score:   0.7,
				Reasons: []string{fmt.Sprintf("fits the %s", daypart.Label)},
				Type:    TypeTimeBased,
			})
			picked++
			if picked == 2 {
				break
			}
		}
	}
	return recs
}

// trendingRecs proposes sites carrying a trending-style tag.
func (e *Engine) trendingRecs() []Recommendation {
	var recs []Recommendation
	for i := range e.sites {
		site := &e.sites[i]
		if !hasTrendingTag(site) {
			continue
		}
		recs = append(recs, Recommendation{
			Site:    *site,
			Score:   0.5,
			Reasons: []string{"tagged as trending"},
			Type:    TypeTrending,
		})
		if len(recs) == 3 {
			break
		}
	}
	return recs
}

// findSimilar returns sites scoring above 0.3 against the target,
// sorted descending by similarity.
func (e *Engine) findSimilar(target *domain.Site) []domain.Site {
	type scored struct {
		site  domain.Site
		score float64
	}
	var matches []scored
	for i := range e.sites {
		site := &e.sites[i]
		if site.ID == target.ID {
			continue
		}
		if score := Similarity(site, target); score > 0.3 {
			matches = append(matches, scored{*site, score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	sites := make([]domain.Site, 0, len(matches))
	for _, m := range matches {
		sites = append(sites, m.site)
	}
	return sites
}

func (e *Engine) findSite(id string) *domain.Site {
	for i := range e.sites {
		if e.sites[i].ID == id {
			return &e.sites[i]
		}
	}
	return nil
}

func hasTrendingTag(site *domain.Site) bool {
	for _, tag := range site.Tags {
		if trendingTags[strings.ToLower(tag)] {
			return true
		}
	}
	return false
}

func dedupe(recs []Recommendation) []Recommendation {
	seen := make(map[string]bool, len(recs))
	unique := make([]Recommendation, 0, len(recs))
	for _, rec := range recs {
		if seen[rec.Site.ID] {
			continue
		}
		seen[rec.Site.ID] = true
		unique = append(unique, rec)
	}
	return unique
}

// windowSum adds the three rolling windows together. The windows
// overlap, so the same click counts up to three times; the ranking
// behavior intentionally mirrors that.
func windowSum(stats domain.ClickStats) int {
	return stats.Daily + stats.Weekly + stats.Monthly
}
