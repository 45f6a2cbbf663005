// Package dedup decides whether a candidate record duplicates an
// existing one, via an exact-URL / domain / string-similarity cascade,
// and discovers duplicate pairs across a whole corpus.
package dedup

import (
	"fmt"
	"math"
	"strings"

	"github.com/linkdeck/linkdeck/internal/domain"
)

// Type classifies how a duplicate was matched, highest confidence first.
type Type string

const (
	TypeExact   Type = "exact"   // normalized URLs are equal
	TypeDomain  Type = "domain"  // same domain, different URL
	TypeSimilar Type = "similar" // weighted URL/name/description similarity
	TypeContent Type = "content" // name/description similarity only
)

// Result is the outcome of one duplicate check.
type Result struct {
	IsDuplicate bool         `json:"isDuplicate"`
	Similarity  float64      `json:"similarity"`
	Matched     *domain.Site `json:"matchedSite,omitempty"`
	Reasons     []string     `json:"reasons"`
	Type        Type         `json:"type"`
}

// Candidate is the record shape checked against a corpus. Only URL is
// required.
type Candidate struct {
	URL         string
	Name        string
	Description string
}

// Config toggles individual checks. The zero value disables everything;
// use DefaultConfig as a starting point.
type Config struct {
	ExactURLMatch       bool
	DomainMatch         bool
	SimilarityThreshold float64
	ContentSimilarity   bool
}

// DefaultConfig enables every check with a 0.8 similarity threshold.
func DefaultConfig() Config {
	return Config{
		ExactURLMatch:       true,
		DomainMatch:         true,
		SimilarityThreshold: 0.8,
		ContentSimilarity:   true,
	}
}

// Detector runs duplicate checks against a fixed corpus snapshot.
type Detector struct {
	sites []domain.Site
	cfg   Config
}

// New creates a detector over a corpus snapshot.
func New(sites []domain.Site, cfg Config) *Detector {
	if cfg.SimilarityThreshold == 0 {
		cfg.SimilarityThreshold = DefaultConfig().SimilarityThreshold
	}
	return &Detector{sites: sites, cfg: cfg}
}

// Detect runs the cascade for one candidate. First match wins, ordered
// by confidence: exact, domain, similar, content.
func (d *Detector) Detect(candidate Candidate) Result {
	normalizedURL := domain.NormalizeURL(candidate.URL)
	candidateDomain := domain.ExtractDomain(normalizedURL)

	if d.cfg.ExactURLMatch {
		if matched := d.findExactURLMatch(normalizedURL); matched != nil {
			return Result{
				IsDuplicate: true,
				Similarity:  1.0,
				Matched:     matched,
				Reasons:     []string{"identical URL"},
				Type:        TypeExact,
			}
		}
	}

	if d.cfg.DomainMatch {
		if matched, reasons := d.findDomainMatch(candidateDomain, normalizedURL); matched != nil {
			return Result{
				IsDuplicate: true,
				Similarity:  0.9,
				Matched:     matched,
				Reasons:     reasons,
				Type:        TypeDomain,
			}
		}
	}

	if matched, score, reasons := d.findSimilarSite(candidate); matched != nil && score >= d.cfg.SimilarityThreshold {
		return Result{
			IsDuplicate: true,
			Similarity:  score,
			Matched:     matched,
			Reasons:     reasons,
			Type:        TypeSimilar,
		}
	}

	if d.cfg.ContentSimilarity {
		if matched, score, reasons := d.findContentMatch(candidate); matched != nil && score >= d.cfg.SimilarityThreshold {
			return Result{
				IsDuplicate: true,
				Similarity:  score,
				Matched:     matched,
				Reasons:     reasons,
				Type:        TypeContent,
			}
		}
	}

	return Result{Reasons: []string{}, Type: TypeExact}
}

// FindAll runs the pairwise scan over the corpus and groups positive
// results by the first record's id. O(n²): fine for a personal bookmark
// list, callers must not assume anything better.
//
// Unlike Detect, the pairwise path always short-circuits on exact and
// domain matches before similarity thresholds apply, regardless of the
// configured toggles.
func (d *Detector) FindAll() map[string][]Result {
	duplicates := make(map[string][]Result)

	for i := 0; i < len(d.sites); i++ {
		var found []Result
		for j := i + 1; j < len(d.sites); j++ {
			if result := d.compare(&d.sites[i], &d.sites[j]); result.IsDuplicate {
				found = append(found, result)
			}
		}
		if len(found) > 0 {
			duplicates[d.sites[i].ID] = found
		}
	}

	return duplicates
}

// Stats summarizes a corpus-wide scan for a review UI.
type Stats struct {
	TotalDuplicates int          `json:"totalDuplicates"`
	DuplicateGroups int          `json:"duplicateGroups"`
	DuplicateTypes  map[Type]int `json:"duplicateTypes"`
}

// GetStats tallies the FindAll output per duplicate type.
func (d *Detector) GetStats() Stats {
	all := d.FindAll()

	stats := Stats{
		DuplicateGroups: len(all),
		DuplicateTypes: map[Type]int{
			TypeExact:   0,
			TypeDomain:  0,
			TypeSimilar: 0,
			TypeContent: 0,
		},
	}

	for _, results := range all {
		stats.TotalDuplicates += len(results)
		for _, r := range results {
			stats.DuplicateTypes[r.Type]++
		}
	}

	return stats
}

func (d *Detector) findExactURLMatch(normalizedURL string) *domain.Site {
	for i := range d.sites {
		if domain.NormalizeURL(d.sites[i].URL) == normalizedURL {
			return &d.sites[i]
		}
	}
	return nil
}

func (d *Detector) findDomainMatch(candidateDomain, normalizedURL string) (*domain.Site, []string) {
	for i := range d.sites {
		site := &d.sites[i]
		siteDomain := domain.ExtractDomain(site.URL)
		siteURL := domain.NormalizeURL(site.URL)

		if siteDomain == candidateDomain && siteURL != normalizedURL {
			reasons := []string{"different page on the same domain"}
			if isSubdomain(candidateDomain, siteDomain) {
				reasons = append(reasons, "subdomain match")
			}
			return site, reasons
		}
	}
	return nil, nil
}

func (d *Detector) findSimilarSite(candidate Candidate) (*domain.Site, float64, []string) {
	var best *domain.Site
	bestScore := 0.0
	var bestReasons []string

	for i := range d.sites {
		score, reasons := d.similarity(candidate, &d.sites[i])
		if score > bestScore {
			best = &d.sites[i]
			bestScore = score
			bestReasons = reasons
		}
	}

	return best, bestScore, bestReasons
}

func (d *Detector) findContentMatch(candidate Candidate) (*domain.Site, float64, []string) {
	if candidate.Name == "" && candidate.Description == "" {
		return nil, 0, nil
	}

	var best *domain.Site
	bestScore := 0.0
	var bestReasons []string

	for i := range d.sites {
		score, reasons := contentSimilarity(candidate, &d.sites[i])
		if score > bestScore {
			best = &d.sites[i]
			bestScore = score
			bestReasons = reasons
		}
	}

	return best, bestScore, bestReasons
}

// compare is the pairwise form of the cascade used by FindAll.
func (d *Detector) compare(a, b *domain.Site) Result {
	urlA := domain.NormalizeURL(a.URL)
	urlB := domain.NormalizeURL(b.URL)

	if urlA == urlB {
		return Result{
			IsDuplicate: true,
			Similarity:  1.0,
			Matched:     b,
			Reasons:     []string{"identical URL"},
			Type:        TypeExact,
		}
	}

	if domain.ExtractDomain(urlA) == domain.ExtractDomain(urlB) {
		return Result{
			IsDuplicate: true,
			Similarity:  0.9,
			Matched:     b,
			Reasons:     []string{"same domain"},
			Type:        TypeDomain,
		}
	}

	candidate := Candidate{URL: a.URL, Name: a.Name, Description: a.Description}
	score, reasons := d.similarity(candidate, b)
	if score >= d.cfg.SimilarityThreshold {
		return Result{
			IsDuplicate: true,
			Similarity:  score,
			Matched:     b,
			Reasons:     reasons,
			Type:        TypeSimilar,
		}
	}

	return Result{Similarity: score, Reasons: []string{}, Type: TypeExact}
}

// similarity blends URL, name and description similarity. The name term
// only counts above 0.6, the description term above 0.7, and the sum is
// capped at 1.
func (d *Detector) similarity(candidate Candidate, site *domain.Site) (float64, []string) {
	score := 0.0
	var reasons []string

	urlSim := urlSimilarity(candidate.URL, site.URL)
	if urlSim > 0.5 {
		score += urlSim * 0.4
		reasons = append(reasons, fmt.Sprintf("URL similarity: %d%%", percent(urlSim)))
	}

	if candidate.Name != "" && site.Name != "" {
		nameSim := StringSimilarity(candidate.Name, site.Name)
		if nameSim > 0.6 {
			score += nameSim * 0.3
			reasons = append(reasons, fmt.Sprintf("name similarity: %d%%", percent(nameSim)))
		}
	}

	if candidate.Description != "" && site.Description != "" {
		descSim := StringSimilarity(candidate.Description, site.Description)
		if descSim > 0.7 {
			score += descSim * 0.3
			reasons = append(reasons, fmt.Sprintf("description similarity: %d%%", percent(descSim)))
		}
	}

	return math.Min(score, 1), reasons
}

// contentSimilarity scores name and description alone, both gated at
// 0.8 before they contribute.
func contentSimilarity(candidate Candidate, site *domain.Site) (float64, []string) {
	score := 0.0
	var reasons []string

	if candidate.Name != "" && site.Name != "" {
		nameSim := StringSimilarity(candidate.Name, site.Name)
		if nameSim > 0.8 {
			score += nameSim * 0.6
			reasons = append(reasons, fmt.Sprintf("near-identical name: %d%%", percent(nameSim)))
		}
	}

	if candidate.Description != "" && site.Description != "" {
		descSim := StringSimilarity(candidate.Description, site.Description)
		if descSim > 0.8 {
			score += descSim * 0.4
			reasons = append(reasons, fmt.Sprintf("near-identical description: %d%%", percent(descSim)))
		}
	}

	return math.Min(score, 1), reasons
}

// urlSimilarity scores two URLs: a shared domain is worth a flat 0.8,
// anything else falls back to edit-distance similarity of the
// normalized strings.
func urlSimilarity(a, b string) float64 {
	normA := domain.NormalizeURL(a)
	normB := domain.NormalizeURL(b)

	if domain.ExtractDomain(normA) == domain.ExtractDomain(normB) {
		return 0.8
	}

	return StringSimilarity(normA, normB)
}

// StringSimilarity is normalized Levenshtein similarity:
// (maxLen - editDistance) / maxLen over the lower-cased, trimmed
// inputs. Identical strings score 1, an empty side scores 0.
func StringSimilarity(a, b string) float64 {
	s1 := []rune(strings.ToLower(strings.TrimSpace(a)))
	s2 := []rune(strings.ToLower(strings.TrimSpace(b)))

	if string(s1) == string(s2) {
		return 1
	}
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}

	dist := levenshtein(s1, s2)
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}
	return float64(maxLen-dist) / float64(maxLen)
}

// levenshtein computes edit distance with a two-row matrix.
func levenshtein(s1, s2 []rune) int {
	prev := make([]int, len(s1)+1)
	curr := make([]int, len(s1)+1)

	for i := 0; i <= len(s1); i++ {
		prev[i] = i
	}

	for j := 1; j <= len(s2); j++ {
		curr[0] = j
		for i := 1; i <= len(s1); i++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[i] = min3(curr[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s1)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func isSubdomain(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}
