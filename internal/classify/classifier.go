// Package classify suggests categories for sites that lack one, by
// scoring them against a rule-weighted table of domains, keywords and
// URL patterns. The classifier is advisory only: it never mutates
// records.
package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/linkdeck/linkdeck/internal/domain"
)

const (
	// minConfidence is the floor under which a rule contributes no
	// suggestion.
	minConfidence = 0.3

	// AutoApplyConfidence marks suggestions eligible for automatic
	// application by the caller.
	AutoApplyConfidence = 0.8

	// maxSuggestions caps the suggestions returned per record.
	maxSuggestions = 3

	// maxReasons caps the human-readable signals per suggestion.
	maxReasons = 3
)

// Suggestion is one ranked category proposal.
type Suggestion struct {
	Category   string   `json:"category"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// Classifier scores records against its rule table.
type Classifier struct {
	rules []Rule
}

// New builds a classifier from the built-in table plus any custom
// rules, sorted by descending priority.
func New(customRules ...Rule) *Classifier {
	rules := make([]Rule, 0, len(builtinRules)+len(customRules))
	rules = append(rules, builtinRules...)
	rules = append(rules, customRules...)

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})

	return &Classifier{rules: rules}
}

// Classify scores a record against every rule and returns up to three
// suggestions, descending by confidence.
func (c *Classifier) Classify(url, name, description string) []Suggestion {
	normalizedURL := domain.NormalizeURL(url)
	siteDomain := domain.ExtractDomain(normalizedURL)
	text := strings.ToLower(name + " " + description + " " + url)

	suggestions := make([]Suggestion, 0, len(c.rules))
	for i := range c.rules {
		confidence, reasons := scoreRule(&c.rules[i], siteDomain, normalizedURL, text)
		if confidence > minConfidence {
			suggestions = append(suggestions, Suggestion{
				Category:   c.rules[i].Category,
				Confidence: confidence,
				Reasons:    reasons,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// ClassifySite is the record form of Classify.
func (c *Classifier) ClassifySite(site *domain.Site) []Suggestion {
	return c.Classify(site.URL, site.Name, site.Description)
}

// ClassifyAll classifies every site in the corpus that is
// uncategorized, keyed by site id. Sites that produce no suggestion are
// left out.
func (c *Classifier) ClassifyAll(sites []domain.Site) map[string][]Suggestion {
	results := make(map[string][]Suggestion)
	for i := range sites {
		site := &sites[i]
		if site.Category != "" && site.Category != domain.DefaultCategory {
			continue
		}
		if suggestions := c.ClassifySite(site); len(suggestions) > 0 {
			results[site.ID] = suggestions
		}
	}
	return results
}

// CategoryStats tallies the category population of a corpus.
func CategoryStats(sites []domain.Site) map[string]int {
	stats := make(map[string]int)
	for i := range sites {
		stats[sites[i].CategoryOrDefault()]++
	}
	return stats
}

// SuggestNewCategories proposes rule categories that would apply to
// uncategorized sites but do not yet exist in the corpus, sorted.
func (c *Classifier) SuggestNewCategories(sites []domain.Site) []string {
	existing := make(map[string]bool)
	for i := range sites {
		if sites[i].Category != "" {
			existing[sites[i].Category] = true
		}
	}

	seen := make(map[string]bool)
	suggested := make([]string, 0)
	for i := range sites {
		site := &sites[i]
		if site.Category != "" && site.Category != domain.DefaultCategory {
			continue
		}
		for _, s := range c.ClassifySite(site) {
			if !existing[s.Category] && !seen[s.Category] {
				seen[s.Category] = true
				suggested = append(suggested, s.Category)
			}
		}
	}

	sort.Strings(suggested)
	return suggested
}

// TopSuggestion returns the best category, or "" when there is none.
func TopSuggestion(suggestions []Suggestion) string {
	if len(suggestions) == 0 {
		return ""
	}
	return suggestions[0].Category
}

// ShouldAutoApply reports whether a suggestion is confident enough for
// the caller to apply without asking.
func ShouldAutoApply(s Suggestion) bool {
	return s.Confidence >= AutoApplyConfidence
}

// scoreRule scores one record against one rule. Domain and pattern
// signals short-circuit after their first hit; keywords accumulate 0.2
// each up to 0.5. The raw sum is scaled by priority/10 and capped at 1.
func scoreRule(rule *Rule, siteDomain, url, text string) (float64, []string) {
	score := 0.0
	var reasons []string

	for _, ruleDomain := range rule.Domains {
		if strings.Contains(siteDomain, ruleDomain) || strings.Contains(ruleDomain, siteDomain) {
			score += 0.8
			reasons = append(reasons, fmt.Sprintf("domain match: %s", ruleDomain))
			break
		}
	}

	for _, pattern := range rule.Patterns {
		if pattern.MatchString(url) {
			score += 0.6
			reasons = append(reasons, fmt.Sprintf("URL pattern match: %s", pattern.String()))
			break
		}
	}

	keywordScore := 0.0
	for _, keyword := range rule.Keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			keywordScore += 0.2
			reasons = append(reasons, fmt.Sprintf("keyword match: %s", keyword))
		}
	}
	if keywordScore > 0.5 {
		keywordScore = 0.5
	}
	score += keywordScore

	score *= float64(rule.Priority) / 10

	confidence := score
	if confidence > 1 {
		confidence = 1
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return confidence, reasons
}
