package dedup

import (
	"math"
	"testing"

	"github.com/linkdeck/linkdeck/internal/domain"
)

func corpus() []domain.Site {
	return []domain.Site{
		{
			ID:          "gh",
			URL:         "https://github.com/golang/go",
			Name:        "Go repository",
			Description: "The Go programming language",
		},
		{
			ID:   "nf",
			URL:  "https://netflix.com",
			Name: "Netflix",
		},
	}
}

func TestDetectExactURL(t *testing.T) {
	detector := New(corpus(), DefaultConfig())

	tests := []struct {
		name string
		url  string
	}{
		{"identical url", "https://github.com/golang/go"},
		{"www variant", "https://www.github.com/golang/go"},
		{"trailing slash variant", "https://github.com/golang/go/"},
		{"missing scheme", "github.com/golang/go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := detector.Detect(Candidate{URL: tt.url})
			if !result.IsDuplicate {
				t.Fatalf("Detect(%q) not flagged as duplicate", tt.url)
			}
			if result.Type != TypeExact {
				t.Errorf("Type = %q, want %q", result.Type, TypeExact)
			}
			if result.Similarity != 1.0 {
				t.Errorf("Similarity = %v, want 1.0", result.Similarity)
			}
			if result.Matched == nil || result.Matched.ID != "gh" {
				t.Errorf("Matched = %v, want site gh", result.Matched)
			}
		})
	}
}

func TestDetectDomainMatch(t *testing.T) {
	detector := New(corpus(), DefaultConfig())

	result := detector.Detect(Candidate{URL: "https://github.com/torvalds/linux"})
	if !result.IsDuplicate {
		t.Fatal("same-domain candidate not flagged")
	}
	if result.Type != TypeDomain {
		t.Errorf("Type = %q, want %q", result.Type, TypeDomain)
	}
	if result.Similarity != 0.9 {
		t.Errorf("Similarity = %v, want 0.9", result.Similarity)
	}
}

func TestDetectContentMatch(t *testing.T) {
	// Wildly different URLs so neither the exact, domain nor weighted
	// similarity paths fire; identical name and description push the
	// content check over its threshold.
	sites := []domain.Site{
		{
			ID:          "a",
			URL:         "https://a1.io",
			Name:        "My Reading List",
			Description: "Articles saved for the weekend",
		},
	}
	detector := New(sites, DefaultConfig())

	result := detector.Detect(Candidate{
		URL:         "https://long-completely-different.example.org/some/deep/path",
		Name:        "My Reading List",
		Description: "Articles saved for the weekend",
	})
	if !result.IsDuplicate {
		t.Fatal("matching content not flagged")
	}
	if result.Type != TypeContent {
		t.Errorf("Type = %q, want %q", result.Type, TypeContent)
	}
	if result.Similarity < 0.8 {
		t.Errorf("Similarity = %v, want >= 0.8", result.Similarity)
	}
}

func TestDetectNoDuplicate(t *testing.T) {
	detector := New(corpus(), DefaultConfig())

	result := detector.Detect(Candidate{
		URL:  "https://wikipedia.org",
		Name: "Wikipedia",
	})
	if result.IsDuplicate {
		t.Errorf("unrelated candidate flagged as duplicate: %+v", result)
	}
}

func TestDetectDisabledChecks(t *testing.T) {
	cfg := Config{
		ExactURLMatch:       false,
		DomainMatch:         false,
		SimilarityThreshold: 0.99,
		ContentSimilarity:   false,
	}
	detector := New(corpus(), cfg)

	// An identical URL passes when the exact check is off and nothing
	// else reaches its threshold.
	result := detector.Detect(Candidate{URL: "https://github.com/golang/go"})
	if result.IsDuplicate {
		t.Errorf("duplicate reported with all checks disabled: %+v", result)
	}
}

func TestFindAll(t *testing.T) {
	sites := []domain.Site{
		{ID: "1", URL: "https://github.com/golang/go", Name: "Go"},
		{ID: "2", URL: "https://www.github.com/golang/go/", Name: "Go mirror"},
		{ID: "3", URL: "https://github.com/torvalds/linux", Name: "Linux"},
		{ID: "4", URL: "https://netflix.com", Name: "Netflix"},
	}
	detector := New(sites, DefaultConfig())

	groups := detector.FindAll()

	// Site 1 pairs with 2 (exact) and 3 (domain); 2 pairs with 3
	// (domain). Netflix stays clean.
	results, ok := groups["1"]
	if !ok {
		t.Fatal("no group for site 1")
	}
	if len(results) != 2 {
		t.Fatalf("site 1 has %d duplicates, want 2", len(results))
	}
	if results[0].Type != TypeExact || results[0].Matched.ID != "2" {
		t.Errorf("first relation = %q/%s, want exact/2", results[0].Type, results[0].Matched.ID)
	}
	if results[1].Type != TypeDomain || results[1].Matched.ID != "3" {
		t.Errorf("second relation = %q/%s, want domain/3", results[1].Type, results[1].Matched.ID)
	}

	if _, ok := groups["4"]; ok {
		t.Error("netflix should not appear in any duplicate group")
	}
}

func TestGetStats(t *testing.T) {
	sites := []domain.Site{
		{ID: "1", URL: "https://github.com/golang/go", Name: "Go"},
		{ID: "2", URL: "https://www.github.com/golang/go/", Name: "Go mirror"},
		{ID: "3", URL: "https://github.com/torvalds/linux", Name: "Linux"},
		{ID: "4", URL: "https://netflix.com", Name: "Netflix"},
	}
	detector := New(sites, DefaultConfig())

	stats := detector.GetStats()
	if stats.TotalDuplicates != 3 {
		t.Errorf("TotalDuplicates = %d, want 3", stats.TotalDuplicates)
	}
	if stats.DuplicateGroups != 2 {
		t.Errorf("DuplicateGroups = %d, want 2", stats.DuplicateGroups)
	}
	if stats.DuplicateTypes[TypeExact] != 1 {
		t.Errorf("exact count = %d, want 1", stats.DuplicateTypes[TypeExact])
	}
	if stats.DuplicateTypes[TypeDomain] != 2 {
		t.Errorf("domain count = %d, want 2", stats.DuplicateTypes[TypeDomain])
	}
}

func TestStringSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "github", "github", 1},
		{"case and whitespace insensitive", " GitHub ", "github", 1},
		{"one side empty", "github", "", 0},
		{"both empty", "", "", 1},
		{"kitten sitting", "kitten", "sitting", 4.0 / 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("StringSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
