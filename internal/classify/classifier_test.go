package classify

import (
	"strings"
	"testing"

	"github.com/linkdeck/linkdeck/internal/domain"
)

func TestClassifyDomainMatch(t *testing.T) {
	c := New()

	suggestions := c.Classify("https://github.com/golang/go", "", "")
	if len(suggestions) == 0 {
		t.Fatal("no suggestions for a github url")
	}

	top := suggestions[0]
	if top.Category != "Development" {
		t.Errorf("top category = %q, want Development", top.Category)
	}
	if top.Confidence <= 0.3 {
		t.Errorf("confidence = %v, want > 0.3", top.Confidence)
	}

	found := false
	for _, reason := range top.Reasons {
		if strings.Contains(reason, "domain match") {
			found = true
		}
	}
	if !found {
		t.Errorf("reasons %v lack a domain match entry", top.Reasons)
	}
}

func TestClassifyConfidenceCapsAtOne(t *testing.T) {
	c := New()

	// Domain, pattern and keyword signals all fire at once.
	suggestions := c.Classify("https://github.com/docs/api", "code dev api", "")
	if len(suggestions) == 0 {
		t.Fatal("no suggestions")
	}
	top := suggestions[0]
	if top.Category != "Development" {
		t.Fatalf("top category = %q, want Development", top.Category)
	}
	if top.Confidence != 1 {
		t.Errorf("confidence = %v, want capped at 1", top.Confidence)
	}
	if !ShouldAutoApply(top) {
		t.Error("a confidence-1 suggestion should be auto-applicable")
	}
	if len(top.Reasons) > 3 {
		t.Errorf("reasons = %d entries, want at most 3", len(top.Reasons))
	}
}

func TestClassifyNoSignal(t *testing.T) {
	c := New()

	suggestions := c.Classify("https://example.org", "untitled", "")
	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions, got %v", suggestions)
	}
}

func TestClassifyMaxSuggestions(t *testing.T) {
	c := New()

	// Keyword soup hitting many rules still returns at most three.
	suggestions := c.Classify("https://example.org/portal",
		"code video shop news course work game travel bank social",
		"dev stream store headline learn office gaming hotel pay follow")
	if len(suggestions) > 3 {
		t.Errorf("got %d suggestions, want at most 3", len(suggestions))
	}
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].Confidence > suggestions[i-1].Confidence {
			t.Errorf("suggestions not sorted descending at index %d", i)
		}
	}
}

func TestClassifyAllSkipsCategorized(t *testing.T) {
	c := New()

	sites := []domain.Site{
		{ID: "1", URL: "https://github.com/golang/go", Name: "Go", Category: "Development"},
		{ID: "2", URL: "https://gitlab.com/group/project", Name: "Project"},
		{ID: "3", URL: "https://youtube.com/watch?v=abc", Name: "Talk", Category: domain.DefaultCategory},
	}

	results := c.ClassifyAll(sites)

	if _, ok := results["1"]; ok {
		t.Error("already categorized site classified anyway")
	}
	if _, ok := results["2"]; !ok {
		t.Error("uncategorized site missing from results")
	}
	if _, ok := results["3"]; !ok {
		t.Error("default-category site missing from results")
	}
}

func TestCustomRulePriority(t *testing.T) {
	custom := Rule{
		Category: "Homelab",
		Domains:  []string{"github.com"},
		Priority: 10,
	}
	c := New(custom)

	suggestions := c.Classify("https://github.com/golang/go", "", "")
	if len(suggestions) == 0 {
		t.Fatal("no suggestions")
	}
	if suggestions[0].Category != "Homelab" {
		t.Errorf("top category = %q, want the higher-priority Homelab", suggestions[0].Category)
	}
}

func TestCategoryStats(t *testing.T) {
	sites := []domain.Site{
		{Category: "Development"},
		{Category: "Development"},
		{Category: ""},
	}

	stats := CategoryStats(sites)
	if stats["Development"] != 2 {
		t.Errorf("Development = %d, want 2", stats["Development"])
	}
	if stats[domain.DefaultCategory] != 1 {
		t.Errorf("%s = %d, want 1", domain.DefaultCategory, stats[domain.DefaultCategory])
	}
}

func TestParseRules(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		wantLen int
	}{
		{
			name: "valid rules",
			yaml: `rules:
  - category: Homelab
    domains: [jellyfin.org, proxmox.com]
    keywords: [selfhosted]
    patterns: ["/admin"]
    priority: 9
`,
			wantLen: 1,
		},
		{
			name: "missing category",
			yaml: `rules:
  - domains: [example.com]
    priority: 5
`,
			wantErr: true,
		},
		{
			name: "priority out of range",
			yaml: `rules:
  - category: Homelab
    priority: 11
`,
			wantErr: true,
		},
		{
			name: "invalid pattern",
			yaml: `rules:
  - category: Homelab
    patterns: ["("]
    priority: 5
`,
			wantErr: true,
		},
		{
			name:    "not yaml",
			yaml:    "{{{",
			wantErr: true,
		},
		{
			name:    "empty document",
			yaml:    "",
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := ParseRules([]byte(tt.yaml))
			if tt.wantErr {
				if err == nil {
					t.Error("ParseRules() expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRules() error = %v", err)
			}
			if len(rules) != tt.wantLen {
				t.Errorf("ParseRules() returned %d rules, want %d", len(rules), tt.wantLen)
			}
		})
	}
}
