package classify

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rule maps signals (known domains, keywords, URL patterns) to a target
// category with a priority between 1 and 10.
type Rule struct {
	Category string
	Domains  []string
	Keywords []string
	Patterns []*regexp.Regexp
	Priority int
}

// builtinRules is the fixed classification table. Order within the
// table is irrelevant; rules are sorted by descending priority before
// matching.
var builtinRules = []Rule{
	{
		Category: "Development",
		Domains:  []string{"github.com", "gitlab.com", "stackoverflow.com", "codepen.io", "jsfiddle.net", "codesandbox.io"},
		Keywords: []string{"code", "dev", "api", "sdk", "framework", "programming"},
		Patterns: compile(`/docs?/`, `/api/`, `/developer`),
		Priority: 9,
	},
	{
		Category: "Social Media",
		Domains:  []string{"twitter.com", "facebook.com", "instagram.com", "linkedin.com", "reddit.com", "mastodon.social"},
		Keywords: []string{"social", "share", "community", "follow"},
		Patterns: compile(`/profile/`, `/user/`, `/@`),
		Priority: 8,
	},
	{
		Category: "Video & Streaming",
		Domains:  []string{"youtube.com", "vimeo.com", "twitch.tv", "netflix.com", "bilibili.com", "hulu.com"},
		Keywords: []string{"video", "movie", "series", "stream", "live", "watch"},
		Patterns: compile(`/watch`, `/video`, `/play`),
		Priority: 7,
	},
	{
		Category: "Shopping",
		Domains:  []string{"amazon.com", "ebay.com", "etsy.com", "aliexpress.com", "taobao.com", "shopify.com"},
		Keywords: []string{"shop", "store", "buy", "sale", "product", "cart"},
		Patterns: compile(`/item/`, `/product/`, `/shop`),
		Priority: 8,
	},
	{
		Category: "News",
		Domains:  []string{"bbc.com", "cnn.com", "reuters.com", "theguardian.com", "nytimes.com", "apnews.com"},
		Keywords: []string{"news", "headline", "breaking", "report", "press"},
		Patterns: compile(`/news/`, `/article/`, `/story`),
		Priority: 7,
	},
	{
		Category: "Education",
		Domains:  []string{"coursera.org", "edx.org", "udemy.com", "khanacademy.org", "mit.edu", "duolingo.com"},
		Keywords: []string{"course", "learn", "tutorial", "training", "education", "lesson"},
		Patterns: compile(`/course/`, `/learn/`, `/tutorial`),
		Priority: 8,
	},
	{
		Category: "Productivity",
		Domains:  []string{"office.com", "google.com", "notion.so", "slack.com", "zoom.us", "teams.microsoft.com"},
		Keywords: []string{"office", "work", "document", "meeting", "calendar", "task"},
		Patterns: compile(`/workspace/`, `/office/`, `/docs`),
		Priority: 7,
	},
	{
		Category: "Finance",
		Domains:  []string{"paypal.com", "coinbase.com", "binance.com", "stripe.com", "wise.com", "bloomberg.com"},
		Keywords: []string{"bank", "pay", "invest", "stock", "fund", "insurance"},
		Patterns: compile(`/banking/`, `/finance/`, `/investment`),
		Priority: 6,
	},
	{
		Category: "Lifestyle",
		Domains:  []string{"booking.com", "airbnb.com", "tripadvisor.com", "uber.com", "yelp.com", "opentable.com"},
		Keywords: []string{"travel", "hotel", "booking", "food", "delivery", "ride"},
		Patterns: compile(`/service/`, `/booking/`, `/order`),
		Priority: 6,
	},
	{
		Category: "Gaming",
		Domains:  []string{"steampowered.com", "epicgames.com", "gog.com", "itch.io", "blizzard.com", "riotgames.com"},
		Keywords: []string{"game", "gaming", "play", "esports", "multiplayer"},
		Patterns: compile(`/game/`, `/play/`, `/gaming`),
		Priority: 7,
	},
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// ruleFile is the yaml shape of a custom rules file:
//
//	rules:
//	  - category: Homelab
//	    domains: [jellyfin.org]
//	    keywords: [selfhosted]
//	    patterns: ["/admin"]
//	    priority: 9
type ruleFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	Category string   `yaml:"category"`
	Domains  []string `yaml:"domains"`
	Keywords []string `yaml:"keywords"`
	Patterns []string `yaml:"patterns"`
	Priority int      `yaml:"priority"`
}

// LoadRules reads and validates custom rules from a yaml file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules parses yaml rule definitions.
func ParseRules(data []byte) ([]Rule, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules yaml: %w", err)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, entry := range file.Rules {
		if entry.Category == "" {
			return nil, fmt.Errorf("rule %d: category is required", i)
		}
		if entry.Priority < 1 || entry.Priority > 10 {
			return nil, fmt.Errorf("rule %d (%s): priority must be between 1 and 10", i, entry.Category)
		}

		patterns := make([]*regexp.Regexp, 0, len(entry.Patterns))
		for _, p := range entry.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): invalid pattern %q: %w", i, entry.Category, p, err)
			}
			patterns = append(patterns, re)
		}

		rules = append(rules, Rule{
			Category: entry.Category,
			Domains:  entry.Domains,
			Keywords: entry.Keywords,
			Patterns: patterns,
			Priority: entry.Priority,
		})
	}

	return rules, nil
}
