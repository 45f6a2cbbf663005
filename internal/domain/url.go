package domain

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL string so that cosmetic variants of
// the same address compare equal:
//   - lower-cased and trimmed
//   - https:// prepended when no scheme is present
//   - leading "www." stripped from the hostname
//   - a single trailing slash stripped from the path (empty path becomes "/")
//   - query parameters sorted by key
//
// Inputs the URL parser rejects are returned lower-cased and trimmed as-is.
func NormalizeURL(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return s
	}
	if !strings.HasPrefix(s, "http") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(raw))
	}

	u.Host = strings.TrimPrefix(u.Host, "www.")

	switch {
	case u.Path == "":
		u.Path = "/"
	case len(u.Path) > 1 && strings.HasSuffix(u.Path, "/"):
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode() // Encode emits keys in sorted order
	}

	return u.String()
}

// ExtractDomain returns the hostname of a URL with any leading "www."
// stripped. A scheme is assumed when missing.
func ExtractDomain(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(s), "http") {
		s = "https://" + s
	}

	if u, err := url.Parse(s); err == nil && u.Hostname() != "" {
		return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	}

	// Textual fallback for inputs the parser rejects.
	s = strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "www.")
	return strings.SplitN(s, "/", 2)[0]
}

// EnsureScheme returns raw with https:// prepended when no scheme is
// present. This is the only rewriting applied to stored URLs; the
// heavier NormalizeURL canonicalization is for comparisons only.
func EnsureScheme(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	if !strings.HasPrefix(strings.ToLower(s), "http") {
		return "https://" + s
	}
	return s
}

// IsValidURL reports whether raw parses as an absolute URL after
// scheme-normalization.
func IsValidURL(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	if !strings.HasPrefix(strings.ToLower(s), "http") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}
