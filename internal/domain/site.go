package domain

import "time"

// DefaultCategory is the sentinel used when a site carries no category.
const DefaultCategory = "Uncategorized"

// Site represents a single bookmarked website record.
//
// It is NOT tied to the HTTP layer, the store or any import format.
// All inputs (API writes, JSON import, browser bookmark files) are
// merged into this structure.
type Site struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier, a UUID v4 assigned at
	// creation time. It is the join key into click history and
	// selection sets.
	ID string `json:"id"`

	// URL is the absolute URL of the site. Normalized at write time
	// to always carry a scheme (https:// prepended when missing).
	URL string `json:"url"`

	// ─────────────────────────────
	// Functional description
	// ─────────────────────────────

	// Name is the user-supplied display label. Never empty.
	Name string `json:"name"`

	// Category is a free-text grouping label. Defaults to
	// DefaultCategory when absent. Categories are not stored
	// entities; they are derived by grouping records.
	Category string `json:"category"`

	// Tags is an optional list of free-text labels. Order is
	// insertion order and carries no matching weight.
	Tags []string `json:"tags,omitempty"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is the time the record was first created.
	CreatedAt time.Time `json:"createdAt,omitempty"`

	// UpdatedAt is updated on any mutation.
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// CategoryOrDefault returns the site's category, falling back to the
// DefaultCategory sentinel when unset.
func (s *Site) CategoryOrDefault() string {
	if s.Category == "" {
		return DefaultCategory
	}
	return s.Category
}

// ClickStats holds the rolling access counters for one site.
// Counters reset lazily: a stale period's counter persists until the
// next access after that period's boundary has passed.
type ClickStats struct {
	Daily   int `json:"daily"`
	Weekly  int `json:"weekly"`
	Monthly int `json:"monthly"`

	// Reset boundaries, epoch milliseconds marking the start of the
	// period in which the counter was last incremented.
	LastDailyReset   int64 `json:"lastDailyReset"`
	LastWeeklyReset  int64 `json:"lastWeeklyReset"`
	LastMonthlyReset int64 `json:"lastMonthlyReset"`
}
