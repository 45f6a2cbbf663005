package domain

// DefaultSearchHistoryLimit caps the remembered search terms.
const DefaultSearchHistoryLimit = 20

// PushSearchHistory prepends a settled, non-empty search term to the
// history. Terms already present are left where they are; the result is
// capped at limit entries, most recent first.
func PushSearchHistory(history []string, term string, limit int) []string {
	if term == "" {
		return history
	}
	if limit <= 0 {
		limit = DefaultSearchHistoryLimit
	}
	for _, h := range history {
		if h == term {
			return history
		}
	}

	updated := make([]string, 0, limit)
	updated = append(updated, term)
	for _, h := range history {
		if len(updated) == limit {
			break
		}
		updated = append(updated, h)
	}
	return updated
}
