package recommend

// Daypart is one fixed segment of the day with the categories
// conventionally associated with it. The table is static, not learned.
type Daypart struct {
	Label      string
	Categories []string
}

// DaypartFor buckets an hour of day into one of four segments.
func DaypartFor(hour int) Daypart {
	switch {
	case hour >= 9 && hour <= 18:
		return Daypart{
			Label:      "workday",
			Categories: []string{"Productivity", "Development", "Education"},
		}
	case hour >= 19 && hour <= 23:
		return Daypart{
			Label:      "evening",
			Categories: []string{"Video & Streaming", "Shopping", "Social Media"},
		}
	case hour >= 0 && hour <= 5:
		return Daypart{
			Label:      "late night",
			Categories: []string{"News", "Lifestyle"},
		}
	default: // early morning
		return Daypart{
			Label:      "morning",
			Categories: []string{"News", "Lifestyle"},
		}
	}
}
