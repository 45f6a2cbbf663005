// Package clicks maintains per-site access counters over three rolling
// windows (day, week, month). Counters reset lazily: there is no
// background timer, a stale period's counter is resampled at the next
// access after the period boundary has passed.
package clicks

import (
	"errors"
	"sync"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/store"
)

// StorageKey is the KV key holding the click table.
const StorageKey = "site-clicks"

// StartOfDay returns local midnight for t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the most recent Monday 00:00 for t.
// Sunday counts as day 7 of the previous week.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return StartOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// StartOfMonth returns the first of the current month, 00:00, for t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Track applies one access event at now to stats and returns the
// updated value. The three windows are checked independently: each
// counter either resets to 1 (its stored boundary predates the current
// period start) or increments by 1.
func Track(stats domain.ClickStats, now time.Time) domain.ClickStats {
	dayStart := StartOfDay(now).UnixMilli()
	weekStart := StartOfWeek(now).UnixMilli()
	monthStart := StartOfMonth(now).UnixMilli()

	updated := stats

	if stats.LastDailyReset < dayStart {
		updated.Daily = 1
		updated.LastDailyReset = dayStart
	} else {
		updated.Daily++
	}

	if stats.LastWeeklyReset < weekStart {
		updated.Weekly = 1
		updated.LastWeeklyReset = weekStart
	} else {
		updated.Weekly++
	}

	if stats.LastMonthlyReset < monthStart {
		updated.Monthly = 1
		updated.LastMonthlyReset = monthStart
	} else {
		updated.Monthly++
	}

	return updated
}

// Tracker owns the durable click table. Entries are created lazily on
// first click and removed outright when the owning site is deleted.
type Tracker struct {
	mu     sync.RWMutex
	data   map[string]domain.ClickStats
	kv     store.KV
	logger logger.Logger
	now    func() time.Time
}

// NewTracker creates a tracker over kv, loading any persisted table.
func NewTracker(kv store.KV, log logger.Logger) *Tracker {
	t := &Tracker{
		data:   make(map[string]domain.ClickStats),
		kv:     kv,
		logger: log,
		now:    time.Now,
	}

	var stored map[string]domain.ClickStats
	err := store.ReadJSON(kv, StorageKey, &stored)
	switch {
	case err == nil:
		t.data = stored
	case errors.Is(err, store.ErrNoKey):
		// First run, nothing persisted yet.
	default:
		log.Warn("failed to load click data, starting empty", logger.Error(err))
	}

	return t
}

// SetTimeNow overrides the clock. Test hook.
func (t *Tracker) SetTimeNow(now func() time.Time) { t.now = now }

// TrackClick records one access event for siteID.
func (t *Tracker) TrackClick(siteID string) domain.ClickStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	updated := Track(t.data[siteID], t.now())
	t.data[siteID] = updated
	t.persist()
	return updated
}

// Get returns the stats for siteID, if any were recorded.
func (t *Tracker) Get(siteID string) (domain.ClickStats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats, ok := t.data[siteID]
	return stats, ok
}

// All returns a snapshot copy of the click table.
func (t *Tracker) All() map[string]domain.ClickStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot := make(map[string]domain.ClickStats, len(t.data))
	for id, stats := range t.data {
		snapshot[id] = stats
	}
	return snapshot
}

// Remove deletes the click entry for siteID entirely. No tombstone is
// kept; removing an unknown id is a no-op.
func (t *Tracker) Remove(siteID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.data[siteID]; !ok {
		return
	}
	delete(t.data, siteID)
	t.persist()
}

// Merge adopts imported stats for site ids with no local entry.
// Existing entries win; live counters are never overwritten.
func (t *Tracker) Merge(data map[string]domain.ClickStats) {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed := false
	for id, stats := range data {
		if _, ok := t.data[id]; ok {
			continue
		}
		t.data[id] = stats
		changed = true
	}
	if changed {
		t.persist()
	}
}

// ReplaceAll swaps in a whole click table, e.g. from an import.
func (t *Tracker) ReplaceAll(data map[string]domain.ClickStats) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data = make(map[string]domain.ClickStats, len(data))
	for id, stats := range data {
		t.data[id] = stats
	}
	t.persist()
}

// persist writes the whole table back. Best effort: storage failure
// degrades to in-memory-only counters rather than failing the click.
func (t *Tracker) persist() {
	if err := store.WriteJSON(t.kv, StorageKey, t.data); err != nil {
		t.logger.Warn("failed to persist click data", logger.Error(err))
	}
}
