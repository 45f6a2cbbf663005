// Package favicon caches resolved icon URLs per domain so the UI never
// re-probes an endpoint it already knows about. Failures are cached too
// (a negative cache), letting callers fall back to a generated badge
// without retrying a dead URL on every render.
package favicon

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/store"
)

const (
	// StorageKey is the KV key holding the serialized cache table.
	StorageKey = "favicon-cache"

	// DefaultMaxSize bounds the number of cached domains.
	DefaultMaxSize = 200

	// DefaultExpiry drops entries older than a week at load time.
	DefaultExpiry = 7 * 24 * time.Hour
)

// Entry is one cached probe outcome for a domain.
type Entry struct {
	URL         string `json:"url"`
	Timestamp   int64  `json:"timestamp"` // last access, epoch millis
	AccessCount int    `json:"accessCount"`
	IsSuccess   bool   `json:"isSuccess"`
}

// Stats reports cache occupancy for a diagnostics view.
type Stats struct {
	Size    int     `json:"size"`
	MaxSize int     `json:"maxSize"`
	HitRate float64 `json:"hitRate"`
}

// Cache is a capacity-bounded domain -> icon URL table with a blended
// LRU/LFU eviction score, mirrored to the persistent store after every
// mutation. Storage failures are swallowed: the cache degrades to
// always-miss rather than failing the caller.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Entry
	maxSize int
	expiry  time.Duration
	kv      store.KV
	logger  logger.Logger
	now     func() time.Time
}

// New creates a cache over kv, loading the persisted table and
// dropping entries past the expiry horizon.
func New(kv store.KV, maxSize int, expiry time.Duration, log logger.Logger) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if expiry <= 0 {
		expiry = DefaultExpiry
	}

	c := &Cache{
		entries: make(map[string]Entry),
		maxSize: maxSize,
		expiry:  expiry,
		kv:      kv,
		logger:  log,
		now:     time.Now,
	}
	c.load()
	return c
}

// SetTimeNow overrides the clock. Test hook.
func (c *Cache) SetTimeNow(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the cached icon URL for a domain if a successful probe
// was recorded. A hit bumps the access count and refreshes the
// timestamp.
func (c *Cache) Get(domain string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[domain]
	if !ok || !entry.IsSuccess {
		return "", false
	}

	entry.Timestamp = c.now().UnixMilli()
	entry.AccessCount++
	c.entries[domain] = entry
	c.persist()

	return entry.URL, true
}

// Has reports whether any entry (success or failure) exists for domain.
func (c *Cache) Has(domain string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[domain]
	return ok
}

// IsFailed reports whether the stored entry marks a failed probe.
func (c *Cache) IsFailed(domain string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[domain]
	return ok && !entry.IsSuccess
}

// Set inserts or overwrites the entry for domain. Inserting a new
// domain at capacity evicts the lowest-scored entry first.
func (c *Cache) Set(domain, url string, isSuccess bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[domain]; !exists && len(c.entries) >= c.maxSize {
		c.evict()
	}

	c.entries[domain] = Entry{
		URL:         url,
		Timestamp:   c.now().UnixMilli(),
		AccessCount: 1,
		IsSuccess:   isSuccess,
	}
	c.persist()
}

// SetFailed records a failed probe for domain.
func (c *Cache) SetFailed(domain string) {
	c.Set(domain, "", false)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)
	c.persist()
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// GetStats summarizes cache occupancy.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	totalAccess := 0
	for _, entry := range c.entries {
		totalAccess += entry.AccessCount
	}

	stats := Stats{Size: len(c.entries), MaxSize: c.maxSize}
	if totalAccess > 0 {
		stats.HitRate = float64(len(c.entries)) / float64(totalAccess)
	}
	return stats
}

// Prune drops entries past the expiry horizon and returns how many
// were removed.
func (c *Cache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	horizon := c.now().Add(-c.expiry).UnixMilli()
	removed := 0
	for domain, entry := range c.entries {
		if entry.Timestamp < horizon {
			delete(c.entries, domain)
			removed++
		}
	}
	if removed > 0 {
		c.persist()
	}
	return removed
}

// evict removes the single entry with the lowest joint frequency and
// recency score: accessCount * ln(age+1). One very-recent single-access
// entry and one frequent-but-stale entry end up on the same scale.
// Ties break on first encounter. Caller holds the lock.
func (c *Cache) evict() {
	nowMillis := c.now().UnixMilli()

	evictKey := ""
	evictScore := math.Inf(1)
	for domain, entry := range c.entries {
		score := float64(entry.AccessCount) * math.Log(float64(nowMillis-entry.Timestamp)+1)
		if score < evictScore {
			evictScore = score
			evictKey = domain
		}
	}

	if evictKey != "" {
		delete(c.entries, evictKey)
	}
}

// load restores the persisted table, discarding expired entries.
// Storage errors leave the cache empty.
func (c *Cache) load() {
	var stored map[string]Entry
	err := store.ReadJSON(c.kv, StorageKey, &stored)
	switch {
	case errors.Is(err, store.ErrNoKey):
		return
	case err != nil:
		c.logger.Warn("failed to load favicon cache, starting empty", logger.Error(err))
		return
	}

	horizon := c.now().Add(-c.expiry).UnixMilli()
	for domain, entry := range stored {
		if entry.Timestamp >= horizon {
			c.entries[domain] = entry
		}
	}
}

// persist serializes the whole table back to the store. Best effort:
// the cache is a pure optimization. Caller holds the lock.
func (c *Cache) persist() {
	if err := store.WriteJSON(c.kv, StorageKey, c.entries); err != nil {
		c.logger.Warn("failed to persist favicon cache", logger.Error(err))
	}
}

// IconURL builds the DuckDuckGo icon endpoint for a domain. Fetching
// it is the caller's concern, the cache only remembers outcomes.
func IconURL(domain string) string {
	return fmt.Sprintf("https://icons.duckduckgo.com/ip3/%s.ico", domain)
}
