package index

import (
	"sort"
	"sync"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
)

// MemoryIndex provides in-memory storage and lookup for the site corpus
// and the category icon map. The persistent store remains the durable
// truth; the index is the hot copy every engine reads snapshots from.
type MemoryIndex struct {
	mu         sync.RWMutex
	sites      map[string]*domain.Site // ID -> Site
	icons      map[string]string       // category -> icon glyph
	lastLoaded time.Time               // Timestamp of last load from the store
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		sites: make(map[string]*domain.Site),
		icons: make(map[string]string),
	}
}

// ReplaceSites swaps in a whole corpus.
func (idx *MemoryIndex) ReplaceSites(sites []domain.Site) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.sites = make(map[string]*domain.Site, len(sites))
	for i := range sites {
		site := sites[i]
		idx.sites[site.ID] = &site
	}
	idx.lastLoaded = time.Now()
}

// GetSite retrieves a site by ID.
func (idx *MemoryIndex) GetSite(id string) (domain.Site, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	site, ok := idx.sites[id]
	if !ok {
		return domain.Site{}, false
	}
	return *site, true
}

// AllSites returns a snapshot of the corpus, sorted by name for a
// stable listing order.
func (idx *MemoryIndex) AllSites() []domain.Site {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	sites := make([]domain.Site, 0, len(idx.sites))
	for _, site := range idx.sites {
		sites = append(sites, *site)
	}
	sort.Slice(sites, func(i, j int) bool {
		if sites[i].Name != sites[j].Name {
			return sites[i].Name < sites[j].Name
		}
		return sites[i].ID < sites[j].ID
	})
	return sites
}

// PutSite adds or updates a single site.
func (idx *MemoryIndex) PutSite(site domain.Site) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.sites[site.ID] = &site
}

// DeleteSite removes a site from the index.
func (idx *MemoryIndex) DeleteSite(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.sites, id)
}

// Count returns the number of sites in the index.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.sites)
}

// LastLoaded returns the timestamp of the last corpus load.
func (idx *MemoryIndex) LastLoaded() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastLoaded
}

// ─────────────────────────────────────────────────────────────────
// Category icon methods
// ─────────────────────────────────────────────────────────────────

// ReplaceIcons swaps in the whole category icon map.
func (idx *MemoryIndex) ReplaceIcons(icons map[string]string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.icons = make(map[string]string, len(icons))
	for category, glyph := range icons {
		idx.icons[category] = glyph
	}
}

// SetIcon assigns an icon glyph to a category.
func (idx *MemoryIndex) SetIcon(category, glyph string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.icons[category] = glyph
}

// Icons returns a copy of the category icon map.
func (idx *MemoryIndex) Icons() map[string]string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	icons := make(map[string]string, len(idx.icons))
	for category, glyph := range idx.icons {
		icons[category] = glyph
	}
	return icons
}
