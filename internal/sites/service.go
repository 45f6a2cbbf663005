// Package sites owns the bookmark corpus: validated creation, edits,
// deletion, the category icon map and the recent-search history. The
// engines stay pure; this service is where their verdicts become
// accepted or rejected writes.
package sites

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/linkdeck/linkdeck/internal/clicks"
	"github.com/linkdeck/linkdeck/internal/dedup"
	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/index"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/store"
)

const (
	// KeySites is the KV key holding the site corpus.
	KeySites = "sites"
	// KeyCategoryIcons is the KV key holding the category icon map.
	KeyCategoryIcons = "category-icons"
	// KeySearchHistory is the KV key holding recent search terms.
	KeySearchHistory = "search-history"
)

// ErrNotFound reports an operation against an id that does not exist.
var ErrNotFound = errors.New("sites: site not found")

// ValidationError is a user-correctable rejection. The HTTP layer maps
// it to a 400 with the message; no partial state is committed.
type ValidationError struct {
	Message   string
	Duplicate *dedup.Result // set when the rejection came from the detector
}

func (e *ValidationError) Error() string { return e.Message }

// Input is the writable shape of a site record.
type Input struct {
	URL         string   `json:"url"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Service coordinates the in-memory index, the persistent store, the
// click tracker and the duplicate detector.
type Service struct {
	mu           sync.Mutex // serializes writes
	kv           store.KV
	idx          *index.MemoryIndex
	clicks       *clicks.Tracker
	dupCfg       dedup.Config
	historyMu    sync.Mutex
	history      []string
	historyLimit int
	logger       logger.Logger
	now          func() time.Time
	newID        func() string
}

// NewService wires a corpus service over kv. Call Load before use.
func NewService(kv store.KV, tracker *clicks.Tracker, dupCfg dedup.Config, historyLimit int, log logger.Logger) *Service {
	if historyLimit <= 0 {
		historyLimit = domain.DefaultSearchHistoryLimit
	}
	return &Service{
		kv:           kv,
		idx:          index.NewMemoryIndex(),
		clicks:       tracker,
		dupCfg:       dupCfg,
		historyLimit: historyLimit,
		logger:       log,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// SetTimeNow overrides the clock. Test hook.
func (s *Service) SetTimeNow(now func() time.Time) { s.now = now }

// Load restores the corpus, icon map and search history from the store.
func (s *Service) Load() error {
	var sites []domain.Site
	if err := store.ReadJSON(s.kv, KeySites, &sites); err != nil && !errors.Is(err, store.ErrNoKey) {
		return fmt.Errorf("failed to load sites: %w", err)
	}
	s.idx.ReplaceSites(sites)

	var icons map[string]string
	if err := store.ReadJSON(s.kv, KeyCategoryIcons, &icons); err != nil && !errors.Is(err, store.ErrNoKey) {
		return fmt.Errorf("failed to load category icons: %w", err)
	}
	if icons != nil {
		s.idx.ReplaceIcons(icons)
	}

	var history []string
	if err := store.ReadJSON(s.kv, KeySearchHistory, &history); err != nil && !errors.Is(err, store.ErrNoKey) {
		return fmt.Errorf("failed to load search history: %w", err)
	}
	s.history = history

	s.logger.Info("corpus loaded",
		logger.Int("sites", s.idx.Count()),
		logger.Int("search_history", len(s.history)))
	return nil
}

// List returns a snapshot of the corpus.
func (s *Service) List() []domain.Site {
	return s.idx.AllSites()
}

// Get retrieves one site by id.
func (s *Service) Get(id string) (domain.Site, bool) {
	return s.idx.GetSite(id)
}

// Count returns the corpus size.
func (s *Service) Count() int {
	return s.idx.Count()
}

// Add validates the input, rejects exact-URL duplicates and persists a
// new record with a fresh UUID.
func (s *Service) Add(input Input) (domain.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	site, err := s.buildSite(input, "")
	if err != nil {
		return domain.Site{}, err
	}

	now := s.now()
	site.ID = s.newID()
	site.CreatedAt = now
	site.UpdatedAt = now

	s.idx.PutSite(site)
	if err := s.persistSites(); err != nil {
		s.idx.DeleteSite(site.ID)
		return domain.Site{}, err
	}

	s.logger.Info("site added",
		logger.String("id", site.ID),
		logger.String("url", site.URL))
	return site, nil
}

// Update validates and persists edits to an existing record. The id is
// immutable; unknown ids return ErrNotFound.
func (s *Service) Update(id string, input Input) (domain.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.idx.GetSite(id)
	if !ok {
		return domain.Site{}, ErrNotFound
	}

	site, err := s.buildSite(input, id)
	if err != nil {
		return domain.Site{}, err
	}

	site.ID = existing.ID
	site.CreatedAt = existing.CreatedAt
	site.UpdatedAt = s.now()

	s.idx.PutSite(site)
	if err := s.persistSites(); err != nil {
		s.idx.PutSite(existing)
		return domain.Site{}, err
	}

	return site, nil
}

// Delete removes a record and its click history. Deleting an unknown
// id is a silent no-op.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.idx.GetSite(id); !ok {
		return nil
	}

	s.idx.DeleteSite(id)
	if err := s.persistSites(); err != nil {
		return err
	}
	s.clicks.Remove(id)

	s.logger.Info("site deleted", logger.String("id", id))
	return nil
}

// CheckDuplicate runs the detector for a candidate against the current
// corpus. Advisory: nothing is blocked here.
func (s *Service) CheckDuplicate(candidate dedup.Candidate) dedup.Result {
	return dedup.New(s.idx.AllSites(), s.dupCfg).Detect(candidate)
}

// MergeSites appends imported records that do not collide with an
// existing URL (case-insensitive exact match) and returns how many
// were added.
func (s *Service) MergeSites(imported []domain.Site) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool)
	for _, site := range s.idx.AllSites() {
		existing[strings.ToLower(site.URL)] = true
	}

	now := s.now()
	added := 0
	for _, site := range imported {
		key := strings.ToLower(site.URL)
		if existing[key] {
			continue
		}
		existing[key] = true

		if site.ID == "" {
			site.ID = s.newID()
		}
		if site.Category == "" {
			site.Category = domain.DefaultCategory
		}
		if site.CreatedAt.IsZero() {
			site.CreatedAt = now
		}
		site.UpdatedAt = now

		s.idx.PutSite(site)
		added++
	}

	if added > 0 {
		if err := s.persistSites(); err != nil {
			return added, err
		}
	}

	s.logger.Info("import merged",
		logger.Int("imported", len(imported)),
		logger.Int("added", added))
	return added, nil
}

// RecordSearch appends a settled non-empty query to the bounded
// recent-search history.
func (s *Service) RecordSearch(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	updated := domain.PushSearchHistory(s.history, term, s.historyLimit)
	if len(updated) == len(s.history) {
		return
	}
	s.history = updated

	if err := store.WriteJSON(s.kv, KeySearchHistory, s.history); err != nil {
		s.logger.Warn("failed to persist search history", logger.Error(err))
	}
}

// SearchHistory returns a copy of the recent search terms, most recent
// first.
func (s *Service) SearchHistory() []string {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	history := make([]string, len(s.history))
	copy(history, s.history)
	return history
}

// SetCategoryIcon assigns an icon glyph to a category.
func (s *Service) SetCategoryIcon(category, glyph string) error {
	s.idx.SetIcon(category, glyph)
	if err := store.WriteJSON(s.kv, KeyCategoryIcons, s.idx.Icons()); err != nil {
		return fmt.Errorf("failed to persist category icons: %w", err)
	}
	return nil
}

// CategoryIcons returns the category icon map.
func (s *Service) CategoryIcons() map[string]string {
	return s.idx.Icons()
}

// MergeCategoryIcons merges imported icon assignments, keeping existing
// ones on conflict.
func (s *Service) MergeCategoryIcons(icons map[string]string) error {
	current := s.idx.Icons()
	for category, glyph := range icons {
		if _, ok := current[category]; !ok {
			s.idx.SetIcon(category, glyph)
		}
	}
	if err := store.WriteJSON(s.kv, KeyCategoryIcons, s.idx.Icons()); err != nil {
		return fmt.Errorf("failed to persist category icons: %w", err)
	}
	return nil
}

// buildSite validates an input and returns the record shape to store.
// excludeID removes the record being edited from duplicate checks.
func (s *Service) buildSite(input Input, excludeID string) (domain.Site, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Site{}, &ValidationError{Message: "name must not be empty"}
	}
	if !domain.IsValidURL(input.URL) {
		return domain.Site{}, &ValidationError{Message: fmt.Sprintf("invalid URL: %q", input.URL)}
	}

	corpus := s.idx.AllSites()
	if excludeID != "" {
		filtered := corpus[:0]
		for _, site := range corpus {
			if site.ID != excludeID {
				filtered = append(filtered, site)
			}
		}
		corpus = filtered
	}

	// Only an exact normalized-URL collision blocks the write; softer
	// duplicate types stay advisory.
	result := dedup.New(corpus, s.dupCfg).Detect(dedup.Candidate{
		URL:         input.URL,
		Name:        name,
		Description: input.Description,
	})
	if result.IsDuplicate && result.Type == dedup.TypeExact {
		return domain.Site{}, &ValidationError{
			Message:   fmt.Sprintf("a site with this URL already exists: %q", result.Matched.Name),
			Duplicate: &result,
		}
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	return domain.Site{
		URL:         domain.EnsureScheme(input.URL),
		Name:        name,
		Category:    category,
		Tags:        input.Tags,
		Description: strings.TrimSpace(input.Description),
	}, nil
}

func (s *Service) persistSites() error {
	if err := store.WriteJSON(s.kv, KeySites, s.idx.AllSites()); err != nil {
		return fmt.Errorf("failed to persist sites: %w", err)
	}
	return nil
}
