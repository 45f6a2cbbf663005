package sites

import (
	"errors"
	"testing"
	"time"

	"github.com/linkdeck/linkdeck/internal/clicks"
	"github.com/linkdeck/linkdeck/internal/dedup"
	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/store"
)

var testTime = time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, kv store.KV) (*Service, *clicks.Tracker) {
	t.Helper()
	log := logger.Nop()
	tracker := clicks.NewTracker(kv, log)
	tracker.SetTimeNow(func() time.Time { return testTime })

	svc := NewService(kv, tracker, dedup.DefaultConfig(), 3, log)
	svc.SetTimeNow(func() time.Time { return testTime })
	if err := svc.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return svc, tracker
}

func TestAdd(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory())

	site, err := svc.Add(Input{URL: "github.com", Name: "GitHub"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if site.ID == "" {
		t.Error("Add() did not assign an id")
	}
	if site.URL != "https://github.com" {
		t.Errorf("URL = %q, want scheme added", site.URL)
	}
	if site.Category != domain.DefaultCategory {
		t.Errorf("Category = %q, want default", site.Category)
	}
	if !site.CreatedAt.Equal(testTime) || !site.UpdatedAt.Equal(testTime) {
		t.Errorf("timestamps = %v/%v, want the injected clock", site.CreatedAt, site.UpdatedAt)
	}
	if svc.Count() != 1 {
		t.Errorf("Count() = %d, want 1", svc.Count())
	}
}

func TestAddValidation(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory())

	tests := []struct {
		name  string
		input Input
	}{
		{"empty name", Input{URL: "https://example.com", Name: "  "}},
		{"empty url", Input{URL: "", Name: "Example"}},
		{"invalid url", Input{URL: "not a url", Name: "Example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(tt.input)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("Add() error = %v, want a ValidationError", err)
			}
		})
	}

	if svc.Count() != 0 {
		t.Errorf("Count() = %d after rejected adds, want 0", svc.Count())
	}
}

func TestAddRejectsExactDuplicate(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory())

	if _, err := svc.Add(Input{URL: "https://github.com", Name: "GitHub"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Cosmetic URL variants hit the same normalized address.
	_, err := svc.Add(Input{URL: "https://www.github.com/", Name: "GitHub again"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Add(duplicate) error = %v, want a ValidationError", err)
	}
	if vErr.Duplicate == nil || vErr.Duplicate.Type != dedup.TypeExact {
		t.Errorf("Duplicate = %+v, want an exact match result", vErr.Duplicate)
	}
	if svc.Count() != 1 {
		t.Errorf("Count() = %d, want 1", svc.Count())
	}
}

func TestAddAllowsSofterDuplicates(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory())

	if _, err := svc.Add(Input{URL: "https://github.com/golang/go", Name: "Go"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Same domain, different URL: advisory only, never blocks.
	if _, err := svc.Add(Input{URL: "https://github.com/torvalds/linux", Name: "Linux"}); err != nil {
		t.Errorf("Add(same domain) error = %v, want success", err)
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory())

	site, err := svc.Add(Input{URL: "https://example.com", Name: "Before"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	updated, err := svc.Update(site.ID, Input{URL: "https://example.com", Name: "After", Category: "News"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "After" || updated.Category != "News" {
		t.Errorf("Update() = %+v, want the new fields", updated)
	}
	if updated.ID != site.ID {
		t.Errorf("id changed across update: %q -> %q", site.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(site.CreatedAt) {
		t.Error("CreatedAt changed across update")
	}
}

func TestUpdateKeepingOwnURL(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory())

	site, err := svc.Add(Input{URL: "https://example.com", Name: "Site"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Re-submitting the record's own URL is not a duplicate of itself.
	if _, err := svc.Update(site.ID, Input{URL: "https://example.com", Name: "Renamed"}); err != nil {
		t.Errorf("Update() with own URL error = %v", err)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory())

	_, err := svc.Update("ghost", Input{URL: "https://example.com", Name: "Ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesClicks(t *testing.T) {
	svc, tracker := newTestService(t, store.NewMemory())

	site, err := svc.Add(Input{URL: "https://example.com", Name: "Site"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	tracker.TrackClick(site.ID)

	if err := svc.Delete(site.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if svc.Count() != 0 {
		t.Errorf("Count() = %d after delete, want 0", svc.Count())
	}
	if _, ok := tracker.Get(site.ID); ok {
		t.Error("click entry survived the site deletion")
	}

	// Deleting again is a silent no-op.
	if err := svc.Delete(site.ID); err != nil {
		t.Errorf("Delete(gone) error = %v", err)
	}
}

func TestMergeSites(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory())

	if _, err := svc.Add(Input{URL: "https://github.com", Name: "GitHub"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	added, err := svc.MergeSites([]domain.Site{
		{ID: "x", URL: "HTTPS://GITHUB.COM", Name: "GitHub copy"},
		{ID: "y", URL: "https://fresh.example", Name: "Fresh"},
		{URL: "https://no-id.example", Name: "No id"},
	})
	if err != nil {
		t.Fatalf("MergeSites() error = %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2 (collision skipped)", added)
	}
	if svc.Count() != 3 {
		t.Errorf("Count() = %d, want 3", svc.Count())
	}

	for _, site := range svc.List() {
		if site.ID == "" {
			t.Errorf("merged site %q has no id", site.Name)
		}
	}
}

func TestSearchHistory(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory())

	svc.RecordSearch("  ") // whitespace is dropped
	svc.RecordSearch("one")
	svc.RecordSearch("two")
	svc.RecordSearch("one") // already present, stays in place
	svc.RecordSearch("three")
	svc.RecordSearch("four") // limit 3 pushes "one" out

	history := svc.SearchHistory()
	want := []string{"four", "three", "two"}
	if len(history) != len(want) {
		t.Fatalf("SearchHistory() = %v, want %v", history, want)
	}
	for i := range want {
		if history[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, history[i], want[i])
		}
	}
}

func TestPersistenceAcrossLoads(t *testing.T) {
	kv := store.NewMemory()
	svc, _ := newTestService(t, kv)

	site, err := svc.Add(Input{URL: "https://example.com", Name: "Site"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := svc.SetCategoryIcon("News", "📰"); err != nil {
		t.Fatalf("SetCategoryIcon() error = %v", err)
	}
	svc.RecordSearch("query")

	// A second service over the same store sees everything.
	reloaded, _ := newTestService(t, kv)
	if _, ok := reloaded.Get(site.ID); !ok {
		t.Error("site missing after reload")
	}
	if reloaded.CategoryIcons()["News"] != "📰" {
		t.Error("category icon missing after reload")
	}
	history := reloaded.SearchHistory()
	if len(history) != 1 || history[0] != "query" {
		t.Errorf("SearchHistory() after reload = %v, want [query]", history)
	}
}

func TestMergeCategoryIcons(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory())

	if err := svc.SetCategoryIcon("News", "📰"); err != nil {
		t.Fatalf("SetCategoryIcon() error = %v", err)
	}
	if err := svc.MergeCategoryIcons(map[string]string{
		"News":   "X", // existing assignment wins
		"Gaming": "🎮",
	}); err != nil {
		t.Fatalf("MergeCategoryIcons() error = %v", err)
	}

	icons := svc.CategoryIcons()
	if icons["News"] != "📰" {
		t.Errorf("News icon = %q, want the existing assignment", icons["News"])
	}
	if icons["Gaming"] != "🎮" {
		t.Errorf("Gaming icon = %q, want the merged assignment", icons["Gaming"])
	}
}

func TestCheckDuplicate(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory())

	if _, err := svc.Add(Input{URL: "https://github.com", Name: "GitHub"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	result := svc.CheckDuplicate(dedup.Candidate{URL: "github.com"})
	if !result.IsDuplicate || result.Type != dedup.TypeExact {
		t.Errorf("CheckDuplicate() = %+v, want an exact duplicate", result)
	}

	result = svc.CheckDuplicate(dedup.Candidate{URL: "https://wikipedia.org", Name: "Wikipedia"})
	if result.IsDuplicate {
		t.Errorf("CheckDuplicate() flagged an unrelated candidate: %+v", result)
	}
}
