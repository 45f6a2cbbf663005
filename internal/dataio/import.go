package dataio

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/linkdeck/linkdeck/internal/domain"
)

// ImportJSON parses an export document. The parse stage is
// all-or-nothing: unparseable JSON or a missing sites array fails the
// whole import. Past that, individual malformed records are dropped
// silently rather than failing everything.
func ImportJSON(data []byte) (*ExportData, error) {
	var raw struct {
		Sites         json.RawMessage              `json:"sites"`
		CategoryIcons map[string]string            `json:"categoryIcons"`
		ClickData     map[string]domain.ClickStats `json:"clickData"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("import failed: invalid JSON: %w", err)
	}
	if len(raw.Sites) == 0 {
		return nil, fmt.Errorf("import failed: missing sites data")
	}

	var sites []domain.Site
	if err := json.Unmarshal(raw.Sites, &sites); err != nil {
		return nil, fmt.Errorf("import failed: sites must be an array: %w", err)
	}
	if sites == nil {
		return nil, fmt.Errorf("import failed: sites must be an array")
	}

	valid := make([]domain.Site, 0, len(sites))
	for _, site := range sites {
		if site.ID == "" || site.Name == "" || site.URL == "" || !domain.IsValidURL(site.URL) {
			continue
		}
		site.URL = domain.EnsureScheme(site.URL)
		if site.Category == "" {
			site.Category = domain.DefaultCategory
		}
		valid = append(valid, site)
	}

	doc := &ExportData{
		Sites:         valid,
		CategoryIcons: raw.CategoryIcons,
		ClickData:     raw.ClickData,
	}
	if doc.CategoryIcons == nil {
		doc.CategoryIcons = map[string]string{}
	}
	if doc.ClickData == nil {
		doc.ClickData = map[string]domain.ClickStats{}
	}
	return doc, nil
}

// ImportBookmarksHTML parses a browser bookmarks export. Every anchor
// becomes a candidate record; the folder heading preceding a bookmark
// list supplies that list's category.
func ImportBookmarksHTML(r io.Reader) ([]domain.Site, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("import failed: invalid bookmarks HTML: %w", err)
	}

	var sites []domain.Site
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		url, _ := link.Attr("href")
		name := strings.TrimSpace(link.Text())
		if url == "" || name == "" || !domain.IsValidURL(url) {
			return
		}

		category := domain.DefaultCategory
		if heading := link.Closest("dl").Prev(); heading.Is("h3") {
			if text := strings.TrimSpace(heading.Text()); text != "" {
				category = text
			}
		}

		sites = append(sites, domain.Site{
			ID:       uuid.NewString(),
			Name:     name,
			URL:      domain.EnsureScheme(url),
			Category: category,
		})
	})

	return sites, nil
}

// FindDuplicates returns the imported records whose URL already exists
// in the corpus, compared case-insensitively.
func FindDuplicates(imported, existing []domain.Site) []domain.Site {
	urls := make(map[string]bool, len(existing))
	for i := range existing {
		urls[strings.ToLower(existing[i].URL)] = true
	}

	var dupes []domain.Site
	for _, site := range imported {
		if urls[strings.ToLower(site.URL)] {
			dupes = append(dupes, site)
		}
	}
	return dupes
}
