// Package dataio implements the file formats linkdeck speaks: the
// versioned JSON export document, the flat CSV listing and the two
// import paths (JSON export documents and browser bookmark HTML).
package dataio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
)

// FormatVersion is the current export document version.
const FormatVersion = "1.0"

// ExportData is the JSON export document.
type ExportData struct {
	Sites         []domain.Site                `json:"sites"`
	CategoryIcons map[string]string            `json:"categoryIcons"`
	ClickData     map[string]domain.ClickStats `json:"clickData"`
	ExportDate    string                       `json:"exportDate"`
	Version       string                       `json:"version"`
}

// ExportJSON serializes the full dataset as an indented JSON document.
func ExportJSON(sites []domain.Site, icons map[string]string, clickData map[string]domain.ClickStats, now time.Time) ([]byte, error) {
	if sites == nil {
		sites = []domain.Site{}
	}
	if icons == nil {
		icons = map[string]string{}
	}
	if clickData == nil {
		clickData = map[string]domain.ClickStats{}
	}

	doc := ExportData{
		Sites:         sites,
		CategoryIcons: icons,
		ClickData:     clickData,
		ExportDate:    now.UTC().Format(time.RFC3339),
		Version:       FormatVersion,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// ExportCSV emits one row per site with standard CSV quoting.
// Columns: Name, URL, Category, Tags (semicolon-joined), Description.
func ExportCSV(sites []domain.Site) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Name", "URL", "Category", "Tags", "Description"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range sites {
		site := &sites[i]
		record := []string{
			site.Name,
			site.URL,
			site.Category,
			strings.Join(site.Tags, ";"),
			site.Description,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
