package dataio

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
)

var exportTime = time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)

func TestExportJSON(t *testing.T) {
	sites := []domain.Site{
		{ID: "1", Name: "GitHub", URL: "https://github.com", Category: "Development"},
	}
	icons := map[string]string{"Development": "🛠"}
	clicks := map[string]domain.ClickStats{"1": {Daily: 3}}

	data, err := ExportJSON(sites, icons, clicks, exportTime)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	var doc ExportData
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.Version != FormatVersion {
		t.Errorf("Version = %q, want %q", doc.Version, FormatVersion)
	}
	if doc.ExportDate != "2026-03-11T12:00:00Z" {
		t.Errorf("ExportDate = %q, want RFC3339 UTC", doc.ExportDate)
	}
	if len(doc.Sites) != 1 || doc.Sites[0].ID != "1" {
		t.Errorf("Sites = %+v, want the input corpus", doc.Sites)
	}
	if doc.CategoryIcons["Development"] != "🛠" {
		t.Errorf("CategoryIcons = %v, want the icon map", doc.CategoryIcons)
	}
	if doc.ClickData["1"].Daily != 3 {
		t.Errorf("ClickData = %v, want the click table", doc.ClickData)
	}
}

func TestExportJSONNilMaps(t *testing.T) {
	data, err := ExportJSON(nil, nil, nil, exportTime)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	// Empty maps serialize as {}, never null.
	if strings.Contains(string(data), "null") {
		t.Errorf("export contains null: %s", data)
	}
}

func TestExportCSV(t *testing.T) {
	sites := []domain.Site{
		{
			Name:        "My, Site",
			URL:         "https://example.com",
			Category:    "News",
			Tags:        []string{"a", "b"},
			Description: "has \"quotes\" and, commas",
		},
	}

	data, err := ExportCSV(sites)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(records))
	}

	header := records[0]
	wantHeader := []string{"Name", "URL", "Category", "Tags", "Description"}
	for i, col := range wantHeader {
		if header[i] != col {
			t.Errorf("header[%d] = %q, want %q", i, header[i], col)
		}
	}

	row := records[1]
	if row[0] != "My, Site" {
		t.Errorf("Name = %q, comma not preserved through quoting", row[0])
	}
	if row[3] != "a;b" {
		t.Errorf("Tags = %q, want semicolon-joined", row[3])
	}
	if row[4] != "has \"quotes\" and, commas" {
		t.Errorf("Description = %q, quoting mangled", row[4])
	}
}
