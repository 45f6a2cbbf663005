package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/linkdeck/linkdeck/internal/dataio"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/logger"
)

// 10 MiB is plenty for a bookmark file; anything larger is a mistake.
const maxImportBytes = 10 << 20

// Export serializes the dataset. format=json (default) emits the
// versioned document with icons and click data; format=csv emits the
// flat site listing.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := strings.ToLower(r.URL.Query().Get("format"))
		if format == "" {
			format = "json"
		}

		switch format {
		case "json":
			data, err := dataio.ExportJSON(d.Sites.List(), d.Sites.CategoryIcons(), d.Clicks.All(), d.Now())
			if err != nil {
				d.Logger.Error("export failed", logger.Error(err))
				writeError(w, http.StatusInternalServerError, "export failed")
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Content-Disposition", exportFilename(d.Now(), "json"))
			_, _ = w.Write(data)

		case "csv":
			data, err := dataio.ExportCSV(d.Sites.List())
			if err != nil {
				d.Logger.Error("export failed", logger.Error(err))
				writeError(w, http.StatusInternalServerError, "export failed")
				return
			}
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", exportFilename(d.Now(), "csv"))
			_, _ = w.Write(data)

		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format: %q", format))
		}
	}
}

type importResponse struct {
	Imported int `json:"imported"`
	Added    int `json:"added"`
}

// Import merges a dataset into the corpus. format=json expects an
// export document; format=html expects a browser bookmark file.
// Records colliding with an existing URL are skipped, existing
// category icons and click entries win over imported ones.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := strings.ToLower(r.URL.Query().Get("format"))
		if format == "" {
			format = "json"
		}

		body := http.MaxBytesReader(w, r.Body, maxImportBytes)

		switch format {
		case "json":
			data, err := io.ReadAll(body)
			if err != nil {
				writeError(w, http.StatusBadRequest, "failed to read request body")
				return
			}

			doc, err := dataio.ImportJSON(data)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}

			added, err := d.Sites.MergeSites(doc.Sites)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			if len(doc.CategoryIcons) > 0 {
				if err := d.Sites.MergeCategoryIcons(doc.CategoryIcons); err != nil {
					writeServiceError(w, err)
					return
				}
			}
			if len(doc.ClickData) > 0 {
				d.Clicks.Merge(doc.ClickData)
			}

			writeJSON(w, http.StatusOK, importResponse{Imported: len(doc.Sites), Added: added})

		case "html":
			imported, err := dataio.ImportBookmarksHTML(body)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}

			added, err := d.Sites.MergeSites(imported)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, importResponse{Imported: len(imported), Added: added})

		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported import format: %q", format))
		}
	}
}

func exportFilename(now time.Time, ext string) string {
	return fmt.Sprintf("attachment; filename=linkdeck-export-%s.%s", now.UTC().Format("2006-01-02"), ext)
}
