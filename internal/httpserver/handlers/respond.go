package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linkdeck/linkdeck/internal/dedup"
	"github.com/linkdeck/linkdeck/internal/sites"
)

type errorResponse struct {
	Error     string        `json:"error"`
	Duplicate *dedup.Result `json:"duplicate,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps corpus service errors onto HTTP statuses:
// validation failures are the caller's to fix, unknown ids are 404,
// anything else is a storage-side 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *sites.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     vErr.Message,
			Duplicate: vErr.Duplicate,
		})
	case errors.Is(err, sites.ErrNotFound):
		writeError(w, http.StatusNotFound, "site not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
