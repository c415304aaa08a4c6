package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/archivetag/internal/domain"
	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps persistence failures to 503 and everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, store.ErrPersist) {
		status = http.StatusServiceUnavailable
	}
	d.Logger.Error("request failed",
		logger.String("path", r.URL.Path),
		logger.Int("status", status),
		logger.Error(err))
	writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// pageFromQuery reads ?url=&title=
func pageFromQuery(r *http.Request) (domain.Page, bool) {
	q := r.URL.Query()
	page := domain.Page{
		URL:   strings.TrimSpace(q.Get("url")),
		Title: q.Get("title"),
	}
	return page, page.URL != ""
}
