package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/archivetag/internal/domain"
	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
)

type entryResponse struct {
	Entry *domain.Entry `json:"entry"`
	Total int           `json:"total"`
}

type suggestionsResponse struct {
	URL  string   `json:"url"`
	Tags []string `json:"tags"`
}

// Entry resolves the entry for ?url=, creating it on first sight.
func Entry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, ok := pageFromQuery(r)
		if !ok {
			badRequest(w, "url is required")
			return
		}

		entry, coll, err := d.Tagging.ResolveCurrentEntry(r.Context(), page)
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		writeJSON(w, http.StatusOK, entryResponse{Entry: entry, Total: len(coll)})
	}
}

// Suggestions returns recently used tags the page does not carry yet.
func Suggestions(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, ok := pageFromQuery(r)
		if !ok {
			badRequest(w, "url is required")
			return
		}

		tags, err := d.Tagging.SuggestedTags(r.Context(), page)
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		writeJSON(w, http.StatusOK, suggestionsResponse{URL: page.URL, Tags: tags})
	}
}
