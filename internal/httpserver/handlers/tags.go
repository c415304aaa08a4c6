package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
	"github.com/MrSnakeDoc/archivetag/internal/index"
)

type tagsResponse struct {
	Tags []string `json:"tags"`
}

type statsResponse struct {
	Tags []index.TagStat `json:"tags"`
}

// Autocomplete filters the tag universe by ?q=
func Autocomplete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := d.Tagging.MatchAutocomplete(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, tagsResponse{Tags: tags})
	}
}

func Tags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := d.Tagging.AllTags(r.Context())
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, tagsResponse{Tags: tags})
	}
}

func TagStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := d.Tagging.TagStats(r.Context())
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, statsResponse{Tags: stats})
	}
}
