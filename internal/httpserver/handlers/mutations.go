package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/archivetag/internal/autocomplete"
	"github.com/MrSnakeDoc/archivetag/internal/domain"
	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
	"github.com/MrSnakeDoc/archivetag/internal/logger"
)

const maxBodyBytes = 64 << 10

// tagRequest carries either a single tag or comma-separated free text in Input.
type tagRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Tag   string `json:"tag"`
	Input string `json:"input"`
}

func decodeTagRequest(w http.ResponseWriter, r *http.Request) (tagRequest, bool) {
	var req tagRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return req, false
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		badRequest(w, "url is required")
		return req, false
	}
	return req, true
}

// AddTags handles {url,title,tag} and {url,title,input}.
// Free text is split on commas; blank input is accepted and changes nothing.
func AddTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeTagRequest(w, r)
		if !ok {
			return
		}
		page := domain.Page{URL: req.URL, Title: req.Title}

		tags := []string{req.Tag}
		if req.Input != "" {
			tags = append(tags, autocomplete.ParseFreeText(req.Input, nil)...)
		}

		res, err := d.Tagging.AddTags(r.Context(), page, tags)
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		d.Logger.Info("tags added",
			logger.String("url", page.URL),
			logger.Strings("tags", res.Entry.Tags),
			logger.Bool("pushed", res.Pushed))
		writeJSON(w, http.StatusOK, res)
	}
}

// RemoveTag handles {url,title,tag}
func RemoveTag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeTagRequest(w, r)
		if !ok {
			return
		}
		page := domain.Page{URL: req.URL, Title: req.Title}

		res, err := d.Tagging.RemoveTag(r.Context(), page, req.Tag)
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		d.Logger.Info("tag removed",
			logger.String("url", page.URL),
			logger.String("tag", req.Tag),
			logger.Bool("pushed", res.Pushed))
		writeJSON(w, http.StatusOK, res)
	}
}
