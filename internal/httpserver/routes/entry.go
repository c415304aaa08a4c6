package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
	"github.com/MrSnakeDoc/archivetag/internal/httpserver/handlers"
)

func init() {
	Register("entry", registerEntry, Host)
	Register("mutations", registerMutations, Host, MutationBudget)
}

func registerEntry(r chi.Router, d deps.Deps) {
	r.Get("/api/entry", handlers.Entry(d))
	r.Get("/api/suggestions", handlers.Suggestions(d))
	r.Get("/api/autocomplete", handlers.Autocomplete(d))
	r.Get("/api/tags", handlers.Tags(d))
	r.Get("/api/tags/stats", handlers.TagStats(d))
}

func registerMutations(r chi.Router, d deps.Deps) {
	r.Post("/api/entry/tags", handlers.AddTags(d))
	r.Delete("/api/entry/tags", handlers.RemoveTag(d))
}
