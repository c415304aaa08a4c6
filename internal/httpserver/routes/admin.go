package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
	"github.com/MrSnakeDoc/archivetag/internal/httpserver/handlers"
)

func init() { Register("admin", registerAdmin, CIDR, Host) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Get("/api/settings", handlers.GetSettings(d))
	r.Put("/api/settings", handlers.PutSettings(d))
	r.Post("/api/reload", handlers.Reload(d))
}
