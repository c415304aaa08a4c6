package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
	"github.com/MrSnakeDoc/archivetag/internal/httpserver/handlers"
)

func init() {
	Register("health", registerHealth)
	Register("internal", registerInternal, CIDR)
}

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
}

func registerInternal(r chi.Router, d deps.Deps) {
	r.Get("/readyz", handlers.Readyz(d))
	r.With(Host(d)).Get("/infra", handlers.Infra(d))
}
