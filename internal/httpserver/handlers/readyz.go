package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
	"github.com/MrSnakeDoc/archivetag/internal/logger"
)

const pingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Store string `json:"store"`
}

// Readyz reports ready only when the backend answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		status := http.StatusOK
		ready := true
		if err := d.Backend.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed",
				logger.String("store", d.Backend.Name()),
				logger.Error(err))
			status = http.StatusServiceUnavailable
			ready = false
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready: ready,
			Store: d.Backend.Name(),
		})
	}
}
