package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/scheduler"
)

// Reload triggers a manual seed import
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			w.WriteHeader(http.StatusNotFound)
			if _, err := w.Write([]byte("❌ Seed import is not configured\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
			return
		}

		if scheduler.Trigger(d.ReloadTrigger) {
			d.Logger.Info("manual seed import triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("✅ Seed import triggered successfully\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
			return
		}

		d.Logger.Warn("seed import already pending",
			logger.String("remote_ip", r.RemoteAddr))
		w.WriteHeader(http.StatusTooManyRequests)
		if _, err := w.Write([]byte("⏳ Seed import already in progress, please wait\n")); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}
