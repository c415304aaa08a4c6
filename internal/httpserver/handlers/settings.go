package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/settings"
)

// settingsResponse never carries the API key itself
type settingsResponse struct {
	ServerURL  string `json:"archivebox_server_url"`
	HasAPIKey  bool   `json:"archivebox_api_key_set"`
	Configured bool   `json:"configured"`
}

type settingsRequest struct {
	ServerURL string `json:"archivebox_server_url"`
	APIKey    string `json:"archivebox_api_key"`
}

func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remote, err := d.Settings.Remote(r.Context())
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettingsResponse(remote))
	}
}

func PutSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req settingsRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			badRequest(w, "invalid json body")
			return
		}

		if err := d.Settings.SetRemote(r.Context(), settings.Remote{ServerURL: req.ServerURL, APIKey: req.APIKey}); err != nil {
			writeError(w, r, d, err)
			return
		}

		remote, err := d.Settings.Remote(r.Context())
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		d.Logger.Info("archivebox settings updated",
			logger.String("server_url", remote.ServerURL),
			logger.Bool("configured", remote.Configured()))
		writeJSON(w, http.StatusOK, toSettingsResponse(remote))
	}
}

func toSettingsResponse(r settings.Remote) settingsResponse {
	return settingsResponse{
		ServerURL:  r.ServerURL,
		HasAPIKey:  r.APIKey != "",
		Configured: r.Configured(),
	}
}
