package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Name    string `json:"name,omitempty"`
	Entries *int   `json:"entries,omitempty"`
	Tags    *int   `json:"tags,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of every component the tagging flow depends on.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		components := map[string]componentStatus{
			"store":      checkStore(ctx, d),
			"archivebox": checkArchiveBox(ctx, d),
			"seed":       checkSeed(d),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	// Without the store nothing can be read or written
	if st, ok := components["store"]; ok && !st.OK {
		return "critical"
	}

	// Tagging works, mirroring to the archive does not
	if ab, ok := components["archivebox"]; ok && !ab.OK {
		return "degraded"
	}

	return "operational"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if err := d.Backend.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Name:   d.Backend.Name(),
			Impact: "tagging-unavailable",
			Error:  err.Error(),
		}
	}

	status := componentStatus{OK: true, Name: d.Backend.Name()}
	if tags, err := d.Tagging.AllTags(ctx); err == nil {
		n := len(tags)
		status.Tags = &n
	}
	if count, err := d.Tagging.EntryCount(ctx); err == nil {
		status.Entries = &count
	}
	return status
}

func checkArchiveBox(ctx context.Context, d deps.Deps) componentStatus {
	remote, err := d.Settings.Remote(ctx)
	if err != nil {
		return componentStatus{OK: false, Impact: "push-disabled", Error: err.Error()}
	}
	if !remote.Configured() {
		return componentStatus{OK: false, Mode: "not-configured", Impact: "push-disabled"}
	}
	return componentStatus{OK: true, Name: remote.ServerURL, Mode: "push-enabled"}
}

func checkSeed(d deps.Deps) componentStatus {
	if d.SeedFile == "" {
		return componentStatus{OK: true, Mode: "disabled"}
	}
	return componentStatus{OK: true, Name: d.SeedFile, Mode: "watching"}
}
