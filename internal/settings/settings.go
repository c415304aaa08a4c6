package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/archivetag/internal/store"
)

const (
	// KeyServerURL holds the ArchiveBox base address
	KeyServerURL = "archivebox_server_url"
	// KeyAPIKey holds the ArchiveBox API key
	KeyAPIKey = "archivebox_api_key"
)

// Remote is the ArchiveBox endpoint configuration.
// Both fields are optional; an incomplete Remote means "not configured".
type Remote struct {
	ServerURL string
	APIKey    string
}

// Configured reports whether both address and credential are present.
func (r Remote) Configured() bool {
	return r.ServerURL != "" && r.APIKey != ""
}

// Store reads and writes the remote configuration next to the entries.
// Values saved in the backend win over the defaults supplied at startup.
type Store struct {
	backend  store.Backend
	defaults Remote
}

// NewStore creates a settings store with env-provided defaults
func NewStore(backend store.Backend, defaults Remote) *Store {
	return &Store{
		backend:  backend,
		defaults: defaults,
	}
}

// Remote returns the effective remote configuration.
func (s *Store) Remote(ctx context.Context) (Remote, error) {
	r := s.defaults

	serverURL, err := s.get(ctx, KeyServerURL)
	if err != nil {
		return r, err
	}
	if serverURL != "" {
		r.ServerURL = serverURL
	}

	apiKey, err := s.get(ctx, KeyAPIKey)
	if err != nil {
		return r, err
	}
	if apiKey != "" {
		r.APIKey = apiKey
	}

	r.ServerURL = strings.TrimRight(strings.TrimSpace(r.ServerURL), "/")
	r.APIKey = strings.TrimSpace(r.APIKey)
	return r, nil
}

// SetRemote persists the remote configuration. Empty fields are stored empty and fall back to defaults.
func (s *Store) SetRemote(ctx context.Context, r Remote) error {
	if err := s.backend.Set(ctx, KeyServerURL, []byte(strings.TrimSpace(r.ServerURL))); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyServerURL, err)
	}
	if err := s.backend.Set(ctx, KeyAPIKey, []byte(strings.TrimSpace(r.APIKey))); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyAPIKey, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return "", nil
	}
	return string(v), nil
}
