package archivebox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/settings"
	"github.com/MrSnakeDoc/archivetag/internal/sink"
)

type staticSource struct {
	remote settings.Remote
	err    error
}

func (s staticSource) Remote(context.Context) (settings.Remote, error) {
	return s.remote, s.err
}

func TestPushNotConfigured(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	tests := []struct {
		name   string
		remote settings.Remote
	}{
		{name: "nothing", remote: settings.Remote{}},
		{name: "address only", remote: settings.Remote{ServerURL: srv.URL}},
		{name: "key only", remote: settings.Remote{APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(staticSource{remote: tt.remote}, 0, logger.NewNop())
			r := c.Push(context.Background(), "https://x.test", []string{"a"})
			assert.Equal(t, sink.Result{Accepted: false, Detail: "Server not configured"}, r)
		})
	}
	assert.Zero(t, calls.Load())
}

func TestPushRequestShape(t *testing.T) {
	var got map[string]any
	var path, method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(staticSource{remote: settings.Remote{ServerURL: srv.URL + "/", APIKey: "secret"}}, 0, logger.NewNop())
	r := c.Push(context.Background(), "https://x.test/a", []string{"news", "go"})

	assert.True(t, r.Accepted)
	assert.Equal(t, "200 OK", r.Detail)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/v1/cli/add", path)
	require.NotNil(t, got)
	assert.Equal(t, "secret", got["api_key"])
	assert.Equal(t, []any{"https://x.test/a"}, got["urls"])
	assert.Equal(t, "news,go", got["tag"])
	assert.EqualValues(t, 0, got["depth"])
	assert.Equal(t, false, got["update"])
	assert.Equal(t, false, got["update_all"])
}

func TestPushNonSuccessStatusIsStillDispatched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(staticSource{remote: settings.Remote{ServerURL: srv.URL, APIKey: "k"}}, 0, logger.NewNop())
	r := c.Push(context.Background(), "https://x.test", nil)

	assert.True(t, r.Accepted)
	assert.Equal(t, "403 Forbidden", r.Detail)
}

func TestPushConnectionFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := NewClient(staticSource{remote: settings.Remote{ServerURL: addr, APIKey: "k"}}, 0, logger.NewNop())
	r := c.Push(context.Background(), "https://x.test", []string{"a"})

	assert.False(t, r.Accepted)
	assert.Contains(t, r.Detail, "Connection failed ")
}

func TestPushSettingsFailure(t *testing.T) {
	c := NewClient(staticSource{err: errors.New("backend down")}, 0, logger.NewNop())
	r := c.Push(context.Background(), "https://x.test", nil)

	assert.False(t, r.Accepted)
	assert.Contains(t, r.Detail, "backend down")
}
