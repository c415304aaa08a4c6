package archivebox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/settings"
	"github.com/MrSnakeDoc/archivetag/internal/sink"
	"github.com/MrSnakeDoc/archivetag/internal/utils"
)

// AddPath is the ArchiveBox CLI endpoint used to submit URLs
const AddPath = "/api/v1/cli/add"

// RemoteSource provides the remote configuration at push time
type RemoteSource interface {
	Remote(ctx context.Context) (settings.Remote, error)
}

type addRequest struct {
	APIKey    string   `json:"api_key"`
	URLs      []string `json:"urls"`
	Tag       string   `json:"tag"`
	Depth     int      `json:"depth"`
	Update    bool     `json:"update"`
	UpdateAll bool     `json:"update_all"`
}

// Client pushes entries to an ArchiveBox server
type Client struct {
	source RemoteSource
	http   *http.Client
	logger logger.Logger
}

// NewClient creates a client. timeout <= 0 disables the client-side timeout.
func NewClient(source RemoteSource, timeout time.Duration, log logger.Logger) *Client {
	if timeout < 0 {
		timeout = 0
	}
	return &Client{
		source: source,
		http: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// Push submits url with its full tag list.
// Acceptance means the request reached the server; the archive outcome is never inspected.
func (c *Client) Push(ctx context.Context, url string, tags []string) sink.Result {
	remote, err := c.source.Remote(ctx)
	if err != nil {
		return sink.Result{Detail: "Settings unavailable " + err.Error()}
	}
	if !remote.Configured() {
		return sink.Result{Detail: sink.DetailNotConfigured}
	}

	body, err := json.Marshal(addRequest{
		APIKey: remote.APIKey,
		URLs:   []string{url},
		Tag:    strings.Join(tags, ","),
	})
	if err != nil {
		return sink.Result{Detail: fmt.Sprintf("Connection failed %v", err)}
	}

	endpoint := strings.TrimRight(remote.ServerURL, "/") + AddPath
	c.logger.Debug("sending to archivebox",
		logger.String("endpoint", endpoint),
		logger.String("url", url),
		logger.Strings("tags", tags))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return sink.Result{Detail: fmt.Sprintf("Connection failed %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return sink.Result{Detail: fmt.Sprintf("Connection failed %v", err)}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		utils.CloseLogged(resp.Body, "archivebox response", c.logger)
	}()

	return sink.Result{Accepted: true, Detail: resp.Status}
}
