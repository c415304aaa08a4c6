package sink

import "context"

// Result is the outcome of a remote push as reported to the user.
// Detail carries the remote status text or the failure reason.
type Result struct {
	Accepted bool   `json:"accepted"`
	Detail   string `json:"detail"`
}

// Pusher sends one entry's URL and its full tag list to a remote archive.
// Implementations never return an error; failures are folded into the Result.
type Pusher interface {
	Push(ctx context.Context, url string, tags []string) Result
}

// Standard failure details
const (
	DetailNotConfigured = "Server not configured"
	DetailStopped       = "Push dispatcher stopped"
	DetailQueueFull     = "Push queue full"
)
