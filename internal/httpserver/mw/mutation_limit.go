package mw

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/utils"
)

// MutationLimit caps how fast one client may add or remove tags.
// Both routes draw from the same per-client budget: every accepted mutation
// costs one remote push, whatever its direction.
type MutationLimit struct {
	Burst      int // mutations allowed back to back
	PerMinute  int // budget regained per minute
	TrustProxy bool
	MaxClients int           // sweep early once this many clients are tracked
	IdleTTL    time.Duration // forget clients idle for longer than this
	Now        func() time.Time
	Logger     logger.Logger
}

type tokenBucket struct {
	tokens   float64
	refilled time.Time
}

// take refills the bucket up to now and spends one token if it can.
// On refusal it reports how long until the next token.
func (b *tokenBucket) take(now time.Time, capacity, perSec float64) (bool, time.Duration) {
	if elapsed := now.Sub(b.refilled).Seconds(); elapsed > 0 {
		b.tokens = math.Min(capacity, b.tokens+elapsed*perSec)
		b.refilled = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	return false, time.Duration((1 - b.tokens) / perSec * float64(time.Second))
}

type mutationLimiter struct {
	MutationLimit
	perSec float64

	mu        sync.Mutex
	clients   map[string]*tokenBucket
	lastSweep time.Time
}

func newMutationLimiter(cfg MutationLimit) *mutationLimiter {
	cfg.Burst = max(cfg.Burst, 1)
	cfg.PerMinute = max(cfg.PerMinute, 1)
	if cfg.MaxClients <= 0 {
		cfg.MaxClients = 10_000
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	return &mutationLimiter{
		MutationLimit: cfg,
		perSec:        float64(cfg.PerMinute) / 60,
		clients:       make(map[string]*tokenBucket),
		lastSweep:     cfg.Now(),
	}
}

// take spends one mutation from client's budget.
func (l *mutationLimiter) take(client string) (ok bool, left int, wait time.Duration) {
	now := l.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.IdleTTL || len(l.clients) >= l.MaxClients {
		l.sweepLocked(now)
	}

	b := l.clients[client]
	if b == nil {
		b = &tokenBucket{tokens: float64(l.Burst), refilled: now}
		l.clients[client] = b
	}
	ok, wait = b.take(now, float64(l.Burst), l.perSec)
	return ok, int(b.tokens), wait
}

// sweepLocked drops clients that have not mutated anything for IdleTTL.
// Their bucket would be full again anyway.
func (l *mutationLimiter) sweepLocked(now time.Time) {
	for client, b := range l.clients {
		if now.Sub(b.refilled) > l.IdleTTL {
			delete(l.clients, client)
		}
	}
	l.lastSweep = now
}

// LimitMutations rejects tag changes beyond the client's budget with a JSON 429
// and a Retry-After header. Accepted requests carry X-RateLimit-Remaining.
func LimitMutations(cfg MutationLimit) func(http.Handler) http.Handler {
	l := newMutationLimiter(cfg)
	limit := strconv.Itoa(l.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := utils.ClientIP(r, l.TrustProxy)

			ok, left, wait := l.take(client)
			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(left))
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			retry := max(int(math.Ceil(wait.Seconds())), 1)
			l.Logger.Warn("tag mutation rate limited",
				logger.String("client", client),
				logger.String("method", r.Method),
				logger.Int("retry_after_s", retry))

			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": fmt.Sprintf("too many tag changes, retry in %ds", retry),
			})
		})
	}
}
