package config

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Storage backends
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Store      string // "redis" | "sqlite" | "memory"
	SQLitePath string // sqlite file, created on first start

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// ArchiveBox (defaults, overridable through /api/settings)
	ArchiveBoxURL     string        // ex: "https://archive.domain.ext"
	ArchiveBoxAPIKey  string        // optional
	ArchiveBoxTimeout time.Duration // 0 = no client timeout

	// Tagging
	SuggestLimit      int // number of suggested tags (default: 3)
	AutocompleteLimit int // dropdown size (default: 5)
	PushQueue         int // pending remote pushes before callers block

	// Seed import
	SeedFile     string        // path to a homepage bookmarks.yaml (optional, empty = import disabled)
	SeedInterval time.Duration // interval to re-import the seed file (default: 24h)

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // allowed browser origins, "*" = any

	RateBurst  int // per-IP burst on mutating routes
	RatePerMin int // per-IP refill rate on mutating routes
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("ARCHIVETAG_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("ARCHIVETAG_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("ARCHIVETAG_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ARCHIVETAG_PRETTY_LOG", true),

		// Storage
		Store:      strings.ToLower(getenv("ARCHIVETAG_STORE", StoreRedis)),
		SQLitePath: getenv("ARCHIVETAG_SQLITE_PATH", "archivetag.sqlite"),

		// Redis settings
		RedisUser:             getenv("ARCHIVETAG_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("ARCHIVETAG_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("ARCHIVETAG_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("ARCHIVETAG_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// ArchiveBox
		ArchiveBoxURL:     getenv("ARCHIVETAG_ARCHIVEBOX_URL", ""),
		ArchiveBoxAPIKey:  getenv("ARCHIVETAG_ARCHIVEBOX_API_KEY", ""),
		ArchiveBoxTimeout: mustDuration("ARCHIVETAG_ARCHIVEBOX_TIMEOUT", 0),

		// Tagging
		SuggestLimit:      getenvInt("ARCHIVETAG_SUGGEST_LIMIT", 3),
		AutocompleteLimit: getenvInt("ARCHIVETAG_AUTOCOMPLETE_LIMIT", 5),
		PushQueue:         getenvInt("ARCHIVETAG_PUSH_QUEUE", 64),

		// Seed import
		SeedFile:     getenv("ARCHIVETAG_SEED_FILE", ""), // Optional, empty = import disabled
		SeedInterval: mustDuration("ARCHIVETAG_SEED_INTERVAL", 24*time.Hour),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("ARCHIVETAG_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("ARCHIVETAG_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("ARCHIVETAG_TRUST_PROXY", true),
		CORSOrigins:  splitAndTrim(getenv("ARCHIVETAG_CORS_ORIGINS", "*")),

		RateBurst:  getenvInt("ARCHIVETAG_RATE_BURST", 30),
		RatePerMin: getenvInt("ARCHIVETAG_RATE_PER_MIN", 120),
	}

	if !slices.Contains([]string{StoreRedis, StoreSQLite, StoreMemory}, cfg.Store) {
		panic(fmt.Sprintf("❌ FATAL: ARCHIVETAG_STORE must be one of redis, sqlite, memory (got %q)", cfg.Store))
	}

	if cfg.Store == StoreRedis {
		cfg.RedisAddr = requireEnv("ARCHIVETAG_REDIS_ADDR")

		// Validate Redis password configuration
		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: ARCHIVETAG_REDIS_PASSWORD is required when ARCHIVETAG_REDIS_PASSWORD_REQUIRED=true")
		}
	}

	if cfg.RatePerMin <= 0 || cfg.RateBurst <= 0 {
		panic("❌ FATAL: ARCHIVETAG_RATE_BURST and ARCHIVETAG_RATE_PER_MIN must be positive")
	}

	if cfg.SeedInterval <= 0 {
		panic(fmt.Sprintf("❌ FATAL: ARCHIVETAG_SEED_INTERVAL must be positive (got %s)", cfg.SeedInterval))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.ArchiveBoxAPIKey = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
