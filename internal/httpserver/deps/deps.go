package deps

import (
	"time"

	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/settings"
	"github.com/MrSnakeDoc/archivetag/internal/store"
	"github.com/MrSnakeDoc/archivetag/internal/tagging"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time // for testing, defaults to time.Now
	AllowedHosts  []string         // Host headers allowed to access the server
	AllowedCIDRS  []string         // IPs allowed to access healthz/readyz endpoints
	TrustProxy    bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateBurst     int              // per-IP burst on mutating routes
	RatePerMin    int              // per-IP refill on mutating routes
	Tagging       *tagging.Service // Single access point to the entry collection
	Backend       store.Backend    // Key-value backend, pinged by readyz/infra
	Settings      *settings.Store  // ArchiveBox configuration
	SeedFile      string           // Path to the seed file (empty if seeding disabled)
	ReloadTrigger chan struct{}    // Channel to trigger manual seed import (nil if seeding disabled)
}
