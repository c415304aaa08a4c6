package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/archivetag/internal/config"
	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/redis"
	"github.com/MrSnakeDoc/archivetag/internal/store"
	"github.com/MrSnakeDoc/archivetag/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/archivetag/internal/store/redis"
	"github.com/MrSnakeDoc/archivetag/internal/store/sqlite"
	"github.com/MrSnakeDoc/archivetag/internal/utils"
)

// OpenBackend connects the storage backend selected by cfg.Store.
// The returned close func releases the underlying connection and is never nil.
func OpenBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Backend, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(ctx, redis.OptionsFromConfig(cfg), log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("Redis initialized successfully")
		return redisstore.NewBackend(client), func() { utils.CloseLogged(client, "redis", log) }, nil

	case config.StoreSQLite:
		b, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		log.Info("SQLite store opened", logger.String("path", b.Path()))
		return b, func() { utils.CloseLogged(b, "sqlite", log) }, nil

	case config.StoreMemory:
		log.Warn("memory store selected, entries are lost on restart")
		return memory.NewBackend(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}
