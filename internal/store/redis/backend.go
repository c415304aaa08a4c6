package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Backend stores named values as plain Redis strings.
// A single SET replaces a value, so readers never observe a partial write.
type Backend struct {
	client *redis.Client
}

// NewBackend creates a new Redis backend
func NewBackend(client *redis.Client) *Backend {
	return &Backend{
		client: client,
	}
}

// Name identifies the backend
func (b *Backend) Name() string {
	return "redis"
}

// Get retrieves a value from Redis
func (b *Backend) Get(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, ValueKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil // Nothing stored yet
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", name, err)
	}
	return data, true, nil
}

// Set stores a value in Redis without expiry
func (b *Backend) Set(ctx context.Context, name string, value []byte) error {
	if err := b.client.Set(ctx, ValueKey(name), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	return nil
}

// Ping checks the Redis connection
func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
