package memory

import (
	"context"
	"slices"
	"sync"
)

// Backend is an in-process key-value backend.
// Used for local runs without Redis and as the test double for the store.
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte

	failGet error
	failSet error

	gets int
	sets int
}

// NewBackend creates an empty memory backend
func NewBackend() *Backend {
	return &Backend{
		values: make(map[string][]byte),
	}
}

// Name identifies the backend
func (b *Backend) Name() string {
	return "memory"
}

// Get returns a copy of the stored value
func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.gets++
	if b.failGet != nil {
		return nil, false, b.failGet
	}
	v, ok := b.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

// Set stores a copy of value
func (b *Backend) Set(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sets++
	if b.failSet != nil {
		return b.failSet
	}
	b.values[key] = slices.Clone(value)
	return nil
}

// FailWith makes every following Get and Set return the given errors. nil clears a failure.
func (b *Backend) FailWith(getErr, setErr error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failGet = getErr
	b.failSet = setErr
}

// Ping always succeeds
func (b *Backend) Ping(context.Context) error {
	return nil
}

// Writes returns how many Set calls were made
func (b *Backend) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.sets
}

// Reads returns how many Get calls were made
func (b *Backend) Reads() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.gets
}
