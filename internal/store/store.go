package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/archivetag/internal/domain"
)

const (
	// EntriesKey is the name of the value holding the whole entry collection.
	EntriesKey = "entries"
)

var (
	// ErrPersist wraps every read or write rejected by the backend.
	ErrPersist = errors.New("persistence failure")
)

// Backend is the synchronized key-value collaborator.
// Values are replaced whole; concurrent writers resolve last-write-wins.
type Backend interface {
	// Get returns the value stored under key. ok is false when nothing was stored yet.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
	// Name identifies the backend in logs and status pages.
	Name() string
}

// EntryStore gives typed access to the entry collection.
type EntryStore struct {
	backend Backend
}

// NewEntryStore creates an entry store on top of backend
func NewEntryStore(backend Backend) *EntryStore {
	return &EntryStore{
		backend: backend,
	}
}

// Load reads the whole collection. An empty collection is returned when nothing was persisted yet.
func (s *EntryStore) Load(ctx context.Context) (domain.Collection, error) {
	data, ok, err := s.backend.Get(ctx, EntriesKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load entries: %w", ErrPersist, err)
	}
	if !ok || len(data) == 0 {
		return domain.Collection{}, nil
	}

	var coll domain.Collection
	if err := json.Unmarshal(data, &coll); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal entries: %w", ErrPersist, err)
	}
	if coll == nil {
		coll = domain.Collection{}
	}

	return coll, nil
}

// Save replaces the whole collection in a single backend write.
func (s *EntryStore) Save(ctx context.Context, coll domain.Collection) error {
	if coll == nil {
		coll = domain.Collection{}
	}

	data, err := json.Marshal(coll)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal entries: %w", ErrPersist, err)
	}

	if err := s.backend.Set(ctx, EntriesKey, data); err != nil {
		return fmt.Errorf("%w: failed to save entries: %w", ErrPersist, err)
	}

	return nil
}
