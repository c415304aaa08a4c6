package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/archivetag/internal/domain"
	"github.com/MrSnakeDoc/archivetag/internal/store"
)

func newTestBackend(t *testing.T) (*Backend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}
	})
	return NewBackend(client), mr
}

func TestBackendGetMissing(t *testing.T) {
	b, _ := newTestBackend(t)

	data, ok, err := b.Get(context.Background(), "entries")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || data != nil {
		t.Errorf("Get() on missing key = %q, %v, want nil, false", data, ok)
	}
}

func TestBackendSetGet(t *testing.T) {
	b, mr := newTestBackend(t)
	ctx := context.Background()

	if err := b.Set(ctx, "entries", []byte(`[]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	raw, err := mr.Get("archivetag:entries")
	if err != nil {
		t.Fatalf("miniredis Get() error = %v", err)
	}
	if raw != "[]" {
		t.Errorf("stored value = %q, want []", raw)
	}

	data, ok, err := b.Get(ctx, "entries")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if string(data) != "[]" {
		t.Errorf("Get() = %q, want []", data)
	}
}

func TestBackendUnavailable(t *testing.T) {
	b, mr := newTestBackend(t)
	mr.Close()

	if _, _, err := b.Get(context.Background(), "entries"); err == nil {
		t.Error("Get() with closed server should return error")
	}
	if err := b.Set(context.Background(), "entries", []byte("[]")); err == nil {
		t.Error("Set() with closed server should return error")
	}
}

func TestEntryStoreRoundTrip(t *testing.T) {
	b, _ := newTestBackend(t)
	s := store.NewEntryStore(b)
	ctx := context.Background()

	coll := domain.Collection{
		{ID: "1", URL: "https://x.test/a", Title: "A", Tags: []string{"news"}, Notes: ""},
		{ID: "2", URL: "https://x.test/b", Title: "B", Tags: []string{}, Notes: "n"},
	}
	if err := s.Save(ctx, coll); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := s.Save(ctx, loaded); err != nil {
		t.Fatalf("Save(Load()) error = %v", err)
	}

	again, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(again) != 2 || again[0].URL != "https://x.test/a" || again[1].Notes != "n" {
		t.Errorf("Save(Load()) changed the collection: %+v", again)
	}
}
