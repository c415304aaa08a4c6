package memory

import (
	"context"
	"errors"
	"testing"
)

func TestBackendCopiesValues(t *testing.T) {
	b := NewBackend()
	ctx := context.Background()

	value := []byte("abc")
	if err := b.Set(ctx, "k", value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'z'

	got, ok, err := b.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if string(got) != "abc" {
		t.Errorf("Get() = %q, want abc", got)
	}

	got[0] = 'y'
	again, _, _ := b.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("Get() after caller mutation = %q, want abc", again)
	}
}

func TestBackendFailWith(t *testing.T) {
	b := NewBackend()
	ctx := context.Background()
	boom := errors.New("boom")

	b.FailWith(boom, boom)
	if _, _, err := b.Get(ctx, "k"); !errors.Is(err, boom) {
		t.Errorf("Get() error = %v, want %v", err, boom)
	}
	if err := b.Set(ctx, "k", nil); !errors.Is(err, boom) {
		t.Errorf("Set() error = %v, want %v", err, boom)
	}

	b.FailWith(nil, nil)
	if err := b.Set(ctx, "k", []byte("v")); err != nil {
		t.Errorf("Set() after clearing failure error = %v", err)
	}
	if b.Writes() != 2 || b.Reads() != 1 {
		t.Errorf("Writes()/Reads() = %d/%d, want 2/1", b.Writes(), b.Reads())
	}
}
