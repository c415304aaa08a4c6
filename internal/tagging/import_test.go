package tagging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/archivetag/internal/domain"
)

func TestImportEntries(t *testing.T) {
	f := newFixture(t)
	f.seed(t, domain.Collection{
		{ID: "a", URL: "https://x.test/a", Title: "Mine", Timestamp: time.Unix(1, 0), Tags: []string{"personal"}},
	})
	ctx := context.Background()

	stats, err := f.svc.ImportEntries(ctx, []Seed{
		{URL: "https://x.test/a", Title: "Seeded", Tags: []string{"dev"}},
		{URL: "https://x.test/b", Title: "B", Tags: []string{"dev"}},
		{URL: "", Title: "skipped"},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Created: 1, Updated: 1}, stats)

	coll, err := f.store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, coll, 2)
	assert.Equal(t, "Mine", coll[0].Title)
	assert.Equal(t, []string{"personal", "dev"}, coll[0].Tags)
	assert.Equal(t, "B", coll[1].Title)
	assert.Empty(t, f.pusher.Pushes())
}

func TestImportEntriesIsIdempotent(t *testing.T) {
	f := newFixture(t)
	seeds := []Seed{{URL: "https://x.test/a", Title: "A", Tags: []string{"dev"}}}
	ctx := context.Background()

	_, err := f.svc.ImportEntries(ctx, seeds)
	require.NoError(t, err)
	writes := f.backend.Writes()

	stats, err := f.svc.ImportEntries(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{}, stats)
	assert.Equal(t, writes, f.backend.Writes())
}
