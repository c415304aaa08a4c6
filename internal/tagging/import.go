package tagging

import (
	"context"

	"github.com/MrSnakeDoc/archivetag/internal/domain"
	"github.com/MrSnakeDoc/archivetag/internal/logger"
)

// Seed is an entry proposed by an external source
type Seed struct {
	URL   string
	Title string
	Tags  []string
}

// ImportStats summarizes an import run
type ImportStats struct {
	Created int
	Updated int
}

// ImportEntries merges seeds into the collection in a single write.
// Existing entries only gain missing tags; titles and timestamps are kept.
// Imports are never pushed to the remote archive.
func (s *Service) ImportEntries(ctx context.Context, seeds []Seed) (ImportStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats ImportStats

	coll, err := s.store.Load(ctx)
	if err != nil {
		return stats, err
	}

	changed := false
	for _, seed := range seeds {
		if seed.URL == "" {
			continue
		}
		res := domain.Resolve(domain.Page{URL: seed.URL, Title: seed.Title}, coll, s.now(), s.newID)
		coll = res.Collection

		added := res.Entry.AddTags(seed.Tags...)
		switch {
		case res.Created:
			stats.Created++
		case len(added) > 0 || res.Backfilled:
			stats.Updated++
		}
		if res.NeedsWrite() || len(added) > 0 {
			changed = true
		}
	}

	if !changed {
		return stats, nil
	}

	if err := s.store.Save(ctx, coll); err != nil {
		return ImportStats{}, err
	}

	s.logger.Info("imported seed entries",
		logger.Int("created", stats.Created),
		logger.Int("updated", stats.Updated))
	return stats, nil
}
