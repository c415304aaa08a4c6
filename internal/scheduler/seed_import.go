package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/tagging"
)

// SeedSource produces seeds from an external file
type SeedSource interface {
	Load() ([]tagging.Seed, error)
}

// SeedSink merges seeds into the entry collection
type SeedSink interface {
	ImportEntries(ctx context.Context, seeds []tagging.Seed) (tagging.ImportStats, error)
}

// SeedImporter handles periodic and on-demand import of seed entries
type SeedImporter struct {
	source        SeedSource
	sink          SeedSink
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	started       bool
	done          chan struct{}
	manualTrigger chan struct{}
}

// NewSeedImporter creates a new seed importer.
// manualTrigger is shared with the reload endpoint and the file watcher.
func NewSeedImporter(
	source SeedSource,
	sink SeedSink,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedImporter {
	return &SeedImporter{
		source:        source,
		sink:          sink,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start imports once, then keeps importing on every tick and trigger.
// A failed first import is logged, not fatal: the file may appear later.
// A non-positive interval disables the periodic import; triggers still work.
func (si *SeedImporter) Start(ctx context.Context) {
	if _, err := si.Import(ctx); err != nil {
		si.logger.Warn("initial seed import failed", logger.Error(err))
	}

	si.started = true
	var ticker *time.Ticker
	var tick <-chan time.Time
	if si.interval > 0 {
		ticker = time.NewTicker(si.interval)
		tick = ticker.C
	} else {
		si.logger.Warn("seed interval is not positive, periodic import disabled",
			logger.Duration("interval", si.interval))
	}
	go func() {
		defer close(si.done)
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				si.run(ctx)
			case <-si.manualTrigger:
				si.logger.Info("manual seed import triggered")
				si.run(ctx)
			case <-si.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the importer and waits for the loop to exit
func (si *SeedImporter) Stop() {
	si.stopOnce.Do(func() { close(si.stopCh) })
	if si.started {
		<-si.done
	}
}

// Import loads the seed file and merges it into the collection
func (si *SeedImporter) Import(ctx context.Context) (tagging.ImportStats, error) {
	si.logger.Info("importing seed entries")

	seeds, err := si.source.Load()
	if err != nil {
		return tagging.ImportStats{}, fmt.Errorf("failed to load seeds: %w", err)
	}

	stats, err := si.sink.ImportEntries(ctx, seeds)
	if err != nil {
		return stats, fmt.Errorf("failed to import seeds: %w", err)
	}

	si.logger.Info("seed import done",
		logger.Int("seeds", len(seeds)),
		logger.Int("created", stats.Created),
		logger.Int("updated", stats.Updated))
	return stats, nil
}

func (si *SeedImporter) run(ctx context.Context) {
	if _, err := si.Import(ctx); err != nil {
		si.logger.Error("failed to import seeds", logger.Error(err))
	}
}

// Trigger requests an import without blocking. It reports false when one is already pending.
func Trigger(ch chan<- struct{}) bool {
	select {
	case ch <- struct{}{}:
		return true
	default:
		return false
	}
}
