package scheduler

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/archivetag/internal/logger"
)

// DefaultDebounce groups the burst of events an editor produces on save
const DefaultDebounce = 500 * time.Millisecond

// SeedWatcher triggers a seed import whenever the seed file changes on disk.
// The parent directory is watched so atomic rename-on-save is caught too.
type SeedWatcher struct {
	path     string
	trigger  chan<- struct{}
	debounce time.Duration
	logger   logger.Logger

	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSeedWatcher creates a watcher for path
func NewSeedWatcher(path string, trigger chan<- struct{}, debounce time.Duration, log logger.Logger) *SeedWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &SeedWatcher{
		path:     filepath.Clean(path),
		trigger:  trigger,
		debounce: debounce,
		logger:   log,
		stopCh:   make(chan struct{}),
	}
}

// Start begins watching
func (sw *SeedWatcher) Start() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(sw.path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(sw.path), err)
	}
	sw.watcher = w

	sw.wg.Add(1)
	go sw.loop()

	sw.logger.Info("watching seed file", logger.String("file", sw.path))
	return nil
}

// Stop stops watching and waits for the loop to exit
func (sw *SeedWatcher) Stop() {
	sw.stopOnce.Do(func() {
		close(sw.stopCh)
		if sw.watcher != nil {
			_ = sw.watcher.Close()
		}
	})
	sw.wg.Wait()
}

func (sw *SeedWatcher) loop() {
	defer sw.wg.Done()

	timer := time.NewTimer(sw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != sw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(sw.debounce)

		case <-timer.C:
			if Trigger(sw.trigger) {
				sw.logger.Info("seed file changed, import triggered", logger.String("file", sw.path))
			} else {
				sw.logger.Debug("seed import already pending", logger.String("file", sw.path))
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("seed file watcher error", logger.Error(err))

		case <-sw.stopCh:
			return
		}
	}
}
