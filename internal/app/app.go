package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/archivetag/internal/config"
	"github.com/MrSnakeDoc/archivetag/internal/httpserver"
	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/scheduler"
	"github.com/MrSnakeDoc/archivetag/internal/settings"
	"github.com/MrSnakeDoc/archivetag/internal/sink"
	"github.com/MrSnakeDoc/archivetag/internal/sink/archivebox"
	"github.com/MrSnakeDoc/archivetag/internal/sources/homepage"
	"github.com/MrSnakeDoc/archivetag/internal/store"
	"github.com/MrSnakeDoc/archivetag/internal/tagging"
	"github.com/MrSnakeDoc/archivetag/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	closeBackend func()
	dispatcher   *sink.Dispatcher
	importer     *scheduler.SeedImporter
	watcher      *scheduler.SeedWatcher
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Fail fast if the store is unreachable
	backend, closeBackend, err := OpenBackend(context.Background(), cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	settingsStore := settings.NewStore(backend, settings.Remote{
		ServerURL: cfg.ArchiveBoxURL,
		APIKey:    cfg.ArchiveBoxAPIKey,
	})

	client := archivebox.NewClient(settingsStore, cfg.ArchiveBoxTimeout, loggerClient)
	dispatcher := sink.NewDispatcher(client, cfg.PushQueue, loggerClient)

	service := tagging.NewService(store.NewEntryStore(backend), dispatcher, loggerClient, tagging.Options{
		SuggestLimit:      cfg.SuggestLimit,
		AutocompleteLimit: cfg.AutocompleteLimit,
	})

	// Seed import is optional
	var (
		importer      *scheduler.SeedImporter
		watcher       *scheduler.SeedWatcher
		reloadTrigger chan struct{}
	)
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed importer",
			logger.String("file", cfg.SeedFile))
		reloadTrigger = make(chan struct{}, 1)
		importer = scheduler.NewSeedImporter(
			homepage.NewLoader(cfg.SeedFile),
			service,
			loggerClient,
			cfg.SeedInterval,
			reloadTrigger,
		)
		watcher = scheduler.NewSeedWatcher(cfg.SeedFile, reloadTrigger, scheduler.DefaultDebounce, loggerClient)
	} else {
		loggerClient.Info("seed file not configured, seed import disabled")
	}

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		RateBurst:     cfg.RateBurst,
		RatePerMin:    cfg.RatePerMin,
		Tagging:       service,
		Backend:       backend,
		Settings:      settingsStore,
		SeedFile:      cfg.SeedFile,
		ReloadTrigger: reloadTrigger,
	}

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       httpserver.New(cfg, loggerClient, d),
		closeBackend: closeBackend,
		dispatcher:   dispatcher,
		importer:     importer,
		watcher:      watcher,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting archivetag %s on %s", version.String(), a.cfg.ListenPort)
	defer a.closeBackend()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.dispatcher.Start()

	if a.importer != nil {
		a.importer.Start(ctx)
		a.logger.Info("seed importer started",
			logger.Duration("interval", a.cfg.SeedInterval))
	}

	if a.watcher != nil {
		// Interval and manual imports still work without the watcher
		if err := a.watcher.Start(); err != nil {
			a.logger.Warn("seed file watcher disabled", logger.Error(err))
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()

	// Requests are drained: nothing enqueues pushes or imports anymore
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.importer != nil {
		a.importer.Stop()
	}
	a.dispatcher.Stop()

	if err != nil {
		return err
	}
	a.logger.Info("✅ archivetag stopped cleanly")
	return nil
}
