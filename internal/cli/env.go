package cli

import (
	"context"

	"github.com/MrSnakeDoc/archivetag/internal/app"
	"github.com/MrSnakeDoc/archivetag/internal/config"
	"github.com/MrSnakeDoc/archivetag/internal/logger"
	"github.com/MrSnakeDoc/archivetag/internal/settings"
	"github.com/MrSnakeDoc/archivetag/internal/sink"
	"github.com/MrSnakeDoc/archivetag/internal/sink/archivebox"
	"github.com/MrSnakeDoc/archivetag/internal/store"
	"github.com/MrSnakeDoc/archivetag/internal/tagging"
)

// Env is what a subcommand works against
type Env struct {
	Tagging  *tagging.Service
	Settings *settings.Store
	Close    func()
}

// Opener builds an Env for one command invocation
type Opener func(ctx context.Context) (*Env, error)

// ConfigOpener opens the backend the server is configured with, so the CLI
// and a running server share the same entries and settings.
func ConfigOpener(cfg *config.Config, log logger.Logger) Opener {
	return func(ctx context.Context) (*Env, error) {
		backend, closeBackend, err := app.OpenBackend(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return NewEnv(backend, cfg, log, closeBackend), nil
	}
}

// NewEnv wires a tagging service over backend. closeBackend runs after the push worker stopped.
func NewEnv(backend store.Backend, cfg *config.Config, log logger.Logger, closeBackend func()) *Env {
	st := settings.NewStore(backend, settings.Remote{
		ServerURL: cfg.ArchiveBoxURL,
		APIKey:    cfg.ArchiveBoxAPIKey,
	})

	dispatcher := sink.NewDispatcher(archivebox.NewClient(st, cfg.ArchiveBoxTimeout, log), cfg.PushQueue, log)
	dispatcher.Start()

	return &Env{
		Tagging: tagging.NewService(store.NewEntryStore(backend), dispatcher, log, tagging.Options{
			SuggestLimit:      cfg.SuggestLimit,
			AutocompleteLimit: cfg.AutocompleteLimit,
		}),
		Settings: st,
		Close: func() {
			dispatcher.Stop()
			if closeBackend != nil {
				closeBackend()
			}
		},
	}
}
