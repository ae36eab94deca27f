package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nhle/schedule/internal/model"
	"github.com/nhle/schedule/internal/schedule"
	"github.com/nhle/schedule/internal/store"
)

// App carries what the root command opens for its subcommands. The pointer
// is handed to every command before Before fills it in.
type App struct {
	Config  *model.AppConfig
	Store   store.Store
	Tracker *schedule.Tracker
}

// Open opens the database described by cfg and hydrates the tracker.
func Open(ctx context.Context, cfg *model.AppConfig, log zerolog.Logger) (*App, error) {
	s, err := store.NewSQLiteStore(cfg.DBPath(),
		store.WithKey(cfg.Storage.Key),
		store.WithLogger(log.With().Str("cmp", "store").Logger()),
	)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	tr, err := schedule.New(ctx, s, schedule.WithLogger(log.With().Str("cmp", "tracker").Logger()))
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	return &App{Config: cfg, Store: s, Tracker: tr}, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

// Controller returns a form/modal controller over the tracker.
func (a *App) Controller() *schedule.Controller {
	var opts []schedule.ControllerOption
	if a.Config != nil {
		opts = append(opts, schedule.WithDefaultColor(a.Config.Display.DefaultColor))
	}
	return schedule.NewController(a.Tracker, opts...)
}
