// Package cli is a small interactive surface over the collection engine,
// backed by the SQLite document store. It exists for poking at the engine
// from a terminal; the real presentation layer lives elsewhere.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/flixvault/flixvault/internal/collections"
	"github.com/flixvault/flixvault/internal/config"
	"github.com/flixvault/flixvault/internal/logging"
	"github.com/flixvault/flixvault/internal/remote/sqlitestore"
)

type App struct {
	config  *config.Config
	store   *sqlitestore.Store
	library *collections.Library
	reader  *bufio.Reader
	userID  string
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := sqlitestore.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	log := logging.NewSlogLogger(slog.Default())
	library := collections.New(store,
		collections.WithLogger(log),
		collections.WithTokenSecret([]byte(cfg.TokenSecret)),
	)

	return &App{
		config:  cfg,
		store:   store,
		library: library,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.library.Authenticated()
}

// opCtx derives the per-operation deadline from config.
func (a *App) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RemoteTimeout)
}
