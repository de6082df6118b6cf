package app

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/0x0FACED/northwind/internal/server"
	"github.com/0x0FACED/zlog"
	"go.uber.org/multierr"
)

// Janitor is implemented by caches that sweep expired entries in background.
type Janitor interface {
	StartJanitor(ctx context.Context)
}

type App struct {
	srv   *server.Server
	cache io.Closer
	store io.Closer

	log *zlog.ZerologLogger
}

func New(
	srv *server.Server,
	cache io.Closer,
	store io.Closer,
	log *zlog.ZerologLogger,
) *App {
	return &App{
		srv:   srv,
		cache: cache,
		store: store,
		log:   log,
	}
}

func (a *App) Start(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.log.Info().Str("address", a.srv.Address()).Msg("Starting application server")
		if err := a.srv.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	if j, ok := a.cache.(Janitor); ok {
		a.log.Info().Msg("Starting cache janitor job")
		j.StartJanitor(ctx)
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errChan:
		return err
	}
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.log.Info().Msg("Shutting down...")

	var retErr error

	if err := a.srv.Shutdown(ctx); err != nil {
		a.log.Error().Err(err).Msg("Failed to shutdown application server")
		retErr = multierr.Append(retErr, err)
	} else {
		a.log.Info().Msg("Application server stopped")
	}

	if err := a.cache.Close(); err != nil {
		a.log.Error().Err(err).Msg("Failed to close cache")
		retErr = multierr.Append(retErr, err)
	} else {
		a.log.Info().Msg("Cache closed")
	}

	if err := a.store.Close(); err != nil {
		a.log.Error().Err(err).Msg("Failed to close database")
		retErr = multierr.Append(retErr, err)
	} else {
		a.log.Info().Msg("Database closed")
	}

	return retErr
}
