package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/api"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/config"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/events/kafka"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/events/memory"
	interfaces "github.com/sheikh-saqib/profit-distribution-tracker/internal/interfaces"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/ledger"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/storage"
)

// App holds the wired engine and the resources it owns.
type App struct {
	Config    *config.Config
	Engine    *ledger.Engine
	Store     interfaces.LedgerStore
	Publisher interfaces.EventPublisher
	Log       zerolog.Logger
}

// Build opens the configured store and publisher and wires the engine.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	store, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	var publisher interfaces.EventPublisher
	if len(cfg.Events.Brokers) > 0 {
		publisher = kafka.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		log.Info().Strs("brokers", cfg.Events.Brokers).Str("topic", cfg.Events.Topic).Msg("publishing ledger events to kafka")
	} else {
		publisher = memory.NewPublisher()
	}

	log.Debug().Str("store", cfg.Store.Type).Str("path", cfg.Store.Path).Msg("store opened")

	return &App{
		Config:    cfg,
		Engine:    ledger.NewEngine(store, publisher, log),
		Store:     store,
		Publisher: publisher,
		Log:       log,
	}, nil
}

// Close releases the publisher and the store.
func (a *App) Close() error {
	return errors.Join(a.Publisher.Close(), a.Store.Close())
}

// Run serves until shutdown and then closes the app's resources.
func (a *App) Run(ctx context.Context) error {
	err := a.Serve(ctx)
	return errors.Join(err, a.Close())
}

// Serve runs the HTTP server until SIGINT/SIGTERM or ctx is done, then
// shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	timeout, err := a.Config.Server.ShutdownDuration()
	if err != nil {
		return err
	}

	handler := api.NewHandler(a.Engine, a.Config.Statement.Title, a.Log)
	srv := &http.Server{
		Addr:    a.Config.Server.Addr,
		Handler: handler.Routes(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		a.Log.Info().Str("addr", srv.Addr).Msg("starting server")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	a.Log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
