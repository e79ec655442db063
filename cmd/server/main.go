package main

import (
	"context"
	"log"
	"os"

	"github.com/sheikh-saqib/profit-distribution-tracker/internal/app"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/config"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/logging"
)

func main() {
	// The server is configured through the environment; the tracker CLI
	// exposes the same settings as flags.
	cfg, err := config.Load(os.Getenv("TRACKER_CONFIG"), os.Getenv("TRACKER_ENV_FILE"))
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("build app")
	}

	// Run closes the store and publisher before returning.
	if err := a.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
