package storage

import (
	"context"
	"fmt"

	"github.com/sheikh-saqib/profit-distribution-tracker/internal/config"
	interfaces "github.com/sheikh-saqib/profit-distribution-tracker/internal/interfaces"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/storage/csvfile"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/storage/memory"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/storage/postgres"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/storage/sqlite"
)

// Open returns the LedgerStore selected by cfg.Type.
func Open(ctx context.Context, cfg config.StoreConfig) (interfaces.LedgerStore, error) {
	switch cfg.Type {
	case config.StoreCSV:
		return csvfile.NewStore(cfg.Path), nil
	case config.StoreMemory:
		return memory.NewMemoryLedgerStore(), nil
	case config.StoreSQLite:
		s, err := sqlite.NewStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case config.StorePostgres:
		s, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}
