package interfaces

import (
	"context"

	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
)

// LedgerStore owns the persisted form of the ledger.
// Load returns an empty ledger when nothing has been persisted yet.
// Persist replaces the whole stored ledger or leaves it untouched on error.
type LedgerStore interface {
	Load(ctx context.Context) (models.Ledger, error)
	Persist(ctx context.Context, ledger models.Ledger) error
	Close() error
}
