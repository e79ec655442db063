package memory

import (
	"context" // standard Go package for request-scoped context (timeouts, cancellation)
	"sync"    // standard Go package for concurrency primitives like Mutex

	interfaces "github.com/sheikh-saqib/profit-distribution-tracker/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"                // domain models: Record, Ledger
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// It keeps the records in a slice and is safe for concurrent loads and persists.
type MemoryLedgerStore struct {
	mu      sync.Mutex      // mutex to protect records from concurrent access
	records []models.Record // records in insertion order
}

// NewMemoryLedgerStore creates a store seeded with a copy of records.
func NewMemoryLedgerStore(records ...models.Record) *MemoryLedgerStore {
	copied := make([]models.Record, len(records))
	copy(copied, records) // copy so the caller's slice is not shared
	return &MemoryLedgerStore{records: copied}
}

// Load returns a copy of the stored ledger.
// Implements the LedgerStore interface.
func (m *MemoryLedgerStore) Load(ctx context.Context) (models.Ledger, error) {

	m.mu.Lock()         // lock to prevent concurrent modification while reading
	defer m.mu.Unlock() // unlock automatically at the end

	return models.Ledger{Records: m.records}.Clone(), nil // return a copy so external code can't modify internal state
}

// Persist replaces the stored ledger with a copy of ledger.
func (m *MemoryLedgerStore) Persist(ctx context.Context, ledger models.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err // a cancelled request must not write
	}

	m.mu.Lock()         // lock the mutex to prevent concurrent writes
	defer m.mu.Unlock() // unlock automatically when function exits (even if error occurs)

	m.records = ledger.Clone().Records // keep our own copy of the records
	return nil                         // always succeeds in memory
}

// Close is a no-op; there is nothing to release.
func (m *MemoryLedgerStore) Close() error { return nil }

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
