package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	interfaces "github.com/sheikh-saqib/profit-distribution-tracker/internal/interfaces"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models/events"
)

// State is what every command hands back to the presentation layer.
// Summary is nil when the ledger is empty.
type State struct {
	Ledger  models.Ledger         `json:"ledger"`
	Summary *models.SummaryReport `json:"summary,omitempty"`
}

// Engine runs the Append, Delete and View commands against a store.
// Each command loads the full ledger, mutates it in memory, persists the
// whole ledger and reloads it. The mutex serialises commands within this
// process only; separate processes sharing a store are last-writer-wins.
type Engine struct {
	store     interfaces.LedgerStore
	publisher interfaces.EventPublisher
	log       zerolog.Logger
	mu        sync.Mutex
}

func NewEngine(store interfaces.LedgerStore, publisher interfaces.EventPublisher, log zerolog.Logger) *Engine {
	return &Engine{
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

// View returns the current ledger and its summary.
func (e *Engine) View(ctx context.Context) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state(ctx)
}

// Append validates rec, adds it to the ledger and persists.
func (e *Engine) Append(ctx context.Context, rec models.Record) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, err := e.store.Load(ctx)
	if err != nil {
		return State{}, err
	}
	next, err := Append(l, rec)
	if err != nil {
		return State{}, err
	}
	if err := e.store.Persist(ctx, next); err != nil {
		return State{}, fmt.Errorf("persist ledger: %w", err)
	}

	e.log.Info().
		Str("date", rec.Date.String()).
		Str("day_profit_loss", rec.DayProfitLoss.String()).
		Str("profit_distributed", rec.ProfitDistributed.String()).
		Int("records", next.Len()).
		Msg("record appended")
	e.publish(ctx, events.NewRecordAppended(rec, next.Len()))

	return e.state(ctx)
}

// Delete removes the records at the given indices of the date-descending view.
func (e *Engine) Delete(ctx context.Context, viewIndices []int) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, err := e.store.Load(ctx)
	if err != nil {
		return State{}, err
	}
	next, removed, err := Delete(l, viewIndices)
	if err != nil {
		return State{}, err
	}
	return e.commitDelete(ctx, next, removed)
}

// DeleteRecords removes the selected records by value.
func (e *Engine) DeleteRecords(ctx context.Context, selected []models.Record) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, err := e.store.Load(ctx)
	if err != nil {
		return State{}, err
	}
	next, err := DeleteRecords(l, selected)
	if err != nil {
		return State{}, err
	}
	return e.commitDelete(ctx, next, selected)
}

func (e *Engine) commitDelete(ctx context.Context, next models.Ledger, removed []models.Record) (State, error) {
	if len(removed) == 0 {
		return e.state(ctx)
	}
	if err := e.store.Persist(ctx, next); err != nil {
		return State{}, fmt.Errorf("persist ledger: %w", err)
	}

	e.log.Info().Int("removed", len(removed)).Int("records", next.Len()).Msg("records deleted")
	e.publish(ctx, events.NewRecordsDeleted(removed, next.Len()))

	return e.state(ctx)
}

// state reloads the ledger so callers always see what the store holds.
func (e *Engine) state(ctx context.Context) (State, error) {
	l, err := e.store.Load(ctx)
	if err != nil {
		return State{}, err
	}

	st := State{Ledger: l}
	summary, err := Summarize(l)
	switch {
	case errors.Is(err, models.ErrEmptyLedger):
	case err != nil:
		return State{}, err
	default:
		st.Summary = &summary
	}
	return st, nil
}

// publish reports the change. The store is the source of truth, so a
// failed publish is logged and does not fail the command.
func (e *Engine) publish(ctx context.Context, event events.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		e.log.Warn().Err(err).Str("event", event.Name()).Str("event_id", event.ID()).Msg("publish failed")
	}
}
