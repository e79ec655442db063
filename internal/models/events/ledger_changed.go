package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
)

// Event is implemented by every payload the engine publishes.
type Event interface {
	ID() string
	Name() string
}

// RecordAppended is published after an appended record has been persisted.
type RecordAppended struct {
	EventID    string        `json:"event_id"`
	Record     models.Record `json:"record"`
	LedgerSize int           `json:"ledger_size"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func NewRecordAppended(rec models.Record, size int) RecordAppended {
	return RecordAppended{
		EventID:    uuid.New().String(),
		Record:     rec,
		LedgerSize: size,
		OccurredAt: time.Now().UTC(),
	}
}

func (e RecordAppended) ID() string   { return e.EventID }
func (e RecordAppended) Name() string { return "record_appended" }

// RecordsDeleted is published after a deletion has been persisted.
type RecordsDeleted struct {
	EventID    string          `json:"event_id"`
	Removed    []models.Record `json:"removed"`
	LedgerSize int             `json:"ledger_size"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewRecordsDeleted(removed []models.Record, size int) RecordsDeleted {
	return RecordsDeleted{
		EventID:    uuid.New().String(),
		Removed:    removed,
		LedgerSize: size,
		OccurredAt: time.Now().UTC(),
	}
}

func (e RecordsDeleted) ID() string   { return e.EventID }
func (e RecordsDeleted) Name() string { return "records_deleted" }
