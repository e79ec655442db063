package models

import (
	"errors"
	"fmt"
)

// ErrEmptyLedger is returned when a summary is requested for a ledger with no records.
var ErrEmptyLedger = errors.New("ledger has no records")

// ErrInvalidSelection is returned when a delete selection does not match the ledger.
var ErrInvalidSelection = errors.New("invalid delete selection")

// StoreCorruptError reports a persisted store that exists but does not
// parse into the record schema.
type StoreCorruptError struct {
	Location string // file path or table name
	Line     int    // 1-based line of the offending row, 0 when not applicable
	Err      error
}

func (e *StoreCorruptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("store %s is corrupt at line %d: %v", e.Location, e.Line, e.Err)
	}
	return fmt.Sprintf("store %s is corrupt: %v", e.Location, e.Err)
}

func (e *StoreCorruptError) Unwrap() error { return e.Err }

// InvalidRecordError reports a submitted record rejected before any mutation.
type InvalidRecordError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidRecordError) Unwrap() error { return e.Err }
