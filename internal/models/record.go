package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Record is one dated profit/loss entry.
type Record struct {
	Date              Date            `json:"date"`
	DayProfitLoss     decimal.Decimal `json:"day_profit_loss"`     // raw trading result, signed
	ProfitDistributed decimal.Decimal `json:"profit_distributed"` // portion of the result paid out
}

// NewRecord parses the three submitted fields into a Record.
// Amounts must be finite decimal text; NaN and infinities are rejected.
func NewRecord(date, dayProfitLoss, profitDistributed string) (Record, error) {
	d, err := ParseDate(strings.TrimSpace(date))
	if err != nil {
		return Record{}, &InvalidRecordError{Field: "date", Value: date, Err: err}
	}
	pl, err := ParseAmount("day_profit_loss", dayProfitLoss)
	if err != nil {
		return Record{}, err
	}
	dist, err := ParseAmount("profit_distributed", profitDistributed)
	if err != nil {
		return Record{}, err
	}
	return Record{Date: d, DayProfitLoss: pl, ProfitDistributed: dist}, nil
}

// Bounds on accepted amounts. Anything larger or more precise is not a
// plausible day's result and would make formatting unbounded.
const (
	MaxAmountDigits   = 30
	MaxAmountExponent = 20
)

// CheckAmount reports whether d is within the accepted magnitude and precision.
func CheckAmount(d decimal.Decimal) error {
	if exp := d.Exponent(); exp > MaxAmountExponent || exp < -MaxAmountExponent {
		return fmt.Errorf("exponent %d outside [-%d, %d]", exp, MaxAmountExponent, MaxAmountExponent)
	}
	if n := d.NumDigits(); n > MaxAmountDigits {
		return fmt.Errorf("%d significant digits, max %d", n, MaxAmountDigits)
	}
	return nil
}

// ParseAmount parses a decimal amount for the named field.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &InvalidRecordError{Field: field, Value: s, Err: errors.New("not a finite decimal")}
	}
	if err := CheckAmount(v); err != nil {
		return decimal.Zero, &InvalidRecordError{Field: field, Value: s, Err: err}
	}
	return v, nil
}

// Validate checks the record can be appended.
func (r Record) Validate() error {
	if r.Date.IsZero() {
		return &InvalidRecordError{Field: "date", Value: "", Err: errors.New("date is required")}
	}
	if err := CheckAmount(r.DayProfitLoss); err != nil {
		return &InvalidRecordError{Field: "day_profit_loss", Err: err}
	}
	if err := CheckAmount(r.ProfitDistributed); err != nil {
		return &InvalidRecordError{Field: "profit_distributed", Err: err}
	}
	return nil
}

// Equal reports whether two records carry the same date and amounts.
func (r Record) Equal(o Record) bool {
	return r.Date == o.Date &&
		r.DayProfitLoss.Equal(o.DayProfitLoss) &&
		r.ProfitDistributed.Equal(o.ProfitDistributed)
}
