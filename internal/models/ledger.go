package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Ledger is the full collection of records in insertion order.
type Ledger struct {
	Records []Record `json:"records"`
}

// Len returns the number of records.
func (l Ledger) Len() int { return len(l.Records) }

// IsEmpty reports whether the ledger holds no records.
func (l Ledger) IsEmpty() bool { return len(l.Records) == 0 }

// Clone returns a ledger backed by its own slice.
func (l Ledger) Clone() Ledger {
	records := make([]Record, len(l.Records))
	copy(records, l.Records)
	return Ledger{Records: records}
}

// ByDateDesc returns the records sorted by date, newest first.
// Records sharing a date keep their insertion order.
func (l Ledger) ByDateDesc() []Record {
	positions := l.DescPositions()
	out := make([]Record, len(positions))
	for i, p := range positions {
		out[i] = l.Records[p]
	}
	return out
}

// DescPositions maps each index of the date-descending view to the
// record's position in insertion order.
func (l Ledger) DescPositions() []int {
	positions := make([]int, len(l.Records))
	for i := range positions {
		positions[i] = i
	}
	sort.SliceStable(positions, func(i, j int) bool {
		return l.Records[positions[i]].Date.After(l.Records[positions[j]].Date)
	})
	return positions
}

// SummaryReport holds the metrics derived from a ledger snapshot.
type SummaryReport struct {
	TotalDayPL       decimal.Decimal `json:"total_day_pl"`
	TotalDistributed decimal.Decimal `json:"total_distributed"`
	CumulativeLoss   decimal.Decimal `json:"cumulative_loss"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	EachPersonTotal  decimal.Decimal `json:"each_person_total"`
	Latest           Record          `json:"latest"`
	LatestAdjusted   decimal.Decimal `json:"latest_adjusted"`
	EachPersonDay    decimal.Decimal `json:"each_person_day"`
}
