package ledger

import (
	"fmt"

	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// shareholders is the fixed number of people distributed profit is split between.
var shareholders = decimal.NewFromInt(3)

// Append returns a new ledger with rec added at the end.
// No ordering or uniqueness is enforced.
func Append(l models.Ledger, rec models.Record) (models.Ledger, error) {
	if err := rec.Validate(); err != nil {
		return l, err
	}
	out := models.Ledger{Records: make([]models.Record, 0, l.Len()+1)}
	out.Records = append(out.Records, l.Records...)
	out.Records = append(out.Records, rec)
	return out, nil
}

// Delete removes the records at the given indices of the date-descending
// view (see models.Ledger.ByDateDesc). Retained records keep insertion order.
// It also returns the removed records.
func Delete(l models.Ledger, viewIndices []int) (models.Ledger, []models.Record, error) {
	positions := l.DescPositions()
	drop := make(map[int]bool, len(viewIndices))
	for _, i := range viewIndices {
		if i < 0 || i >= len(positions) {
			return l, nil, fmt.Errorf("%w: index %d out of range [0,%d)", models.ErrInvalidSelection, i, len(positions))
		}
		drop[positions[i]] = true
	}

	var (
		out     models.Ledger
		removed []models.Record
	)
	for p, rec := range l.Records {
		if drop[p] {
			removed = append(removed, rec)
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out, removed, nil
}

// DeleteRecords removes one stored occurrence for each selected record,
// matching on date and amounts. Selecting a record that is not stored is
// an ErrInvalidSelection.
func DeleteRecords(l models.Ledger, selected []models.Record) (models.Ledger, error) {
	drop := make(map[int]bool, len(selected))
	for _, sel := range selected {
		found := false
		for p, rec := range l.Records {
			if !drop[p] && rec.Equal(sel) {
				drop[p] = true
				found = true
				break
			}
		}
		if !found {
			return l, fmt.Errorf("%w: no stored record %s", models.ErrInvalidSelection, sel.Date)
		}
	}

	var out models.Ledger
	for p, rec := range l.Records {
		if !drop[p] {
			out.Records = append(out.Records, rec)
		}
	}
	return out, nil
}

// Summarize computes the summary metrics of l. It performs no rounding.
func Summarize(l models.Ledger) (models.SummaryReport, error) {
	if l.IsEmpty() {
		return models.SummaryReport{}, models.ErrEmptyLedger
	}

	var s models.SummaryReport
	for _, r := range l.Records {
		s.TotalDayPL = s.TotalDayPL.Add(r.DayProfitLoss)
		s.TotalDistributed = s.TotalDistributed.Add(r.ProfitDistributed)
	}
	s.CumulativeLoss = s.TotalDayPL.Sub(s.TotalDistributed)
	// Distributed minus cumulative loss, i.e. 2*distributed - day P/L.
	s.NetProfit = s.TotalDistributed.Sub(s.CumulativeLoss)
	s.EachPersonTotal = split(s.TotalDistributed)

	s.Latest = l.ByDateDesc()[0]
	if s.Latest.ProfitDistributed.IsPositive() {
		s.LatestAdjusted = s.Latest.DayProfitLoss.Sub(s.Latest.ProfitDistributed)
	}
	s.EachPersonDay = split(s.Latest.ProfitDistributed)
	return s, nil
}

func split(amount decimal.Decimal) decimal.Decimal {
	if amount.IsZero() {
		return decimal.Zero
	}
	return amount.Div(shareholders)
}
