// Package report turns a ledger state into the statement text, a markdown
// document, and the HTML or terminal renderings of that document.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/ledger"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DisplayDateFormat is how dates appear in tables and selection lists.
const DisplayDateFormat = "02-Jan-2006"

// EmptyMessage is shown instead of a report when there are no records.
const EmptyMessage = "No records yet. Please enter data."

// Metric is one labelled summary value.
type Metric struct {
	Label string
	Value decimal.Decimal
}

// Metrics lists the summary values in display order.
func Metrics(s models.SummaryReport) []Metric {
	return []Metric{
		{"Cumulative Loss", s.CumulativeLoss},
		{"Day Profit/Loss", s.Latest.DayProfitLoss},
		{"Adjusted for Cumulative Loss", s.LatestAdjusted},
		{"Each Person Day Profit", s.EachPersonDay},
		{"Each Person Total Profit", s.EachPersonTotal},
		{"Total Distributed Profit", s.TotalDistributed},
		{"Net Profit", s.NetProfit},
	}
}

// Money formats an amount with two decimals.
func Money(d decimal.Decimal) string { return d.StringFixedBank(2) }

// Whole formats an amount rounded to units.
func Whole(d decimal.Decimal) string { return d.StringFixedBank(0) }

// Statement builds the copyable business statement. Lines end with two
// spaces so markdown-aware chat clients keep the line breaks.
func Statement(title string, s models.SummaryReport) string {
	lines := []string{
		title,
		"Cumulative loss " + Whole(s.CumulativeLoss),
		"Day Loss " + Whole(s.Latest.DayProfitLoss),
		"Adjusted for cum loss " + Whole(s.LatestAdjusted),
		"Profit distributed " + Whole(s.Latest.ProfitDistributed),
		"Each person day profit " + Whole(s.EachPersonDay),
		"Each person total profit " + Whole(s.EachPersonTotal),
		"Distributed Profit " + Whole(s.TotalDistributed),
		"Net Profit " + Whole(s.NetProfit),
	}
	return strings.Join(lines, "  \n") + "\n"
}

// Markdown renders the full report: metrics, statement and the record table.
func Markdown(st ledger.State, title string) string {
	var b strings.Builder

	if st.Summary == nil {
		b.WriteString(EmptyMessage + "\n")
		return b.String()
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	for _, m := range Metrics(*st.Summary) {
		fmt.Fprintf(&b, "| %s | %s |\n", m.Label, Money(m.Value))
	}

	b.WriteString("\n## Statement\n\n```text\n")
	b.WriteString(Statement(title, *st.Summary))
	b.WriteString("```\n\n")

	b.WriteString("## Records\n\n")
	b.WriteString(RecordsTable(st.Ledger))
	return b.String()
}

// RecordsTable renders the records newest first. The # column is the index
// accepted by delete commands.
func RecordsTable(l models.Ledger) string {
	var b strings.Builder
	b.WriteString("| # | Date | Day Profit/Loss | Profit Distributed |\n|---:|---|---:|---:|\n")
	for i, r := range l.ByDateDesc() {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n",
			i, r.Date.Format(DisplayDateFormat), Money(r.DayProfitLoss), Money(r.ProfitDistributed))
	}
	return b.String()
}

// HTML converts a markdown report to an HTML fragment.
func HTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders a markdown report for a terminal of the given width.
func Terminal(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("terminal renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render terminal: %w", err)
	}
	return out, nil
}
