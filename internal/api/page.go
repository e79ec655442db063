package api

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/report"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Profit Distribution Tracker</title>
</head>
<body>
<h1>Profit Distribution Tracker</h1>
{{with .Flash}}<p class="flash">{{.}}</p>{{end}}

<h2>Enter Today's Record</h2>
<form method="post" action="/form/append">
  <label>Date <input type="date" name="date" value="{{.Today}}" required></label>
  <label>Day's Profit/Loss <input type="number" name="day_profit_loss" step="0.01" value="0.00" required></label>
  <label>Distributed Profit <input type="number" name="profit_distributed" step="0.01" value="0.00" required></label>
  <button type="submit">Submit</button>
</form>

{{if .Rows}}
<h2>Delete Old Records</h2>
<form method="post" action="/form/delete">
  {{range .Rows}}
  <label><input type="checkbox" name="record" value="{{.Value}}"> {{.Label}}</label><br>
  {{end}}
  <button type="submit">Delete Selected</button>
</form>
{{end}}

{{.Report}}
</body>
</html>
`))

type pageRow struct {
	Value string
	Label string
}

// selectionValue identifies a record in the delete form by its contents,
// so a submit still targets the same record after other writes.
func selectionValue(rec models.Record) string {
	return strings.Join([]string{
		rec.Date.String(),
		rec.DayProfitLoss.String(),
		rec.ProfitDistributed.String(),
	}, "|")
}

func parseSelection(v string) (models.Record, error) {
	parts := strings.Split(v, "|")
	if len(parts) != 3 {
		return models.Record{}, fmt.Errorf("%w: %q", models.ErrInvalidSelection, v)
	}
	return models.NewRecord(parts[0], parts[1], parts[2])
}

type pageData struct {
	Flash  string
	Today  string
	Rows   []pageRow
	Report template.HTML
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	st, err := h.engine.View(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	html, err := report.HTML(report.Markdown(st, h.statementTitle))
	if err != nil {
		h.writeError(w, err)
		return
	}

	data := pageData{
		Flash:  r.URL.Query().Get("flash"),
		Today:  models.Today().String(),
		Report: template.HTML(html),
	}
	for _, rec := range st.Ledger.ByDateDesc() {
		data.Rows = append(data.Rows, pageRow{
			Value: selectionValue(rec),
			Label: rec.Date.Format(report.DisplayDateFormat) +
				" | P/L: " + report.Money(rec.DayProfitLoss) +
				", Dist: " + report.Money(rec.ProfitDistributed),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		h.log.Error().Err(err).Msg("render page")
	}
}

func (h *Handler) formAppend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rec, err := models.NewRecord(r.PostForm.Get("date"), r.PostForm.Get("day_profit_loss"), r.PostForm.Get("profit_distributed"))
	if err != nil {
		redirectFlash(w, r, err.Error())
		return
	}
	if _, err := h.engine.Append(r.Context(), rec); err != nil {
		redirectFlash(w, r, err.Error())
		return
	}
	redirectFlash(w, r, "Record saved!")
}

func (h *Handler) formDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var selected []models.Record
	for _, v := range r.PostForm["record"] {
		rec, err := parseSelection(v)
		if err != nil {
			redirectFlash(w, r, err.Error())
			return
		}
		selected = append(selected, rec)
	}
	if len(selected) == 0 {
		redirectFlash(w, r, "Nothing selected.")
		return
	}
	if _, err := h.engine.DeleteRecords(r.Context(), selected); err != nil {
		redirectFlash(w, r, err.Error())
		return
	}
	redirectFlash(w, r, "Deleted selected rows.")
}

func redirectFlash(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?flash="+url.QueryEscape(msg), http.StatusSeeOther)
}
