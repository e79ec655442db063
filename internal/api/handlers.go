package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/ledger"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/report"
)

// Engine is the subset of ledger.Engine the handlers drive.
type Engine interface {
	View(ctx context.Context) (ledger.State, error)
	Append(ctx context.Context, rec models.Record) (ledger.State, error)
	Delete(ctx context.Context, viewIndices []int) (ledger.State, error)
	DeleteRecords(ctx context.Context, selected []models.Record) (ledger.State, error)
}

type Handler struct {
	engine         Engine
	statementTitle string
	log            zerolog.Logger
}

func NewHandler(engine Engine, statementTitle string, log zerolog.Logger) *Handler {
	return &Handler{engine: engine, statementTitle: statementTitle, log: log}
}

// Routes registers every endpoint on a new mux wrapped with access logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("GET /records", h.listRecords)
	mux.HandleFunc("POST /records", h.appendRecord)
	mux.HandleFunc("POST /records/delete", h.deleteRecords)
	mux.HandleFunc("GET /summary", h.summary)
	mux.HandleFunc("GET /statement", h.statement)

	mux.HandleFunc("GET /{$}", h.page)
	mux.HandleFunc("POST /form/append", h.formAppend)
	mux.HandleFunc("POST /form/delete", h.formDelete)

	return h.accessLog(mux)
}

type recordRequest struct {
	Date              string `json:"date"`
	DayProfitLoss     string `json:"day_profit_loss"`
	ProfitDistributed string `json:"profit_distributed"`
}

// UnmarshalJSON accepts amounts as JSON numbers or strings.
func (r *recordRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date              string      `json:"date"`
		DayProfitLoss     json.Number `json:"day_profit_loss"`
		ProfitDistributed json.Number `json:"profit_distributed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Date = raw.Date
	r.DayProfitLoss = raw.DayProfitLoss.String()
	r.ProfitDistributed = raw.ProfitDistributed.String()
	return nil
}

// deleteRequest selects records by value, or by position in the
// date-descending listing. Records wins when both are given.
type deleteRequest struct {
	Records []recordRequest `json:"records"`
	Indices []int           `json:"indices"`
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	st, err := h.engine.View(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	records := st.Ledger.ByDateDesc()
	if records == nil {
		records = []models.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) appendRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := models.NewRecord(req.Date, req.DayProfitLoss, req.ProfitDistributed)
	if err != nil {
		h.writeError(w, err)
		return
	}

	st, err := h.engine.Append(r.Context(), rec)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *Handler) deleteRecords(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var (
		st  ledger.State
		err error
	)
	if len(req.Records) > 0 {
		selected := make([]models.Record, 0, len(req.Records))
		for _, rr := range req.Records {
			rec, err := models.NewRecord(rr.Date, rr.DayProfitLoss, rr.ProfitDistributed)
			if err != nil {
				h.writeError(w, err)
				return
			}
			selected = append(selected, rec)
		}
		st, err = h.engine.DeleteRecords(r.Context(), selected)
	} else {
		st, err = h.engine.Delete(r.Context(), req.Indices)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	st, err := h.engine.View(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if st.Summary == nil {
		h.writeError(w, models.ErrEmptyLedger)
		return
	}
	writeJSON(w, http.StatusOK, st.Summary)
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	st, err := h.engine.View(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if st.Summary == nil {
		h.writeError(w, models.ErrEmptyLedger)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(report.Statement(h.statementTitle, *st.Summary)))
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	var (
		invalid *models.InvalidRecordError
		corrupt *models.StoreCorruptError
	)
	switch {
	case errors.As(err, &invalid), errors.Is(err, models.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrEmptyLedger):
		return http.StatusConflict
	case errors.As(err, &corrupt):
		return http.StatusInternalServerError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}
