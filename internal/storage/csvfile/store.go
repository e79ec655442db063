package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	interfaces "github.com/sheikh-saqib/profit-distribution-tracker/internal/interfaces"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Header is the first row of every store file, in column order.
var Header = []string{"Date", "DayProfitLoss", "ProfitDistributed"}

// Store persists the ledger as a comma separated file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the whole file. A missing or zero-byte file is an empty ledger.
func (s *Store) Load(ctx context.Context) (models.Ledger, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.Ledger{}, nil
	}
	if err != nil {
		return models.Ledger{}, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	return s.decode(f)
}

func (s *Store) decode(r io.Reader) (models.Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err == io.EOF {
		return models.Ledger{}, nil
	}
	if err != nil {
		return models.Ledger{}, s.corrupt(err)
	}
	// Tolerate a UTF-8 BOM left by spreadsheet exports.
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}
	if !slices.Equal(header, Header) {
		return models.Ledger{}, &models.StoreCorruptError{
			Location: s.path,
			Line:     1,
			Err:      fmt.Errorf("header %v, want %v", header, Header),
		}
	}

	var ledger models.Ledger
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Ledger{}, s.corrupt(err)
		}

		rec, err := parseRow(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return models.Ledger{}, &models.StoreCorruptError{Location: s.path, Line: line, Err: err}
		}
		ledger.Records = append(ledger.Records, rec)
	}
	return ledger, nil
}

func parseRow(row []string) (models.Record, error) {
	date, err := models.ParseDate(row[0])
	if err != nil {
		return models.Record{}, err
	}
	pl, err := parseAmount(row[1])
	if err != nil {
		return models.Record{}, fmt.Errorf("DayProfitLoss: %w", err)
	}
	dist, err := parseAmount(row[2])
	if err != nil {
		return models.Record{}, fmt.Errorf("ProfitDistributed: %w", err)
	}
	return models.Record{Date: date, DayProfitLoss: pl, ProfitDistributed: dist}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d, models.CheckAmount(d)
}

func (s *Store) corrupt(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &models.StoreCorruptError{Location: s.path, Line: pe.Line, Err: pe.Err}
	}
	return &models.StoreCorruptError{Location: s.path, Err: err}
}

// Persist writes the ledger to a temporary file next to the store and
// renames it into place, so a failed write leaves the previous file intact.
func (s *Store) Persist(ctx context.Context, ledger models.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = Encode(tmp, ledger); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync store: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod store: %w", err)
	}
	if err = os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Encode writes the header and every record in insertion order.
// It stops at the first record that fails validation.
func Encode(w io.Writer, ledger models.Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i, r := range ledger.Records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		err := cw.Write([]string{
			r.Date.String(),
			r.DayProfitLoss.String(),
			r.ProfitDistributed.String(),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Store) Close() error { return nil }

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

var _ interfaces.LedgerStore = (*Store)(nil)
