package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	interfaces "github.com/sheikh-saqib/profit-distribution-tracker/internal/interfaces"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
)

// Amounts are TEXT so SQLite's numeric affinity cannot turn them into floats.
const Schema = `
CREATE TABLE IF NOT EXISTS ledger_records (
	position INTEGER PRIMARY KEY,
	date TEXT NOT NULL,
	day_profit_loss TEXT NOT NULL,
	profit_distributed TEXT NOT NULL
);
`

type Store struct {
	db   *sql.DB
	path string
}

func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

func (s *Store) Load(ctx context.Context) (models.Ledger, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, date, day_profit_loss, profit_distributed
		FROM ledger_records
		ORDER BY position ASC`)
	if err != nil {
		return models.Ledger{}, err
	}
	defer rows.Close()

	var out models.Ledger
	for rows.Next() {
		var (
			position int
			rec      models.Record
		)
		if err := rows.Scan(
			&position,
			&rec.Date,
			&rec.DayProfitLoss,
			&rec.ProfitDistributed,
		); err != nil {
			return models.Ledger{}, &models.StoreCorruptError{Location: s.path, Err: err}
		}
		if err := rec.Validate(); err != nil {
			return models.Ledger{}, &models.StoreCorruptError{Location: s.path, Err: fmt.Errorf("position %d: %w", position, err)}
		}
		out.Records = append(out.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return models.Ledger{}, err
	}
	return out, nil
}

func (s *Store) Persist(ctx context.Context, ledger models.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_records`); err != nil {
		return err
	}
	for i, rec := range ledger.Records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ledger_records
			(position, date, day_profit_loss, profit_distributed)
			VALUES (?, ?, ?, ?)`,
			i, rec.Date, rec.DayProfitLoss, rec.ProfitDistributed,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}

var _ interfaces.LedgerStore = (*Store)(nil)
