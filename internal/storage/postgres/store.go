package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	interfaces "github.com/sheikh-saqib/profit-distribution-tracker/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
)

const Schema = `
CREATE TABLE IF NOT EXISTS ledger_records (
	position INTEGER PRIMARY KEY,
	date DATE NOT NULL,
	day_profit_loss NUMERIC NOT NULL,
	profit_distributed NUMERIC NOT NULL
);`

type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

// Open connects to dsn and makes sure the records table exists.
func Open(ctx context.Context, dsn string) (*PostgresLedgerStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return NewPostgresLedgerStore(db), nil
}

func (p *PostgresLedgerStore) Load(ctx context.Context) (models.Ledger, error) {
	const query = `SELECT position, date, day_profit_loss, profit_distributed
	FROM ledger_records ORDER BY position`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return models.Ledger{}, err
	}

	defer rows.Close()

	var ledger models.Ledger
	for rows.Next() {
		var (
			position int
			rec      models.Record
		)
		if err := rows.Scan(&position, &rec.Date, &rec.DayProfitLoss, &rec.ProfitDistributed); err != nil {
			return models.Ledger{}, &models.StoreCorruptError{Location: "postgres ledger_records", Err: err}
		}
		if err := rec.Validate(); err != nil {
			return models.Ledger{}, &models.StoreCorruptError{Location: "postgres ledger_records", Err: fmt.Errorf("position %d: %w", position, err)}
		}
		ledger.Records = append(ledger.Records, rec)
	}

	if err := rows.Err(); err != nil {
		return models.Ledger{}, err
	}
	return ledger, nil
}

// Persist replaces every row inside one transaction.
func (p *PostgresLedgerStore) Persist(ctx context.Context, ledger models.Ledger) (err error) {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	if _, err = dbTx.ExecContext(ctx, `DELETE FROM ledger_records`); err != nil {
		return err
	}

	const insert = `INSERT INTO ledger_records (position, date, day_profit_loss, profit_distributed)
	VALUES ($1,$2,$3,$4)`

	stmt, err := dbTx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range ledger.Records {
		if _, err = stmt.ExecContext(ctx, i, rec.Date, rec.DayProfitLoss, rec.ProfitDistributed); err != nil {
			return err
		}
	}
	return dbTx.Commit()
}

func (p *PostgresLedgerStore) Close() error {
	return p.db.Close()
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
