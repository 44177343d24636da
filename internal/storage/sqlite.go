// Package storage persists extracted transactions to SQLite so downstream
// consumers (categorizer, reporting) can pick them up later.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rbrtjns90/statement-organizer/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage stores extraction results in a local SQLite database.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage opens (creating if needed) the database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStorage{db: db, dbPath: dbPath}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS transactions (
			hash        TEXT PRIMARY KEY,
			date        TEXT,
			date_text   TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL,
			amount      TEXT NOT NULL,
			balance     TEXT,
			type        TEXT NOT NULL DEFAULT '',
			page        INTEGER NOT NULL,
			raw         TEXT NOT NULL,
			created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveTransactions inserts the given records, silently skipping hashes that
// are already stored.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, txns []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			hash, date, date_text, description, amount, balance, type, page, raw
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range txns {
		var dateStr any
		if !t.Date.IsZero() {
			dateStr = t.Date.Format("2006-01-02")
		}
		var balanceStr any
		if t.Balance != nil {
			balanceStr = t.Balance.StringFixed(2)
		}
		if _, err := stmt.ExecContext(ctx,
			t.Hash, dateStr, t.DateText, t.Description,
			t.Amount.StringFixed(2), balanceStr, t.Type, t.Page, t.Raw,
		); err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}
	}

	return tx.Commit()
}

// ListTransactions returns all stored records ordered by page, then date.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, date, date_text, description, amount, balance, type, page, raw
		FROM transactions
		ORDER BY page, date, hash
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var dateStr, balanceStr sql.NullString
		var amountStr string

		if err := rows.Scan(&t.Hash, &dateStr, &t.DateText, &t.Description,
			&amountStr, &balanceStr, &t.Type, &t.Page, &t.Raw); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if dateStr.Valid {
			if parsed, err := time.Parse("2006-01-02", dateStr.String); err == nil {
				t.Date = parsed
			}
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount for %s: %w", t.Hash, err)
		}
		t.Amount = amount
		if balanceStr.Valid {
			if balance, err := decimal.NewFromString(balanceStr.String); err == nil {
				t.Balance = &balance
			}
		}

		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return txns, nil
}
