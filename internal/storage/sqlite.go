package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/spice-ledger/internal/codec"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore keeps the ledger in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
// Call Migrate before using it.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("%w: failed to create database directory: %w", common.ErrStoreUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", common.ErrStoreUnavailable, err)
	}

	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %w", common.ErrStoreUnavailable, err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads every transaction in ledger order. Rows that do not hold a known
// kind or a finite amount are skipped and reported.
func (s *SQLiteStore) Load(ctx context.Context) (*codec.ReadResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT position, kind, amount, category, notes, timestamp
		FROM transactions
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query transactions: %w", common.ErrStoreUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	result := &codec.ReadResult{}
	for rows.Next() {
		var (
			position int
			kind     string
			raw      model.Transaction
		)
		if err := rows.Scan(&position, &kind, &raw.Amount, &raw.Category, &raw.Notes, &raw.Timestamp); err != nil {
			return result, fmt.Errorf("%w: failed to scan transaction: %w", common.ErrStoreUnavailable, err)
		}
		raw.Kind = model.Kind(kind)

		// Route the row through the codec so both backends apply the same rules.
		txn, decodeErr := codec.Decode(codec.Encode(raw))
		if decodeErr != nil {
			result.Skipped = append(result.Skipped, &codec.RecordError{
				Line: position,
				Text: codec.Encode(raw),
				Err:  decodeErr,
			})
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("%w: failed to iterate transactions: %w", common.ErrStoreUnavailable, err)
	}

	return result, nil
}

// Save replaces every stored transaction with txns inside one database transaction.
func (s *SQLiteStore) Save(ctx context.Context, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", common.ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("%w: failed to clear transactions: %w", common.ErrStoreUnavailable, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (position, kind, amount, category, notes, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare statement: %w", common.ErrStoreUnavailable, err)
	}
	defer func() { _ = stmt.Close() }()

	for i, txn := range txns {
		if _, err := stmt.ExecContext(ctx,
			i+1,
			string(txn.Kind),
			txn.Amount,
			txn.Category,
			txn.Notes,
			txn.Timestamp,
		); err != nil {
			return fmt.Errorf("%w: failed to insert transaction %d: %w", common.ErrStoreUnavailable, i+1, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO saves (record_count) VALUES (?)`, len(txns)); err != nil {
		return fmt.Errorf("%w: failed to record save: %w", common.ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %w", common.ErrStoreUnavailable, err)
	}
	return nil
}

// SaveCount returns how many saves have been committed to this database.
func (s *SQLiteStore) SaveCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saves`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count saves: %w", err)
	}
	return count, nil
}
