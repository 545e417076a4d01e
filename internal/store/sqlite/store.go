package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"twentyone/internal/ledger"

	_ "modernc.org/sqlite"
)

var _ ledger.AccountStore = (*Store)(nil)

// Store keeps accounts in a single SQLite file. One open connection
// serializes every transaction.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS accounts (
    user_id TEXT PRIMARY KEY,
    balance INTEGER NOT NULL CHECK (balance >= 0),
    updated_at_ms INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS ledger_entries (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES accounts(user_id),
    type TEXT NOT NULL,
    amount INTEGER NOT NULL,
    ref_type TEXT NOT NULL,
    ref_id TEXT NOT NULL,
    created_at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ledger_entries_user_created ON ledger_entries (user_id, created_at_ms DESC);
`)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) GetOrCreateAccount(ctx context.Context, userID string, initial int64) (ledger.Account, error) {
	nowMs := time.Now().UTC().UnixMilli()
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO accounts (user_id, balance, updated_at_ms) VALUES (?, ?, ?)
ON CONFLICT (user_id) DO NOTHING
`, userID, initial, nowMs); err != nil {
		return ledger.Account{}, err
	}
	var (
		a         ledger.Account
		updatedMs int64
	)
	row := s.db.QueryRowContext(ctx, `SELECT user_id, balance, updated_at_ms FROM accounts WHERE user_id = ?`, userID)
	if err := row.Scan(&a.UserID, &a.Balance, &updatedMs); err != nil {
		return ledger.Account{}, mapNotFound(err)
	}
	a.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return a, nil
}

func (s *Store) Adjust(ctx context.Context, userID string, delta int64, entryType, refType, refID string) (int64, error) {
	if delta == 0 {
		return 0, ledger.ErrInvalidAmount
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var bal int64
	if err := tx.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE user_id = ?`, userID).Scan(&bal); err != nil {
		return 0, mapNotFound(err)
	}
	newBal := bal + delta
	if newBal < 0 {
		return 0, ledger.ErrInsufficientFunds
	}
	nowMs := time.Now().UTC().UnixMilli()
	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET balance = ?, updated_at_ms = ? WHERE user_id = ?`, newBal, nowMs, userID); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO ledger_entries (id, user_id, type, amount, ref_type, ref_id, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, ledger.NewID(), userID, entryType, delta, refType, refID, nowMs); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newBal, nil
}

func (s *Store) ListAccounts(ctx context.Context, limit, offset int) ([]ledger.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT user_id, balance, updated_at_ms FROM accounts ORDER BY user_id ASC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ledger.Account{}
	for rows.Next() {
		var (
			a         ledger.Account
			updatedMs int64
		)
		if err := rows.Scan(&a.UserID, &a.Balance, &updatedMs); err != nil {
			return nil, err
		}
		a.UpdatedAt = time.UnixMilli(updatedMs).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) ListEntries(ctx context.Context, f ledger.EntryFilter, limit, offset int) ([]ledger.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, type, amount, ref_type, ref_id, created_at_ms
FROM ledger_entries
WHERE (? = '' OR user_id = ?)
  AND (? = '' OR ref_id = ?)
  AND (? = 0 OR created_at_ms >= ?)
  AND (? = 0 OR created_at_ms <= ?)
ORDER BY created_at_ms DESC, id DESC
LIMIT ? OFFSET ?
`, f.UserID, f.UserID, f.RefID, f.RefID, msOrZero(f.From), msOrZero(f.From), msOrZero(f.To), msOrZero(f.To), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ledger.Entry{}
	for rows.Next() {
		var (
			e         ledger.Entry
			createdMs int64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Amount, &e.RefType, &e.RefID, &createdMs); err != nil {
			return nil, err
		}
		e.CreatedAt = time.UnixMilli(createdMs).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func msOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UTC().UnixMilli()
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.ErrAccountNotFound
	}
	return err
}
