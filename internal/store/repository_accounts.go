package store

import (
	"context"

	"twentyone/internal/ledger"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetOrCreateAccount(ctx context.Context, userID string, initial int64) (ledger.Account, error) {
	if _, err := s.Pool.Exec(ctx, `INSERT INTO accounts (user_id, balance) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`, userID, initial); err != nil {
		return ledger.Account{}, err
	}
	var a ledger.Account
	row := s.Pool.QueryRow(ctx, `SELECT user_id, balance, updated_at FROM accounts WHERE user_id = $1`, userID)
	if err := row.Scan(&a.UserID, &a.Balance, &a.UpdatedAt); err != nil {
		return ledger.Account{}, accountErr(err)
	}
	return a, nil
}

func (s *Store) Adjust(ctx context.Context, userID string, delta int64, entryType, refType, refID string) (int64, error) {
	if delta == 0 {
		return 0, ledger.ErrInvalidAmount
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var bal int64
	if err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE`, userID).Scan(&bal); err != nil {
		return 0, accountErr(err)
	}
	newBal := bal + delta
	if newBal < 0 {
		return 0, ledger.ErrInsufficientFunds
	}
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $1, updated_at = now() WHERE user_id = $2`, newBal, userID); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO ledger_entries (id, user_id, type, amount, ref_type, ref_id) VALUES ($1,$2,$3,$4,$5,$6)`,
		ledger.NewID(), userID, entryType, delta, refType, refID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBal, nil
}

func (s *Store) ListAccounts(ctx context.Context, limit, offset int) ([]ledger.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `SELECT user_id, balance, updated_at FROM accounts ORDER BY user_id ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ledger.Account{}
	for rows.Next() {
		var a ledger.Account
		if err := rows.Scan(&a.UserID, &a.Balance, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
