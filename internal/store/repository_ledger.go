package store

import (
	"context"

	"twentyone/internal/ledger"
)

func (s *Store) ListEntries(ctx context.Context, f ledger.EntryFilter, limit, offset int) ([]ledger.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	args := append(entryFilterArgs(f), limit, offset)
	rows, err := s.Pool.Query(ctx, `
		SELECT id, user_id, type, amount, ref_type, ref_id, created_at
		FROM ledger_entries
		WHERE ($1::text IS NULL OR user_id = $1)
		  AND ($2::text IS NULL OR ref_id = $2)
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)
		ORDER BY created_at DESC, id DESC
		LIMIT $5 OFFSET $6`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ledger.Entry{}
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Amount, &e.RefType, &e.RefID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
