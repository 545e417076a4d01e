package store

import (
	"errors"
	"strings"
	"time"

	"twentyone/internal/ledger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// entryFilterArgs renders f as the four nullable parameters of the
// ListEntries query. Blank ids and nil bounds become SQL NULL so the
// matching predicate is skipped.
func entryFilterArgs(f ledger.EntryFilter) []any {
	return []any{
		optText(f.UserID),
		optText(f.RefID),
		optTime(f.From),
		optTime(f.To),
	}
}

func optText(v string) pgtype.Text {
	v = strings.TrimSpace(v)
	return pgtype.Text{String: v, Valid: v != ""}
}

func optTime(v *time.Time) pgtype.Timestamptz {
	if v == nil || v.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: v.UTC(), Valid: true}
}

func accountErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.ErrAccountNotFound
	}
	return err
}
