package store

import (
	"context"
	"fmt"
	"time"

	"twentyone/internal/ledger"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ledger.AccountStore = (*Store)(nil)

// Store keeps accounts and ledger entries in Postgres.
type Store struct {
	Pool *pgxpool.Pool
}

// New connects to dsn and verifies the connection. maxConns <= 0 keeps the
// pgxpool default.
func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns > 0 {
		pcfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	st := &Store{Pool: pool}
	if err := st.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return st, nil
}

func (s *Store) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Pool.Ping(ctx)
}
