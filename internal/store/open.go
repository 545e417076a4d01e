package store

import (
	"context"
	"fmt"

	"twentyone/internal/config"
	"twentyone/internal/ledger"
	"twentyone/internal/store/memory"
	"twentyone/internal/store/sqlite"
)

// Open returns the account store selected by cfg.Mode.
func Open(ctx context.Context, cfg config.StorageConfig) (ledger.AccountStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StoragePostgres:
		st, err := New(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return st, nil
	default:
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return st, nil
	}
}
