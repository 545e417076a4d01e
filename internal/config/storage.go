package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type StorageConfig struct {
	Mode        string `env:"STORAGE_MODE" envDefault:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"blackjack.db"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	PostgresMaxConns int32 `env:"POSTGRES_MAX_CONNS" envDefault:"8"`
}

func LoadStorage() (StorageConfig, error) {
	var cfg StorageConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c StorageConfig) Validate() error {
	switch c.Mode {
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for storage mode %q", c.Mode)
		}
	case StoragePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for storage mode %q", c.Mode)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_MODE %q", c.Mode)
	}
	return nil
}
