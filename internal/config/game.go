package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type GameConfig struct {
	StartBalance    int64         `env:"START_BALANCE" envDefault:"1000"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL" envDefault:"1m"`
}

func LoadGame() (GameConfig, error) {
	var cfg GameConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if cfg.StartBalance < 0 {
		return cfg, fmt.Errorf("START_BALANCE must not be negative")
	}
	return cfg, nil
}
