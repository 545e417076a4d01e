package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// LogConfig drives logging.Init and the per-request HTTP log.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`

	// File, when set, receives a copy of stdout and is rotated to File+".1"
	// once it grows past MaxMB.
	File  string `env:"LOG_FILE"`
	MaxMB int    `env:"LOG_MAX_MB" envDefault:"10"`

	// HTTPBodyMaxBytes caps request and response bodies attached to admin
	// request logs. Zero disables body capture.
	HTTPBodyMaxBytes int `env:"LOG_HTTP_BODY_MAX_BYTES" envDefault:"4096"`
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	cfg.Level = strings.ToLower(strings.TrimSpace(cfg.Level))
	if cfg.MaxMB <= 0 {
		return cfg, fmt.Errorf("LOG_MAX_MB must be positive, got %d", cfg.MaxMB)
	}
	if cfg.HTTPBodyMaxBytes < 0 {
		return cfg, fmt.Errorf("LOG_HTTP_BODY_MAX_BYTES must not be negative, got %d", cfg.HTTPBodyMaxBytes)
	}
	return cfg, nil
}
