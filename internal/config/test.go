package config

import "github.com/caarlos0/env/v11"

// IntegrationConfig points integration tests at real backends. A blank
// field means tests needing that backend skip themselves.
type IntegrationConfig struct {
	PostgresDSN string `env:"TEST_POSTGRES_DSN"`
	RedisURL    string `env:"TEST_REDIS_URL"`
}

func LoadIntegration() (IntegrationConfig, error) {
	var cfg IntegrationConfig
	err := env.Parse(&cfg)
	return cfg, err
}
