package config

import "github.com/caarlos0/env/v11"

type CLIConfig struct {
	UserID string `env:"CLI_USER_ID" envDefault:"local"`
	ChatID string `env:"CLI_CHAT_ID" envDefault:"console"`
}

func LoadCLI() (CLIConfig, error) {
	var cfg CLIConfig
	err := env.Parse(&cfg)
	return cfg, err
}
