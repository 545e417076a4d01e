package config

import "github.com/caarlos0/env/v11"

type BotConfig struct {
	WSURL   string `env:"WS_URL" envDefault:"ws://localhost:8080/ws"`
	UserID  string `env:"USER_ID" envDefault:"bot"`
	ChatID  string `env:"CHAT_ID" envDefault:"bot-chat"`
	Bet     int64  `env:"BOT_BET" envDefault:"10"`
	Rounds  int    `env:"BOT_ROUNDS" envDefault:"10"`
	StandOn int    `env:"BOT_STAND_ON" envDefault:"17"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
