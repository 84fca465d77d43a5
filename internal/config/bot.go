package config

import "github.com/caarlos0/env/v11"

type BotConfig struct {
	BaseURL     string `env:"CASINO_URL" envDefault:"http://localhost:8080"`
	PlayerKey   string `env:"PLAYER_KEY" envDefault:"bot"`
	DisplayName string `env:"DISPLAY_NAME" envDefault:"Bot"`
	Rounds      int    `env:"ROUNDS" envDefault:"20"`
	MaxBet      int64  `env:"MAX_BET" envDefault:"25"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
