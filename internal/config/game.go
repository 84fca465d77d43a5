package config

import "github.com/caarlos0/env/v11"

type GameConfig struct {
	ReelSymbols       []string `env:"REEL_SYMBOLS" envDefault:"strawberry,cherry,star,gem,candy" envSeparator:","`
	ReelCount         int      `env:"REEL_COUNT" envDefault:"3"`
	JackpotMultiplier int64    `env:"JACKPOT_MULTIPLIER" envDefault:"3"`

	CardWinThreshold int   `env:"CARD_WIN_THRESHOLD" envDefault:"10"`
	CardMultiplier   int64 `env:"CARD_MULTIPLIER" envDefault:"2"`

	MemoryReward int64 `env:"MEMORY_REWARD" envDefault:"10"`
}

func LoadGame() (GameConfig, error) {
	var cfg GameConfig
	err := env.Parse(&cfg)
	return cfg, err
}
