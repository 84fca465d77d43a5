package game

import "pixel-casino/internal/config"

// Game kinds, used as ledger ref types and event payload fields.
const (
	GameJackpot = "jackpot"
	GameCard    = "card"
	GameMemory  = "memory"
)

const cardMaxRank = 13

// Rules holds the configurable payout parameters. The engine itself fixes
// only the round protocol; symbol alphabet, reel count and multipliers come
// from configuration.
type Rules struct {
	ReelSymbols       []string
	ReelCount         int
	JackpotMultiplier int64

	CardWinThreshold int
	CardMultiplier   int64

	MemoryReward int64
}

func RulesFromConfig(cfg config.GameConfig) Rules {
	r := Rules{
		ReelSymbols:       cfg.ReelSymbols,
		ReelCount:         cfg.ReelCount,
		JackpotMultiplier: cfg.JackpotMultiplier,
		CardWinThreshold:  cfg.CardWinThreshold,
		CardMultiplier:    cfg.CardMultiplier,
		MemoryReward:      cfg.MemoryReward,
	}
	if len(r.ReelSymbols) == 0 {
		r.ReelSymbols = []string{"strawberry", "cherry", "star", "gem", "candy"}
	}
	if r.ReelCount < 1 {
		r.ReelCount = 3
	}
	if r.JackpotMultiplier < 1 {
		r.JackpotMultiplier = 3
	}
	if r.CardWinThreshold < 1 || r.CardWinThreshold >= cardMaxRank {
		r.CardWinThreshold = 10
	}
	if r.CardMultiplier < 1 {
		r.CardMultiplier = 2
	}
	if r.MemoryReward < 1 {
		r.MemoryReward = 10
	}
	return r
}
