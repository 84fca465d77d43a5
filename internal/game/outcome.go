package game

import "strconv"

// Rand is the source of draws. *math/rand.Rand satisfies it; tests inject a
// fixed sequence to make outcomes deterministic.
type Rand interface {
	Intn(n int) int
}

// Outcome is the resolved result of one round. It is reported to the caller
// and the event sink, then discarded; it is not domain state.
type Outcome struct {
	Game    string   `json:"game"`
	Stake   int64    `json:"stake"`
	Symbols []string `json:"symbols"`
	Won     bool     `json:"won"`
	Payout  int64    `json:"payout"`
}

// DrawReels draws ReelCount symbols i.i.d. uniformly from the symbol
// alphabet. The round wins iff every reel shows the same symbol.
func DrawReels(rnd Rand, rules Rules, stake int64) Outcome {
	symbols := make([]string, rules.ReelCount)
	for i := range symbols {
		symbols[i] = rules.ReelSymbols[rnd.Intn(len(rules.ReelSymbols))]
	}
	won := true
	for _, s := range symbols[1:] {
		if s != symbols[0] {
			won = false
			break
		}
	}
	out := Outcome{Game: GameJackpot, Stake: stake, Symbols: symbols, Won: won}
	if won {
		out.Payout = stake * rules.JackpotMultiplier
	}
	return out
}

// DrawCard draws one rank uniformly from 1..13. The round wins iff the rank
// exceeds the configured threshold.
func DrawCard(rnd Rand, rules Rules, stake int64) Outcome {
	rank := rnd.Intn(cardMaxRank) + 1
	won := rank > rules.CardWinThreshold
	out := Outcome{
		Game:    GameCard,
		Stake:   stake,
		Symbols: []string{strconv.Itoa(rank)},
		Won:     won,
	}
	if won {
		out.Payout = stake * rules.CardMultiplier
	}
	return out
}
