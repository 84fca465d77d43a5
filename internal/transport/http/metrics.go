package httptransport

import "expvar"

var (
	gameRoundsTotal        = expvar.NewInt("game_rounds_total")
	gameWinsTotal          = expvar.NewInt("game_wins_total")
	insufficientFundsTotal = expvar.NewInt("insufficient_funds_total")
	purchasesTotal         = expvar.NewInt("purchases_total")
)
