package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"pixel-casino/internal/ledger"
	"pixel-casino/internal/store"
)

// Engine resolves game rounds against the ledger. Rounds are stateless:
// each call debits, draws, credits and returns, with nothing carried between
// requests.
type Engine struct {
	Store  *store.Store
	Ledger *ledger.Ledger
	Rules  Rules

	mu  sync.Mutex
	rnd Rand
}

// Round is one resolved round plus the balance it left behind.
type Round struct {
	RoundID string
	Outcome Outcome
	Balance int64
}

func NewEngine(st *store.Store, led *ledger.Ledger, rules Rules, rnd Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{Store: st, Ledger: led, Rules: rules, rnd: rnd}
}

// PlayJackpot runs one staked reel-match round. The stake is debited before
// the outcome is drawn, so the player's maximum exposure per round is the
// stake no matter where the round fails.
func (e *Engine) PlayJackpot(ctx context.Context, accountID string, bet int64) (*Round, error) {
	return e.playStaked(ctx, accountID, bet, GameJackpot, DrawReels)
}

// PlayCard runs one staked card-draw round, resolved server-side.
func (e *Engine) PlayCard(ctx context.Context, accountID string, bet int64) (*Round, error) {
	return e.playStaked(ctx, accountID, bet, GameCard, DrawCard)
}

func (e *Engine) playStaked(ctx context.Context, accountID string, bet int64, kind string, draw func(Rand, Rules, int64) Outcome) (*Round, error) {
	if bet <= 0 {
		return nil, ErrInvalidStake
	}
	roundID := store.NewID()
	balance, err := e.Ledger.DebitStake(ctx, accountID, kind, roundID, bet)
	if err != nil {
		if errors.Is(err, store.ErrInsufficientBalance) {
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}

	outcome := e.drawLocked(draw, bet)
	if outcome.Won {
		balance, err = e.Ledger.CreditPayout(ctx, accountID, kind, roundID, outcome.Payout)
		if err != nil {
			return nil, err
		}
	}
	_ = e.Store.IncrementPlayCount(ctx, accountID)
	return &Round{RoundID: roundID, Outcome: outcome, Balance: balance}, nil
}

// PlayMemoryMatch credits the flat reward for a client-reported pair match.
// The match itself is not re-validated here; the board lives entirely in the
// client.
func (e *Engine) PlayMemoryMatch(ctx context.Context, accountID string) (*Round, error) {
	roundID := store.NewID()
	balance, err := e.Ledger.CreditReward(ctx, accountID, GameMemory, roundID, e.Rules.MemoryReward)
	if err != nil {
		return nil, err
	}
	_ = e.Store.IncrementPlayCount(ctx, accountID)
	return &Round{
		RoundID: roundID,
		Outcome: Outcome{Game: GameMemory, Won: true, Payout: e.Rules.MemoryReward},
		Balance: balance,
	}, nil
}

// drawLocked serializes access to the shared random source; *rand.Rand is
// not safe for concurrent use.
func (e *Engine) drawLocked(draw func(Rand, Rules, int64) Outcome, bet int64) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return draw(e.rnd, e.Rules, bet)
}
