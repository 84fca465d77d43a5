package ledger

import (
	"context"

	"pixel-casino/internal/store"
)

// Ledger names the balance mutations the game engine and shop perform, on
// top of the store's atomic primitives.
type Ledger struct {
	Store *store.Store
}

func New(s *store.Store) *Ledger {
	return &Ledger{Store: s}
}

func (l *Ledger) DebitStake(ctx context.Context, accountID, game, roundID string, amount int64) (int64, error) {
	return l.Store.DebitIfSufficient(ctx, accountID, amount, "stake_debit", game, roundID)
}

func (l *Ledger) CreditPayout(ctx context.Context, accountID, game, roundID string, amount int64) (int64, error) {
	return l.Store.Credit(ctx, accountID, amount, "payout_credit", game, roundID)
}

func (l *Ledger) CreditReward(ctx context.Context, accountID, game, roundID string, amount int64) (int64, error) {
	return l.Store.Credit(ctx, accountID, amount, "reward_credit", game, roundID)
}
