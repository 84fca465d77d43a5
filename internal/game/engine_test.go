package game

import (
	"context"
	"errors"
	"testing"

	"pixel-casino/internal/config"
	"pixel-casino/internal/ledger"
	"pixel-casino/internal/store"
	"pixel-casino/internal/testutil"
)

func newTestEngine(t *testing.T, rnd Rand) (*Engine, *store.Store, context.Context, func()) {
	t.Helper()
	st, cleanup := testutil.OpenTestStore(t)
	led := ledger.New(st)
	return NewEngine(st, led, RulesFromConfig(config.GameConfig{}), rnd), st, context.Background(), cleanup
}

func TestPlayJackpotWin(t *testing.T) {
	eng, st, ctx, cleanup := newTestEngine(t, &scriptedRand{seq: []int{1, 1, 1}})
	defer cleanup()

	acc, _, err := st.GetOrCreateAccount(ctx, "p", "P", 100)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	round, err := eng.PlayJackpot(ctx, acc.ID, 30)
	if err != nil {
		t.Fatalf("play jackpot: %v", err)
	}
	if !round.Outcome.Won {
		t.Fatalf("scripted triple match must win: %+v", round.Outcome)
	}
	// 100 - 30 stake + 90 payout.
	if round.Balance != 160 {
		t.Fatalf("expected balance 160, got %d", round.Balance)
	}

	entries, err := st.ListLedgerEntries(ctx, store.LedgerFilter{AccountID: acc.ID, RefType: GameJackpot}, 10, 0)
	if err != nil {
		t.Fatalf("list ledger: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected stake and payout entries, got %+v", entries)
	}
	for _, e := range entries {
		if e.RefID != round.RoundID {
			t.Fatalf("ledger entry not tagged with round id: %+v", e)
		}
	}

	fresh, err := st.GetAccountByID(ctx, acc.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if fresh.PlayCount != 1 {
		t.Fatalf("expected play count 1, got %d", fresh.PlayCount)
	}
}

func TestPlayJackpotLossKeepsStakeDebited(t *testing.T) {
	eng, st, ctx, cleanup := newTestEngine(t, &scriptedRand{seq: []int{0, 1, 2}})
	defer cleanup()

	acc, _, err := st.GetOrCreateAccount(ctx, "p", "P", 100)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	round, err := eng.PlayJackpot(ctx, acc.ID, 30)
	if err != nil {
		t.Fatalf("play jackpot: %v", err)
	}
	if round.Outcome.Won {
		t.Fatalf("scripted mixed reels must lose: %+v", round.Outcome)
	}
	if round.Balance != 70 {
		t.Fatalf("expected balance 70, got %d", round.Balance)
	}
}

func TestPlayStakedRejectsBadStake(t *testing.T) {
	eng, st, ctx, cleanup := newTestEngine(t, &scriptedRand{seq: []int{0}})
	defer cleanup()

	acc, _, err := st.GetOrCreateAccount(ctx, "p", "P", 100)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	for _, bet := range []int64{0, -5} {
		if _, err := eng.PlayJackpot(ctx, acc.ID, bet); !errors.Is(err, ErrInvalidStake) {
			t.Fatalf("bet %d: expected ErrInvalidStake, got %v", bet, err)
		}
	}
	fresh, err := st.GetAccountByID(ctx, acc.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if fresh.Balance != 100 {
		t.Fatalf("rejected stakes must not touch the balance, got %d", fresh.Balance)
	}
}

func TestPlayStakedInsufficientFunds(t *testing.T) {
	eng, st, ctx, cleanup := newTestEngine(t, &scriptedRand{seq: []int{1, 1, 1}})
	defer cleanup()

	acc, _, err := st.GetOrCreateAccount(ctx, "p", "P", 20)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if _, err := eng.PlayJackpot(ctx, acc.ID, 50); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	fresh, err := st.GetAccountByID(ctx, acc.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if fresh.Balance != 20 {
		t.Fatalf("failed round must leave the balance unchanged, got %d", fresh.Balance)
	}
	if fresh.PlayCount != 0 {
		t.Fatalf("failed round must not count as played, got %d", fresh.PlayCount)
	}
}

func TestPlayCardResolvedServerSide(t *testing.T) {
	eng, st, ctx, cleanup := newTestEngine(t, &scriptedRand{seq: []int{12}})
	defer cleanup()

	acc, _, err := st.GetOrCreateAccount(ctx, "p", "P", 100)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	round, err := eng.PlayCard(ctx, acc.ID, 25)
	if err != nil {
		t.Fatalf("play card: %v", err)
	}
	if !round.Outcome.Won || round.Outcome.Symbols[0] != "13" {
		t.Fatalf("scripted rank 13 must win: %+v", round.Outcome)
	}
	// 100 - 25 stake + 50 payout.
	if round.Balance != 125 {
		t.Fatalf("expected balance 125, got %d", round.Balance)
	}
}

func TestPlayMemoryMatchFlatReward(t *testing.T) {
	eng, st, ctx, cleanup := newTestEngine(t, nil)
	defer cleanup()

	acc, _, err := st.GetOrCreateAccount(ctx, "p", "P", 100)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	round, err := eng.PlayMemoryMatch(ctx, acc.ID)
	if err != nil {
		t.Fatalf("play memory: %v", err)
	}
	if round.Balance != 110 {
		t.Fatalf("expected balance 110, got %d", round.Balance)
	}
	if round.Outcome.Payout != 10 || !round.Outcome.Won {
		t.Fatalf("unexpected outcome: %+v", round.Outcome)
	}

	entries, err := st.ListLedgerEntries(ctx, store.LedgerFilter{AccountID: acc.ID, Type: "reward_credit"}, 10, 0)
	if err != nil {
		t.Fatalf("list ledger: %v", err)
	}
	if len(entries) != 1 || entries[0].Amount != 10 {
		t.Fatalf("expected one reward_credit of 10, got %+v", entries)
	}
}
