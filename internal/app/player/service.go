package player

import (
	"context"
	"encoding/json"
	"errors"

	"pixel-casino/internal/game"
	"pixel-casino/internal/store"
	"pixel-casino/internal/telemetry"
)

const rankMaxRows = 100

// Service is the player-facing surface over the ledger store and the game
// engine. The transport layer hands it an opaque identity key per request;
// it never sees credentials or sessions.
type Service struct {
	store           *store.Store
	engine          *game.Engine
	sink            *telemetry.Sink
	startingBalance int64
}

func NewService(st *store.Store, engine *game.Engine, sink *telemetry.Sink, startingBalance int64) *Service {
	if startingBalance < 0 {
		startingBalance = 100
	}
	return &Service{store: st, engine: engine, sink: sink, startingBalance: startingBalance}
}

// Join creates the account on first contact and records the consent choice.
// Returning players may rename themselves, matching the original entry form.
func (s *Service) Join(ctx context.Context, identityKey, displayName string, consent bool) (*JoinResponse, error) {
	if identityKey == "" {
		return nil, ErrInvalidRequest
	}
	acc, created, err := s.store.GetOrCreateAccount(ctx, identityKey, displayName, s.startingBalance)
	if err != nil {
		return nil, err
	}
	if displayName != "" && displayName != acc.DisplayName {
		if err := s.store.UpdateDisplayName(ctx, acc.ID, displayName); err != nil {
			return nil, err
		}
		acc.DisplayName = displayName
	}
	if consent != acc.Consent {
		if err := s.store.SetConsent(ctx, acc.ID, consent); err != nil {
			return nil, err
		}
		acc.Consent = consent
	}
	if created {
		s.sink.Record(ctx, acc, telemetry.KindCreateAccount, map[string]any{
			"display_name": acc.DisplayName,
			"balance":      acc.Balance,
		})
	}
	profile, err := s.profileFor(ctx, acc)
	if err != nil {
		return nil, err
	}
	return &JoinResponse{ProfileResponse: *profile, Created: created}, nil
}

// Profile returns the account view, creating the account lazily the way the
// original casino page does for a visitor that skipped the entry form.
func (s *Service) Profile(ctx context.Context, identityKey string) (*ProfileResponse, error) {
	acc, err := s.account(ctx, identityKey)
	if err != nil {
		return nil, err
	}
	return s.profileFor(ctx, acc)
}

func (s *Service) Rank(ctx context.Context, limit int) (*RankResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > rankMaxRows {
		limit = rankMaxRows
	}
	entries, err := s.store.Rank(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]RankItem, 0, len(entries))
	for i, e := range entries {
		items = append(items, RankItem{Rank: i + 1, DisplayName: e.DisplayName, Balance: e.Balance})
	}
	return &RankResponse{Items: items}, nil
}

func (s *Service) Shop(ctx context.Context) (*ShopResponse, error) {
	items, err := s.store.ListShopItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ShopItemView, 0, len(items))
	for _, it := range items {
		out = append(out, ShopItemView{ID: it.ID, Name: it.Name, Price: it.Price})
	}
	return &ShopResponse{Items: out}, nil
}

// Purchase debits the item price and grants the item, or changes nothing.
func (s *Service) Purchase(ctx context.Context, identityKey, itemID string) (*PurchaseResponse, error) {
	if itemID == "" {
		return nil, ErrInvalidRequest
	}
	acc, err := s.account(ctx, identityKey)
	if err != nil {
		return nil, err
	}
	item, err := s.store.GetShopItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	balance, err := s.store.PurchaseItem(ctx, acc.ID, item)
	if err != nil {
		if errors.Is(err, store.ErrInsufficientBalance) {
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}
	s.sink.Record(ctx, acc, telemetry.KindPurchase, map[string]any{
		"item":    item.Name,
		"price":   item.Price,
		"balance": balance,
	})
	return &PurchaseResponse{Item: item.Name, Price: item.Price, Balance: balance}, nil
}

// PlayJackpot resolves one staked reel-match round.
func (s *Service) PlayJackpot(ctx context.Context, identityKey string, bet int64) (*RoundResponse, error) {
	return s.playStaked(ctx, identityKey, bet, s.engine.PlayJackpot)
}

// PlayCard resolves one staked card-draw round.
func (s *Service) PlayCard(ctx context.Context, identityKey string, bet int64) (*RoundResponse, error) {
	return s.playStaked(ctx, identityKey, bet, s.engine.PlayCard)
}

func (s *Service) playStaked(ctx context.Context, identityKey string, bet int64, play func(context.Context, string, int64) (*game.Round, error)) (*RoundResponse, error) {
	acc, err := s.account(ctx, identityKey)
	if err != nil {
		return nil, err
	}
	round, err := play(ctx, acc.ID, bet)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrInvalidStake):
			return nil, ErrInvalidStake
		case errors.Is(err, game.ErrInsufficientFunds):
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}
	return s.reportRound(ctx, acc, round), nil
}

// PlayMemoryMatch credits the flat reward for a client-reported pair match.
func (s *Service) PlayMemoryMatch(ctx context.Context, identityKey string) (*RoundResponse, error) {
	acc, err := s.account(ctx, identityKey)
	if err != nil {
		return nil, err
	}
	round, err := s.engine.PlayMemoryMatch(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	return s.reportRound(ctx, acc, round), nil
}

// ClientReport appends an opaque client telemetry payload to the event log.
func (s *Service) ClientReport(ctx context.Context, identityKey string, payload json.RawMessage) error {
	acc, err := s.account(ctx, identityKey)
	if err != nil {
		return err
	}
	s.sink.Record(ctx, acc, telemetry.KindClientReport, payload)
	return nil
}

func (s *Service) account(ctx context.Context, identityKey string) (*store.Account, error) {
	if identityKey == "" {
		return nil, ErrInvalidRequest
	}
	acc, created, err := s.store.GetOrCreateAccount(ctx, identityKey, "", s.startingBalance)
	if err != nil {
		return nil, err
	}
	if created {
		s.sink.Record(ctx, acc, telemetry.KindCreateAccount, map[string]any{
			"display_name": acc.DisplayName,
			"balance":      acc.Balance,
		})
	}
	return acc, nil
}

func (s *Service) reportRound(ctx context.Context, acc *store.Account, round *game.Round) *RoundResponse {
	s.sink.Record(ctx, acc, telemetry.KindGameRound, map[string]any{
		"round_id": round.RoundID,
		"game":     round.Outcome.Game,
		"stake":    round.Outcome.Stake,
		"symbols":  round.Outcome.Symbols,
		"won":      round.Outcome.Won,
		"payout":   round.Outcome.Payout,
		"balance":  round.Balance,
	})
	return &RoundResponse{
		RoundID: round.RoundID,
		Game:    round.Outcome.Game,
		Stake:   round.Outcome.Stake,
		Symbols: round.Outcome.Symbols,
		Won:     round.Outcome.Won,
		Payout:  round.Outcome.Payout,
		Balance: round.Balance,
	}
}

func (s *Service) profileFor(ctx context.Context, acc *store.Account) (*ProfileResponse, error) {
	items, err := s.store.ListInventory(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.ItemName)
	}
	return &ProfileResponse{
		AccountID:   acc.ID,
		DisplayName: acc.DisplayName,
		Balance:     acc.Balance,
		PlayCount:   acc.PlayCount,
		Consent:     acc.Consent,
		CreatedAt:   acc.CreatedAt,
		Inventory:   names,
	}, nil
}
