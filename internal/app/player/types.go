package player

import "time"

type ProfileResponse struct {
	AccountID   string    `json:"account_id"`
	DisplayName string    `json:"display_name"`
	Balance     int64     `json:"balance"`
	PlayCount   int64     `json:"play_count"`
	Consent     bool      `json:"consent"`
	CreatedAt   time.Time `json:"created_at"`
	Inventory   []string  `json:"inventory"`
}

type JoinResponse struct {
	ProfileResponse
	Created bool `json:"created"`
}

type RankResponse struct {
	Items []RankItem `json:"items"`
}

type RankItem struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"display_name"`
	Balance     int64  `json:"balance"`
}

type ShopResponse struct {
	Items []ShopItemView `json:"items"`
}

type ShopItemView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type RoundResponse struct {
	RoundID string   `json:"round_id"`
	Game    string   `json:"game"`
	Stake   int64    `json:"stake"`
	Symbols []string `json:"symbols"`
	Won     bool     `json:"won"`
	Payout  int64    `json:"payout"`
	Balance int64    `json:"balance"`
}

type PurchaseResponse struct {
	Item    string `json:"item"`
	Price   int64  `json:"price"`
	Balance int64  `json:"balance"`
}
