package store

import "time"

type Account struct {
	ID          string
	IdentityKey string
	DisplayName string
	Balance     int64
	PlayCount   int64
	Consent     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type InventoryItem struct {
	ID        string
	AccountID string
	ItemName  string
	CreatedAt time.Time
}

type ShopItem struct {
	ID        string
	Name      string
	Price     int64
	Position  int
	CreatedAt time.Time
}

type LedgerEntry struct {
	ID        string
	AccountID string
	Type      string
	Amount    int64
	RefType   string
	RefID     string
	CreatedAt time.Time
}

type Event struct {
	ID        string
	AccountID string
	Identity  string
	Kind      string
	Payload   []byte
	CreatedAt time.Time
}

type RankEntry struct {
	DisplayName string
	Balance     int64
}
