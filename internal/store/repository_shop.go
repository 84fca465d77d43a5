package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetShopItem(ctx context.Context, id string) (*ShopItem, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, name, price, position, created_at FROM shop_items WHERE id = $1`, id)
	var it ShopItem
	if err := row.Scan(&it.ID, &it.Name, &it.Price, &it.Position, &it.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (s *Store) ListShopItems(ctx context.Context) ([]ShopItem, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, name, price, position, created_at FROM shop_items ORDER BY position ASC, price ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ShopItem{}
	for rows.Next() {
		var it ShopItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Position, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *Store) CountShopItems(ctx context.Context) (int, error) {
	var c int
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(1) FROM shop_items`).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

// EnsureDefaultShopItems seeds the fixed catalog once, when the table is
// empty. The catalog is immutable after seeding.
func (s *Store) EnsureDefaultShopItems(ctx context.Context) error {
	c, err := s.CountShopItems(ctx)
	if err != nil {
		return err
	}
	if c > 0 {
		return nil
	}
	defaults := []ShopItem{
		{Name: "Badge", Price: 50},
		{Name: "Cupcake Charm", Price: 80},
		{Name: "Diamond Aura", Price: 150},
		{Name: "Crown Pixie", Price: 300},
	}
	for i, it := range defaults {
		if _, err := s.Pool.Exec(ctx, `INSERT INTO shop_items (id, name, price, position) VALUES ($1, $2, $3, $4)`,
			NewID(), it.Name, it.Price, i); err != nil {
			return err
		}
	}
	return nil
}

// PurchaseItem debits the item price and appends the inventory row in one
// transaction: either both happen or neither does. It returns the new
// balance, or ErrInsufficientBalance with no state change.
func (s *Store) PurchaseItem(ctx context.Context, accountID string, item *ShopItem) (int64, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var bal int64
	if err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`, accountID).Scan(&bal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if bal < item.Price {
		return bal, ErrInsufficientBalance
	}
	newBal := bal - item.Price
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $1, updated_at = now() WHERE id = $2`, newBal, accountID); err != nil {
		return 0, err
	}
	if err := insertLedgerEntryTx(ctx, tx, accountID, "purchase_debit", -item.Price, "shop_item", item.ID); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO inventory_items (id, account_id, item_name) VALUES ($1, $2, $3)`,
		NewID(), accountID, item.Name); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBal, nil
}
