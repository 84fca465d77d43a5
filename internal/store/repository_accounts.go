package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, identity_key, display_name, balance, play_count, consent, created_at, updated_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.IdentityKey, &a.DisplayName, &a.Balance, &a.PlayCount, &a.Consent, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) GetAccountByID(ctx context.Context, id string) (*Account, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (s *Store) GetAccountByIdentity(ctx context.Context, identityKey string) (*Account, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE identity_key = $1`, identityKey)
	return scanAccount(row)
}

// GetOrCreateAccount returns the account for identityKey, creating it with the
// starting balance on first contact. The identity_key unique constraint
// resolves concurrent first contacts: the loser's insert is a no-op and it
// re-reads the winner's row. The bool result reports whether a new account
// was created.
func (s *Store) GetOrCreateAccount(ctx context.Context, identityKey, displayName string, initial int64) (*Account, bool, error) {
	if displayName == "" {
		displayName = "Player"
	}
	for attempt := 0; attempt < 2; attempt++ {
		created, err := s.insertAccountIfAbsent(ctx, identityKey, displayName, initial)
		if err != nil {
			return nil, false, err
		}
		acc, err := s.GetAccountByIdentity(ctx, identityKey)
		if err == nil {
			return acc, created, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
		// Lost the insert race against a transaction that has not committed
		// yet; retry once.
	}
	return nil, false, ErrNotFound
}

func (s *Store) insertAccountIfAbsent(ctx context.Context, identityKey, displayName string, initial int64) (bool, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	id := NewID()
	tag, err := tx.Exec(ctx, `
		INSERT INTO accounts (id, identity_key, display_name, balance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (identity_key) DO NOTHING
	`, id, identityKey, displayName, initial)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	if err := insertLedgerEntryTx(ctx, tx, id, "grant_credit", initial, "account", id); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

// Credit unconditionally increases the account balance. The balance update
// and its ledger entry commit in one transaction.
func (s *Store) Credit(ctx context.Context, accountID string, amount int64, entryType, refType, refID string) (int64, error) {
	if amount < 0 {
		return 0, errors.New("amount must be non-negative")
	}
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
	newBal := bal + amount
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $1, updated_at = now() WHERE id = $2`, newBal, accountID); err != nil {
		return 0, err
	}
	if err := insertLedgerEntryTx(ctx, tx, accountID, entryType, amount, refType, refID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBal, nil
}

// DebitIfSufficient atomically checks and decrements the balance. It returns
// ErrInsufficientBalance, with no state change, when the balance is lower
// than amount. The row lock serializes concurrent debits on one account so
// two debits can never both drain a low balance.
func (s *Store) DebitIfSufficient(ctx context.Context, accountID string, amount int64, entryType, refType, refID string) (int64, error) {
	if amount < 0 {
		return 0, errors.New("amount must be non-negative")
	}
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
	if bal < amount {
		return bal, ErrInsufficientBalance
	}
	newBal := bal - amount
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $1, updated_at = now() WHERE id = $2`, newBal, accountID); err != nil {
		return 0, err
	}
	if err := insertLedgerEntryTx(ctx, tx, accountID, entryType, -amount, refType, refID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBal, nil
}

func (s *Store) UpdateDisplayName(ctx context.Context, accountID, displayName string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE accounts SET display_name = $1, updated_at = now() WHERE id = $2`, displayName, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetConsent(ctx context.Context, accountID string, consent bool) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE accounts SET consent = $1, updated_at = now() WHERE id = $2`, consent, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) IncrementPlayCount(ctx context.Context, accountID string) error {
	_, err := s.Pool.Exec(ctx, `UPDATE accounts SET play_count = play_count + 1, updated_at = now() WHERE id = $1`, accountID)
	return err
}

// Rank returns the top accounts by balance. Ties break by account creation
// order, then ID, so the ordering is deterministic.
func (s *Store) Rank(ctx context.Context, limit int) ([]RankEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT display_name, balance
		FROM accounts
		ORDER BY balance DESC, created_at ASC, id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RankEntry{}
	for rows.Next() {
		var e RankEntry
		if err := rows.Scan(&e.DisplayName, &e.Balance); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) ListAccounts(ctx context.Context, limit, offset int) ([]Account, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		ORDER BY balance DESC, created_at ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Account{}
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.IdentityKey, &a.DisplayName, &a.Balance, &a.PlayCount, &a.Consent, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) AddInventoryItem(ctx context.Context, accountID, itemName string) error {
	_, err := s.Pool.Exec(ctx, `INSERT INTO inventory_items (id, account_id, item_name) VALUES ($1, $2, $3)`, NewID(), accountID, itemName)
	return err
}

func (s *Store) ListInventory(ctx context.Context, accountID string) ([]InventoryItem, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, account_id, item_name, created_at
		FROM inventory_items
		WHERE account_id = $1
		ORDER BY created_at ASC, id ASC
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []InventoryItem{}
	for rows.Next() {
		var it InventoryItem
		if err := rows.Scan(&it.ID, &it.AccountID, &it.ItemName, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
