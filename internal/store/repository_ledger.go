package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func insertLedgerEntryTx(ctx context.Context, tx pgx.Tx, accountID, entryType string, amount int64, refType, refID string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO ledger_entries (id, account_id, type, amount, ref_type, ref_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, NewID(), accountID, entryType, amount, refType, refID)
	return err
}

type LedgerFilter struct {
	AccountID string
	Type      string
	RefType   string
}

func (s *Store) ListLedgerEntries(ctx context.Context, f LedgerFilter, limit, offset int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	where := "WHERE 1=1"
	args := []any{}
	if f.AccountID != "" {
		args = append(args, f.AccountID)
		where += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if f.RefType != "" {
		args = append(args, f.RefType)
		where += fmt.Sprintf(" AND ref_type = $%d", len(args))
	}
	args = append(args, limit, offset)
	q := `SELECT id, account_id, type, amount, ref_type, ref_id, created_at FROM ledger_entries ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := s.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LedgerEntry{}
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Type, &e.Amount, &e.RefType, &e.RefID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
