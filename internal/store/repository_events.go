package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// InsertEvent appends to the event log. Rows are never updated or deleted.
func (s *Store) InsertEvent(ctx context.Context, accountID, identity, kind string, payload []byte) error {
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO events (id, account_id, identity, kind, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, NewID(), accountID, identity, kind, payload)
	return err
}

func (s *Store) ListEvents(ctx context.Context, kind string, limit, offset int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	var (
		rows pgx.Rows
		err  error
	)
	if kind == "" {
		rows, err = s.Pool.Query(ctx, `
			SELECT id, account_id, identity, kind, payload, created_at
			FROM events ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2
		`, limit, offset)
	} else {
		rows, err = s.Pool.Query(ctx, `
			SELECT id, account_id, identity, kind, payload, created_at
			FROM events WHERE kind = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
		`, kind, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Identity, &e.Kind, &e.Payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
