package telemetry

import (
	"context"
	"encoding/json"

	"pixel-casino/internal/store"

	"github.com/rs/zerolog/log"
)

// Event kinds recorded by the sink.
const (
	KindCreateAccount = "create_account"
	KindGameRound     = "game_round"
	KindPurchase      = "purchase"
	KindClientReport  = "telemetry"
)

// RedactedIdentity replaces the real network identity for accounts that did
// not consent to its persistence.
const RedactedIdentity = "redacted"

// Sink appends audit events to the event log. It alone decides, from the
// account's consent flag, whether the real identity key is persisted; the
// rest of the system treats the flag as opaque.
type Sink struct {
	Store *store.Store
}

func New(st *store.Store) *Sink {
	return &Sink{Store: st}
}

// Record appends one event. Failures are logged and swallowed: the event log
// must never fail a game round or purchase that already committed.
func (s *Sink) Record(ctx context.Context, acc *store.Account, kind string, payload any) {
	identity := RedactedIdentity
	accountID := ""
	if acc != nil {
		accountID = acc.ID
		if acc.Consent {
			identity = acc.IdentityKey
		}
	}
	var raw []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Str("kind", kind).Msg("marshal event payload failed")
			return
		}
		raw = b
	}
	if err := s.Store.InsertEvent(ctx, accountID, identity, kind, raw); err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("record event failed")
	}
}
