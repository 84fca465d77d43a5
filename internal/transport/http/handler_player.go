package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pixel-casino/internal/app/player"
)

type PlayerHandlers struct {
	svc *player.Service
}

func NewPlayerHandlers(svc *player.Service) *PlayerHandlers {
	return &PlayerHandlers{svc: svc}
}

func (h *PlayerHandlers) Join() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			DisplayName string `json:"display_name"`
			AcceptTerms bool   `json:"accept_terms"`
			Consent     bool   `json:"consent"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		// Entry-form rule from the original UI: no terms, no table.
		if !body.AcceptTerms {
			WriteHTTPError(w, http.StatusBadRequest, "terms_not_accepted")
			return
		}
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		resp, err := h.svc.Join(r.Context(), identity, body.DisplayName, body.Consent)
		if err != nil {
			writePlayerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		resp, err := h.svc.Profile(r.Context(), identity)
		if err != nil {
			writePlayerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) Rank() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			limit = n
		}
		resp, err := h.svc.Rank(r.Context(), limit)
		if err != nil {
			writePlayerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) Shop() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Shop(r.Context())
		if err != nil {
			writePlayerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) Jackpot() http.HandlerFunc {
	return h.stakedGame(h.svc.PlayJackpot)
}

func (h *PlayerHandlers) Card() http.HandlerFunc {
	return h.stakedGame(h.svc.PlayCard)
}

func (h *PlayerHandlers) stakedGame(play func(context.Context, string, int64) (*player.RoundResponse, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Bet int64 `json:"bet"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		resp, err := play(r.Context(), identity, body.Bet)
		if err != nil {
			if errors.Is(err, player.ErrInsufficientFunds) {
				insufficientFundsTotal.Add(1)
			}
			writePlayerError(w, err)
			return
		}
		gameRoundsTotal.Add(1)
		if resp.Won {
			gameWinsTotal.Add(1)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) MemoryMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		resp, err := h.svc.PlayMemoryMatch(r.Context(), identity)
		if err != nil {
			writePlayerError(w, err)
			return
		}
		gameRoundsTotal.Add(1)
		gameWinsTotal.Add(1)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) Buy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ItemID string `json:"item_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		resp, err := h.svc.Purchase(r.Context(), identity, body.ItemID)
		if err != nil {
			if errors.Is(err, player.ErrInsufficientFunds) {
				insufficientFundsTotal.Add(1)
			}
			writePlayerError(w, err)
			return
		}
		purchasesTotal.Add(1)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) Telemetry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := h.svc.ClientReport(r.Context(), identity, payload); err != nil {
			writePlayerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func writePlayerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, player.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, player.ErrInvalidStake):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_stake")
	case errors.Is(err, player.ErrInsufficientFunds):
		WriteHTTPError(w, http.StatusBadRequest, "insufficient_funds")
	case errors.Is(err, player.ErrItemNotFound):
		WriteHTTPError(w, http.StatusNotFound, "item_not_found")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
