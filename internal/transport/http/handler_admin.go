package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"twentyone/internal/ledger"

	"github.com/rs/zerolog/log"
)

type AdminHandlers struct {
	ledger *ledger.Ledger
}

func NewAdminHandlers(led *ledger.Ledger) *AdminHandlers {
	return &AdminHandlers{ledger: led}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.ledger.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}

func (h *AdminHandlers) Accounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.ledger.ListAccounts(r.Context(), limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *AdminHandlers) Ledger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		f := ledger.EntryFilter{UserID: r.URL.Query().Get("user_id"), RefID: r.URL.Query().Get("ref_id")}
		if v := r.URL.Query().Get("from"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.From = &t
			}
		}
		if v := r.URL.Query().Get("to"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.To = &t
			}
		}
		items, err := h.ledger.ListEntries(r.Context(), f, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *AdminHandlers) Topup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID string `json:"user_id"`
			Amount int64  `json:"amount"`
			Reason string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		body.UserID = strings.TrimSpace(body.UserID)
		if body.UserID == "" || body.Amount <= 0 {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		reason := body.Reason
		if reason == "" {
			reason = ledger.NewID()
		}
		bal, err := h.ledger.CreditTopup(r.Context(), body.UserID, reason, body.Amount)
		if err != nil {
			if errors.Is(err, ledger.ErrInvalidAmount) {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			log.Error().Err(err).Str("user_id", body.UserID).Msg("topup failed")
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		metricAdminTopupsTotal.Add(1)
		metricAdminTopupCoinsSum.Add(body.Amount)
		log.Info().Str("user_id", body.UserID).Int64("amount", body.Amount).Int64("balance", bal).Msg("admin topup")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "balance": bal})
	}
}
