package httptransport

import (
	"encoding/json"
	"net/http"
	"strings"

	"twentyone/internal/command"
	"twentyone/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type GameHandlers struct {
	sessions   *session.Store
	dispatcher *command.Dispatcher
}

func NewGameHandlers(sessions *session.Store, dispatcher *command.Dispatcher) *GameHandlers {
	return &GameHandlers{sessions: sessions, dispatcher: dispatcher}
}

type playRequest struct {
	UserID string `json:"user_id"`
	Bet    *int64 `json:"bet"`
}

type turnRequest struct {
	UserID string `json:"user_id"`
}

type commandRequest struct {
	ChatID string `json:"chat_id"`
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

func (h *GameHandlers) writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	metricGameRequestErrors.Add(1)
	status, code := MapGameError(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("game request failed")
	}
	WriteHTTPError(w, status, code)
}

func (h *GameHandlers) Greet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricGameRequestsTotal.Add(1)
		userID := strings.TrimSpace(chi.URLParam(r, "user_id"))
		if userID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		bal, err := h.sessions.Greet(r.Context(), userID)
		if err != nil {
			h.writeGameError(w, r, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"user_id": userID, "balance": bal})
	}
}

func (h *GameHandlers) Balance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricGameRequestsTotal.Add(1)
		userID := strings.TrimSpace(chi.URLParam(r, "user_id"))
		if userID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		bal, err := h.sessions.Balance(r.Context(), userID)
		if err != nil {
			h.writeGameError(w, r, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"user_id": userID, "balance": bal})
	}
}

func (h *GameHandlers) Play() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricGameRequestsTotal.Add(1)
		var body playRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.UserID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if body.Bet == nil {
			h.writeGameError(w, r, session.ErrMissingOrInvalidBet)
			return
		}
		res, err := h.sessions.Start(r.Context(), chi.URLParam(r, "chat_id"), body.UserID, *body.Bet)
		if err != nil {
			h.writeGameError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

func (h *GameHandlers) Hit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricGameRequestsTotal.Add(1)
		var body turnRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.UserID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		res, err := h.sessions.Hit(r.Context(), chi.URLParam(r, "chat_id"), body.UserID)
		if err != nil {
			h.writeGameError(w, r, err)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

func (h *GameHandlers) Stand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricGameRequestsTotal.Add(1)
		var body turnRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.UserID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		res, err := h.sessions.Stand(r.Context(), chi.URLParam(r, "chat_id"), body.UserID)
		if err != nil {
			h.writeGameError(w, r, err)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

func (h *GameHandlers) Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := h.sessions.Get(chi.URLParam(r, "chat_id"))
		if !ok {
			WriteHTTPError(w, http.StatusNotFound, "no_active_game")
			return
		}
		_ = json.NewEncoder(w).Encode(view)
	}
}

// Command runs a chat-style text command. The reply text is always
// present; failures also carry the error code and a matching status.
func (h *GameHandlers) Command() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body commandRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.ChatID == "" || body.UserID == "" || strings.TrimSpace(body.Text) == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		metricCommandsTotal.Add(1)
		reply := h.dispatcher.Handle(r.Context(), body.ChatID, body.UserID, body.Text)
		status := http.StatusOK
		if reply.Err != nil {
			metricGameRequestErrors.Add(1)
			status, _ = MapGameError(reply.Err)
		}
		writeJSON(w, status, reply)
	}
}
