package httptransport

import (
	"errors"
	"net/http"

	"twentyone/internal/command"
	"twentyone/internal/session"
)

func MapGameError(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrMissingOrInvalidBet):
		return http.StatusBadRequest, "missing_or_invalid_bet"
	case errors.Is(err, session.ErrInsufficientFunds):
		return http.StatusPaymentRequired, "insufficient_funds"
	case errors.Is(err, session.ErrGameAlreadyActive):
		return http.StatusConflict, "game_already_active"
	case errors.Is(err, session.ErrNoActiveGame):
		return http.StatusNotFound, "no_active_game"
	case errors.Is(err, session.ErrNotYourTurn):
		return http.StatusForbidden, "not_your_turn"
	case errors.Is(err, command.ErrUnknownCommand):
		return http.StatusBadRequest, "unknown_command"
	case errors.Is(err, command.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
