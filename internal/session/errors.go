package session

import (
	"errors"
	"fmt"
)

var (
	ErrMissingOrInvalidBet = errors.New("missing_or_invalid_bet")
	ErrInsufficientFunds   = errors.New("insufficient_funds")
	ErrGameAlreadyActive   = errors.New("game_already_active")
	ErrNoActiveGame        = errors.New("no_active_game")
	ErrNotYourTurn         = errors.New("not_your_turn")
	ErrInternal            = errors.New("internal_error")
)

func internal(op string, err error) error {
	metricInternalFaults.Add(1)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
