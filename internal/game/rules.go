package game

import (
	"errors"
	"math"
)

// MaxBet keeps a winning payout of twice the stake within int64.
const MaxBet = math.MaxInt64 / 2

var (
	ErrNotYourTurn   = errors.New("not_your_turn")
	ErrNotPlayerTurn = errors.New("not_player_turn")
	ErrDeckExhausted = errors.New("deck_exhausted")
	ErrInvalidBet    = errors.New("invalid_bet")
)

// ValidateTurn checks that userID may act on s.
func ValidateTurn(s *Session, userID string) error {
	if s == nil || s.Status != StatusPlayerTurn {
		return ErrNotPlayerTurn
	}
	if s.UserID != userID {
		return ErrNotYourTurn
	}
	return nil
}
