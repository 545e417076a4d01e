package session

import (
	"strconv"
	"strings"

	"twentyone/internal/game"
)

type StartResult struct {
	SessionID    string `json:"session_id"`
	Bet          int64  `json:"bet"`
	PlayerHand   []int  `json:"player_hand"`
	PlayerScore  int    `json:"player_score"`
	DealerUpCard int    `json:"dealer_up_card"`
	Balance      int64  `json:"balance"`
}

type HitResult struct {
	SessionID    string       `json:"session_id"`
	PlayerHand   []int        `json:"player_hand"`
	PlayerScore  int          `json:"player_score"`
	DealerUpCard int          `json:"dealer_up_card"`
	Bust         bool         `json:"bust"`
	Outcome      game.Outcome `json:"outcome,omitempty"`
	Balance      int64        `json:"balance"`
}

type StandResult struct {
	SessionID   string       `json:"session_id"`
	Bet         int64        `json:"bet"`
	PlayerHand  []int        `json:"player_hand"`
	PlayerScore int          `json:"player_score"`
	DealerHand  []int        `json:"dealer_hand"`
	DealerScore int          `json:"dealer_score"`
	Outcome     game.Outcome `json:"outcome"`
	Payout      int64        `json:"payout"`
	Balance     int64        `json:"balance"`
}

// ParseBet reads a wager from command text. Empty, non-numeric,
// non-positive and over-limit values are rejected.
func ParseBet(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrMissingOrInvalidBet
	}
	bet, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || bet <= 0 || bet > game.MaxBet {
		return 0, ErrMissingOrInvalidBet
	}
	return bet, nil
}
