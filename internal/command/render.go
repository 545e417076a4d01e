package command

import (
	"errors"
	"fmt"
	"strings"

	"twentyone/internal/game"
	"twentyone/internal/session"
)

const (
	usageText   = "Available commands: /start, /play <bet>, /hit, /stand, /balance"
	playUsage   = "Name your bet. For example: /play 100"
	tryAgainMsg = "Something went wrong. Please try again."
)

func hand(cards []int) string {
	h := make(game.Hand, 0, len(cards))
	for _, c := range cards {
		h = append(h, game.CardValue(c))
	}
	return h.String()
}

func renderGreeting(balance int64) string {
	return fmt.Sprintf("Hi! This is a game of 21. Your balance: %d coins.\nUse /play <bet> to start a game.", balance)
}

func renderBalance(balance int64) string {
	return fmt.Sprintf("Your balance: %d coins.", balance)
}

func renderStart(r *session.StartResult) string {
	return fmt.Sprintf("Bet: %d coins.\nYour cards: %s, score: %d\nDealer's card: [%d, ?]",
		r.Bet, hand(r.PlayerHand), r.PlayerScore, r.DealerUpCard)
}

func renderHit(r *session.HitResult) string {
	text := fmt.Sprintf("Your cards: %s, score: %d", hand(r.PlayerHand), r.PlayerScore)
	if r.Bust {
		text += "\nBust! You lose."
	}
	return text
}

func renderStand(r *session.StandResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your cards: %s, score: %d\n", hand(r.PlayerHand), r.PlayerScore)
	fmt.Fprintf(&b, "Dealer's cards: %s, score: %d\n", hand(r.DealerHand), r.DealerScore)
	switch r.Outcome {
	case game.OutcomeWin:
		b.WriteString("You win!\n")
	case game.OutcomePush:
		b.WriteString("Push!\n")
	default:
		b.WriteString("You lose.\n")
	}
	fmt.Fprintf(&b, "Your balance: %d coins.", r.Balance)
	return b.String()
}

// ErrorCode returns the wire code for err.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, session.ErrMissingOrInvalidBet):
		return "missing_or_invalid_bet"
	case errors.Is(err, session.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, session.ErrGameAlreadyActive):
		return "game_already_active"
	case errors.Is(err, session.ErrNoActiveGame):
		return "no_active_game"
	case errors.Is(err, session.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	default:
		return "internal_error"
	}
}

func renderError(err error) string {
	switch {
	case errors.Is(err, session.ErrMissingOrInvalidBet):
		return playUsage
	case errors.Is(err, session.ErrInsufficientFunds):
		return "Not enough coins for that bet."
	case errors.Is(err, session.ErrGameAlreadyActive):
		return "A game is already in progress. Use /hit or /stand."
	case errors.Is(err, session.ErrNoActiveGame):
		return "No active game. Use /play to start."
	case errors.Is(err, session.ErrNotYourTurn):
		return "This is not your game!"
	case errors.Is(err, ErrUnknownCommand):
		return "Unknown command. " + usageText
	default:
		return tryAgainMsg
	}
}
