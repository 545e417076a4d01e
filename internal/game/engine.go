package game

import (
	"fmt"
	"time"
)

// Deal opens a session: two cards to the player, then two to the dealer,
// each popped from deck.
func Deal(id, chatID, userID string, bet int64, deck *Deck, now time.Time) (*Session, error) {
	if bet <= 0 || bet > MaxBet {
		return nil, ErrInvalidBet
	}
	s := &Session{
		ID:        id,
		ChatID:    chatID,
		UserID:    userID,
		Bet:       bet,
		Deck:      deck,
		Status:    StatusPlayerTurn,
		CreatedAt: now,
	}
	for i := 0; i < 2; i++ {
		c, err := deck.Draw()
		if err != nil {
			return nil, fmt.Errorf("deal player: %w", err)
		}
		s.Player = append(s.Player, c)
	}
	for i := 0; i < 2; i++ {
		c, err := deck.Draw()
		if err != nil {
			return nil, fmt.Errorf("deal dealer: %w", err)
		}
		s.Dealer = append(s.Dealer, c)
	}
	s.Player.settle()
	return s, nil
}

// Hit draws one card for the player. A bust resolves the session as a loss
// with no payout.
func (s *Session) Hit(userID string, now time.Time) (bool, error) {
	if err := ValidateTurn(s, userID); err != nil {
		return false, err
	}
	c, err := s.Deck.Draw()
	if err != nil {
		return false, err
	}
	s.Player = append(s.Player, c)
	if s.Player.settle() > Blackjack {
		s.resolve(OutcomeBust, now)
		return true, nil
	}
	return false, nil
}

// PlayDealer draws for the dealer until it reaches 17. It is safe to call
// again after a partial failure: a finished dealer hand draws nothing.
func (s *Session) PlayDealer(userID string) error {
	if err := ValidateTurn(s, userID); err != nil {
		return err
	}
	for s.Dealer.settle() < DealerStandsAt {
		c, err := s.Deck.Draw()
		if err != nil {
			return err
		}
		s.Dealer = append(s.Dealer, c)
	}
	return nil
}

// Settle compares the finished hands. It does not change the session.
func (s *Session) Settle() Outcome {
	player := Score(s.Player)
	dealer := Score(s.Dealer)
	switch {
	case player > Blackjack:
		return OutcomeBust
	case dealer > Blackjack || player > dealer:
		return OutcomeWin
	case player == dealer:
		return OutcomePush
	default:
		return OutcomeLoss
	}
}

// Resolve closes the session with outcome.
func (s *Session) Resolve(outcome Outcome, now time.Time) {
	s.resolve(outcome, now)
}

func (s *Session) resolve(outcome Outcome, now time.Time) {
	s.Status = StatusResolved
	s.Outcome = outcome
	s.Payout = Payout(outcome, s.Bet)
	s.ResolvedAt = now
}

// Payout is the amount credited back for outcome: stake plus even money on a
// win, the stake on a push, nothing otherwise.
func Payout(outcome Outcome, bet int64) int64 {
	switch outcome {
	case OutcomeWin:
		return bet * 2
	case OutcomePush:
		return bet
	default:
		return 0
	}
}
