package session

import (
	"context"
	"errors"

	"twentyone/internal/game"
	"twentyone/internal/ledger"

	"github.com/rs/zerolog/log"
)

// Greet opens the user's account if needed and returns the balance.
func (s *Store) Greet(ctx context.Context, userID string) (int64, error) {
	return s.Balance(ctx, userID)
}

func (s *Store) Balance(ctx context.Context, userID string) (int64, error) {
	bal, err := s.ledger.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, internal("balance", err)
	}
	return bal, nil
}

// Start debits bet and deals a new game in chatID. A resolved game left in
// the chat is replaced.
func (s *Store) Start(ctx context.Context, chatID, userID string, bet int64) (*StartResult, error) {
	if bet <= 0 || bet > game.MaxBet {
		return nil, ErrMissingOrInvalidBet
	}
	sl := s.acquire(chatID, true)
	defer sl.mu.Unlock()

	if sl.session.Active() {
		return nil, ErrGameAlreadyActive
	}
	bal, err := s.ledger.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, internal("start: read balance", err)
	}
	if bal < bet {
		return nil, ErrInsufficientFunds
	}

	id := ledger.NewID()
	bal, err = s.ledger.DebitBet(ctx, userID, id, bet)
	if err != nil {
		// another chat of the same user spent the funds in between
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		return nil, internal("start: debit bet", err)
	}

	sess, err := game.Deal(id, chatID, userID, bet, s.newDeck(), s.now())
	if err != nil {
		if _, refundErr := s.ledger.CreditPayout(ctx, userID, id, ledger.EntryBetRefund, bet); refundErr != nil {
			log.Error().Err(refundErr).Str("session_id", id).Str("user_id", userID).Int64("bet", bet).Msg("bet refund failed")
		}
		return nil, internal("start: deal", err)
	}
	sl.session = sess
	metricGamesStarted.Add(1)
	metricActiveSessions.Add(1)

	log.Info().
		Str("chat_id", chatID).
		Str("user_id", userID).
		Str("session_id", id).
		Int64("bet", bet).
		Int64("balance", bal).
		Msg("game started")

	return &StartResult{
		SessionID:    sess.ID,
		Bet:          bet,
		PlayerHand:   sess.Player.Ints(),
		PlayerScore:  game.Score(sess.Player),
		DealerUpCard: int(sess.UpCard()),
		Balance:      bal,
	}, nil
}

// activeSession returns the chat's locked slot when it holds a game in
// PlayerTurn owned by userID. The caller unlocks on success.
func (s *Store) activeSession(chatID, userID string) (*slot, error) {
	sl := s.acquire(chatID, false)
	if sl == nil {
		return nil, ErrNoActiveGame
	}
	if !sl.session.Active() {
		sl.mu.Unlock()
		return nil, ErrNoActiveGame
	}
	if sl.session.UserID != userID {
		sl.mu.Unlock()
		return nil, ErrNotYourTurn
	}
	return sl, nil
}

// Hit draws one card for the player. Going over 21 resolves the game as a
// bust with no payout.
func (s *Store) Hit(ctx context.Context, chatID, userID string) (*HitResult, error) {
	sl, err := s.activeSession(chatID, userID)
	if err != nil {
		return nil, err
	}
	defer sl.mu.Unlock()
	sess := sl.session

	bust, err := sess.Hit(userID, s.now())
	if err != nil {
		return nil, s.mapGameError("hit", sess, err)
	}
	bal, err := s.ledger.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, internal("hit: read balance", err)
	}
	if bust {
		log.Info().Str("chat_id", chatID).Str("session_id", sess.ID).Int("score", game.Score(sess.Player)).Msg("player bust")
		s.publishResolved(ctx, sess, bal)
	}
	return &HitResult{
		SessionID:    sess.ID,
		PlayerHand:   sess.Player.Ints(),
		PlayerScore:  game.Score(sess.Player),
		DealerUpCard: int(sess.UpCard()),
		Bust:         bust,
		Outcome:      sess.Outcome,
		Balance:      bal,
	}, nil
}

// Stand plays out the dealer and settles. The game is only marked resolved
// once any payout is credited, so a failed credit can be retried by standing
// again; the dealer hand is already complete and does not draw twice.
func (s *Store) Stand(ctx context.Context, chatID, userID string) (*StandResult, error) {
	sl, err := s.activeSession(chatID, userID)
	if err != nil {
		return nil, err
	}
	defer sl.mu.Unlock()
	sess := sl.session

	if err := sess.PlayDealer(userID); err != nil {
		return nil, s.mapGameError("stand", sess, err)
	}
	outcome := sess.Settle()
	payout := game.Payout(outcome, sess.Bet)

	var bal int64
	if payout > 0 {
		bal, err = s.ledger.CreditPayout(ctx, userID, sess.ID, payoutEntryType(outcome), payout)
		if err != nil {
			log.Error().Err(err).
				Str("chat_id", chatID).
				Str("session_id", sess.ID).
				Int64("payout", payout).
				Msg("payout credit failed")
			return nil, internal("stand: credit payout", err)
		}
	} else {
		bal, err = s.ledger.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, internal("stand: read balance", err)
		}
	}
	sess.Resolve(outcome, s.now())

	log.Info().
		Str("chat_id", chatID).
		Str("session_id", sess.ID).
		Str("outcome", string(outcome)).
		Int("player_score", game.Score(sess.Player)).
		Int("dealer_score", game.Score(sess.Dealer)).
		Int64("payout", payout).
		Int64("balance", bal).
		Msg("game resolved")
	s.publishResolved(ctx, sess, bal)

	return &StandResult{
		SessionID:   sess.ID,
		Bet:         sess.Bet,
		PlayerHand:  sess.Player.Ints(),
		PlayerScore: game.Score(sess.Player),
		DealerHand:  sess.Dealer.Ints(),
		DealerScore: game.Score(sess.Dealer),
		Outcome:     outcome,
		Payout:      payout,
		Balance:     bal,
	}, nil
}

func payoutEntryType(outcome game.Outcome) string {
	if outcome == game.OutcomePush {
		return ledger.EntryPushCredit
	}
	return ledger.EntryWinCredit
}

func (s *Store) mapGameError(op string, sess *game.Session, err error) error {
	switch {
	case errors.Is(err, game.ErrNotYourTurn):
		return ErrNotYourTurn
	case errors.Is(err, game.ErrNotPlayerTurn):
		return ErrNoActiveGame
	default:
		log.Error().Err(err).Str("session_id", sess.ID).Int("deck_left", sess.Deck.Len()).Msg(op + " failed")
		return internal(op, err)
	}
}

func logPublishFailure(sess *game.Session, err error) {
	log.Warn().Err(err).Str("session_id", sess.ID).Str("outcome", string(sess.Outcome)).Msg("publish game resolved failed")
}
