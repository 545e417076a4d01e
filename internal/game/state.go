package game

import "time"

type Status string

const (
	StatusPlayerTurn Status = "player_turn"
	StatusResolved   Status = "resolved"
)

type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomePush Outcome = "push"
	OutcomeLoss Outcome = "loss"
	OutcomeBust Outcome = "bust"
)

// Session is one game of 21 bound to a chat. It is not safe for concurrent
// use; callers serialize access per chat.
type Session struct {
	ID         string
	ChatID     string
	UserID     string
	Bet        int64
	Deck       *Deck
	Player     Hand
	Dealer     Hand
	Status     Status
	Outcome    Outcome
	Payout     int64
	CreatedAt  time.Time
	ResolvedAt time.Time
}

// View is a read-only snapshot of a session. The dealer hole card is hidden
// while the player is still acting.
type View struct {
	SessionID   string    `json:"session_id"`
	ChatID      string    `json:"chat_id"`
	UserID      string    `json:"user_id"`
	Bet         int64     `json:"bet"`
	Status      Status    `json:"status"`
	Outcome     Outcome   `json:"outcome,omitempty"`
	Payout      int64     `json:"payout"`
	PlayerHand  []int     `json:"player_hand"`
	PlayerScore int       `json:"player_score"`
	DealerHand  []int     `json:"dealer_hand"`
	DealerScore *int      `json:"dealer_score,omitempty"`
	DeckLeft    int       `json:"deck_left"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Session) Active() bool {
	return s != nil && s.Status == StatusPlayerTurn
}

// UpCard is the dealer card shown to the player during their turn.
func (s *Session) UpCard() CardValue {
	if len(s.Dealer) == 0 {
		return 0
	}
	return s.Dealer[0]
}

func (s *Session) Snapshot() View {
	v := View{
		SessionID:   s.ID,
		ChatID:      s.ChatID,
		UserID:      s.UserID,
		Bet:         s.Bet,
		Status:      s.Status,
		Outcome:     s.Outcome,
		Payout:      s.Payout,
		PlayerHand:  s.Player.Ints(),
		PlayerScore: Score(s.Player),
		DeckLeft:    s.Deck.Len(),
		CreatedAt:   s.CreatedAt,
	}
	if s.Status == StatusPlayerTurn {
		v.DealerHand = []int{int(s.UpCard())}
		return v
	}
	v.DealerHand = s.Dealer.Ints()
	ds := Score(s.Dealer)
	v.DealerScore = &ds
	return v
}
