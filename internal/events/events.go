package events

import (
	"context"
	"sync"
	"time"
)

const RoutingGameResolved = "game.resolved"

// GameResolved is published once per finished game.
type GameResolved struct {
	SessionID   string    `json:"session_id"`
	ChatID      string    `json:"chat_id"`
	UserID      string    `json:"user_id"`
	Bet         int64     `json:"bet"`
	Outcome     string    `json:"outcome"`
	Payout      int64     `json:"payout"`
	PlayerHand  []int     `json:"player_hand"`
	PlayerScore int       `json:"player_score"`
	DealerHand  []int     `json:"dealer_hand"`
	DealerScore int       `json:"dealer_score"`
	Balance     int64     `json:"balance"`
	ResolvedAt  time.Time `json:"resolved_at"`
}

type Publisher interface {
	PublishGameResolved(ctx context.Context, ev GameResolved) error
	Close()
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) PublishGameResolved(context.Context, GameResolved) error { return nil }

func (Noop) Close() {}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []GameResolved
	Err    error
}

func (r *Recorder) PublishGameResolved(_ context.Context, ev GameResolved) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Close() {}

func (r *Recorder) Events() []GameResolved {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]GameResolved, len(r.events))
	copy(out, r.events)
	return out
}
