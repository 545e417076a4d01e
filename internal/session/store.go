package session

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"twentyone/internal/events"
	"twentyone/internal/game"
	"twentyone/internal/ledger"
)

const (
	DefaultSessionTTL = 30 * time.Minute
	publishTimeout    = 2 * time.Second
)

// slot holds one chat's session. mu is held for the whole of an operation on
// the chat; evicted tells a waiter the slot left the map while it queued.
type slot struct {
	mu      sync.Mutex
	session *game.Session
	evicted bool
}

// Store owns every in-flight game, keyed by chat.
type Store struct {
	ledger    *ledger.Ledger
	publisher events.Publisher
	shuffler  game.Shuffler
	now       func() time.Time
	ttl       time.Duration

	mu    sync.Mutex
	slots map[string]*slot
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSessionTTL sets how long a resolved session stays readable before the
// janitor drops it.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// lockedShuffler serializes a shared random source.
type lockedShuffler struct {
	mu  sync.Mutex
	rng game.Shuffler
}

func (l *lockedShuffler) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rng.Shuffle(n, swap)
}

// New builds a Store. A nil rng uses a time-seeded math/rand source and a
// nil publisher drops events.
func New(led *ledger.Ledger, rng game.Shuffler, pub events.Publisher, opts ...Option) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if pub == nil {
		pub = events.Noop{}
	}
	s := &Store{
		ledger:    led,
		publisher: pub,
		shuffler:  &lockedShuffler{rng: rng},
		now:       time.Now,
		ttl:       DefaultSessionTTL,
		slots:     map[string]*slot{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// acquire returns the chat's slot locked. With create false a missing slot
// yields nil.
func (s *Store) acquire(chatID string, create bool) *slot {
	for {
		s.mu.Lock()
		sl, ok := s.slots[chatID]
		if !ok {
			if !create {
				s.mu.Unlock()
				return nil
			}
			sl = &slot{}
			s.slots[chatID] = sl
		}
		s.mu.Unlock()

		sl.mu.Lock()
		if !sl.evicted {
			return sl
		}
		sl.mu.Unlock()
	}
}

// Get returns a snapshot of the chat's session, active or resolved.
func (s *Store) Get(chatID string) (game.View, bool) {
	sl := s.acquire(chatID, false)
	if sl == nil {
		return game.View{}, false
	}
	defer sl.mu.Unlock()
	if sl.session == nil {
		return game.View{}, false
	}
	return sl.session.Snapshot(), true
}

// Teardown removes the chat's session whatever its state.
func (s *Store) Teardown(chatID string) {
	sl := s.acquire(chatID, false)
	if sl == nil {
		return
	}
	defer sl.mu.Unlock()
	if sl.session.Active() {
		metricActiveSessions.Add(-1)
	}
	sl.evicted = true
	sl.session = nil
	s.mu.Lock()
	delete(s.slots, chatID)
	s.mu.Unlock()
}

// Len reports how many chats currently hold a slot.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

func (s *Store) newDeck() *game.Deck {
	return game.NewShuffledDeck(s.shuffler)
}

func (s *Store) publishResolved(ctx context.Context, sess *game.Session, balance int64) {
	metricGamesResolved.Add(string(sess.Outcome), 1)
	metricActiveSessions.Add(-1)
	ev := events.GameResolved{
		SessionID:   sess.ID,
		ChatID:      sess.ChatID,
		UserID:      sess.UserID,
		Bet:         sess.Bet,
		Outcome:     string(sess.Outcome),
		Payout:      sess.Payout,
		PlayerHand:  sess.Player.Ints(),
		PlayerScore: game.Score(sess.Player),
		DealerHand:  sess.Dealer.Ints(),
		DealerScore: game.Score(sess.Dealer),
		Balance:     balance,
		ResolvedAt:  sess.ResolvedAt,
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishGameResolved(pubCtx, ev); err != nil {
		logPublishFailure(sess, err)
	}
}
