package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"twentyone/internal/events"
	"twentyone/internal/game"
	"twentyone/internal/ledger"
	"twentyone/internal/store/memory"
	"twentyone/internal/testutil"
)

// flakyStore fails positive adjustments while failCredits is set.
type flakyStore struct {
	*memory.Store
	mu          sync.Mutex
	failCredits bool
}

func (f *flakyStore) setFailCredits(v bool) {
	f.mu.Lock()
	f.failCredits = v
	f.mu.Unlock()
}

func (f *flakyStore) Adjust(ctx context.Context, userID string, delta int64, entryType, refType, refID string) (int64, error) {
	f.mu.Lock()
	fail := f.failCredits && delta > 0
	f.mu.Unlock()
	if fail {
		return 0, errors.New("disk full")
	}
	return f.Store.Adjust(ctx, userID, delta, entryType, refType, refID)
}

type fixture struct {
	store    *Store
	ledger   *ledger.Ledger
	accounts *flakyStore
	events   *events.Recorder
	clock    *fakeClock
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newFixture(t *testing.T, startBalance int64, draws ...game.CardValue) *fixture {
	t.Helper()
	accounts := &flakyStore{Store: memory.New()}
	led := ledger.New(accounts, startBalance)
	rec := &events.Recorder{}
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	st := New(led, testutil.RiggedShuffler{Draws: draws}, rec, WithClock(clock.Now), WithSessionTTL(10*time.Minute))
	return &fixture{store: st, ledger: led, accounts: accounts, events: rec, clock: clock}
}

func (f *fixture) balance(t *testing.T, userID string) int64 {
	t.Helper()
	bal, err := f.ledger.GetOrCreate(context.Background(), userID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return bal
}
