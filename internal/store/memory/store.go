package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"twentyone/internal/ledger"
)

var _ ledger.AccountStore = (*Store)(nil)

// Store keeps accounts in process memory. Balances are lost on restart.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*ledger.Account
	entries  []ledger.Entry
}

func New() *Store {
	return &Store{accounts: map[string]*ledger.Account{}}
}

func (s *Store) GetOrCreateAccount(_ context.Context, userID string, initial int64) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[userID]
	if !ok {
		a = &ledger.Account{UserID: userID, Balance: initial, UpdatedAt: time.Now().UTC()}
		s.accounts[userID] = a
	}
	return *a, nil
}

func (s *Store) Adjust(_ context.Context, userID string, delta int64, entryType, refType, refID string) (int64, error) {
	if delta == 0 {
		return 0, ledger.ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[userID]
	if !ok {
		return 0, ledger.ErrAccountNotFound
	}
	if a.Balance+delta < 0 {
		return 0, ledger.ErrInsufficientFunds
	}
	now := time.Now().UTC()
	a.Balance += delta
	a.UpdatedAt = now
	s.entries = append(s.entries, ledger.Entry{
		ID:        ledger.NewID(),
		UserID:    userID,
		Type:      entryType,
		Amount:    delta,
		RefType:   refType,
		RefID:     refID,
		CreatedAt: now,
	})
	return a.Balance, nil
}

func (s *Store) ListAccounts(_ context.Context, limit, offset int) ([]ledger.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.Lock()
	out := make([]ledger.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, *a)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return page(out, limit, offset), nil
}

func (s *Store) ListEntries(_ context.Context, f ledger.EntryFilter, limit, offset int) ([]ledger.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []ledger.Entry{}
	// newest first
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if f.RefID != "" && e.RefID != f.RefID {
			continue
		}
		if f.From != nil && e.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && e.CreatedAt.After(*f.To) {
			continue
		}
		out = append(out, e)
	}
	return page(out, limit, offset), nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
