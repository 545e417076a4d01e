// Package ledgertest holds behaviour checks shared by every AccountStore
// backend.
package ledgertest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"twentyone/internal/ledger"
)

// Run exercises open against the AccountStore contract. open must return an
// empty store; Run closes it.
func Run(t *testing.T, open func(t *testing.T) ledger.AccountStore) {
	t.Helper()
	cases := []struct {
		name string
		fn   func(t *testing.T, st ledger.AccountStore)
	}{
		{"GetOrCreateOnce", testGetOrCreateOnce},
		{"AdjustWritesEntry", testAdjustWritesEntry},
		{"AdjustRejectsOverdraw", testAdjustRejectsOverdraw},
		{"AdjustUnknownAccount", testAdjustUnknownAccount},
		{"ConcurrentFirstAccess", testConcurrentFirstAccess},
		{"ConcurrentDebits", testConcurrentDebits},
		{"ListAccountsPaged", testListAccountsPaged},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st := open(t)
			defer st.Close()
			c.fn(t, st)
		})
	}
}

func testGetOrCreateOnce(t *testing.T, st ledger.AccountStore) {
	ctx := context.Background()
	a, err := st.GetOrCreateAccount(ctx, "alice", 1000)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Balance != 1000 || a.UserID != "alice" {
		t.Fatalf("unexpected account %+v", a)
	}
	if _, err := st.Adjust(ctx, "alice", -300, ledger.EntryBetDebit, ledger.RefGame, "g1"); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	a, err = st.GetOrCreateAccount(ctx, "alice", 1000)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Balance != 700 {
		t.Fatalf("second access reset balance: %d", a.Balance)
	}
}

func testAdjustWritesEntry(t *testing.T, st ledger.AccountStore) {
	ctx := context.Background()
	if _, err := st.GetOrCreateAccount(ctx, "bob", 50); err != nil {
		t.Fatalf("create: %v", err)
	}
	bal, err := st.Adjust(ctx, "bob", 40, ledger.EntryWinCredit, ledger.RefGame, "g2")
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if bal != 90 {
		t.Fatalf("balance = %d, want 90", bal)
	}
	entries, err := st.ListEntries(ctx, ledger.EntryFilter{UserID: "bob"}, 10, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Amount != 40 || e.Type != ledger.EntryWinCredit || e.RefID != "g2" || e.ID == "" {
		t.Fatalf("unexpected entry %+v", e)
	}
	byRef, err := st.ListEntries(ctx, ledger.EntryFilter{RefID: "missing"}, 10, 0)
	if err != nil || len(byRef) != 0 {
		t.Fatalf("ref filter returned %v, %v", byRef, err)
	}
}

func testAdjustRejectsOverdraw(t *testing.T, st ledger.AccountStore) {
	ctx := context.Background()
	if _, err := st.GetOrCreateAccount(ctx, "carol", 10); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.Adjust(ctx, "carol", -11, ledger.EntryBetDebit, ledger.RefGame, "g3"); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	a, _ := st.GetOrCreateAccount(ctx, "carol", 10)
	if a.Balance != 10 {
		t.Fatalf("balance changed on rejected debit: %d", a.Balance)
	}
	entries, _ := st.ListEntries(ctx, ledger.EntryFilter{UserID: "carol"}, 10, 0)
	if len(entries) != 0 {
		t.Fatalf("rejected debit wrote entries: %+v", entries)
	}
	bal, err := st.Adjust(ctx, "carol", -10, ledger.EntryBetDebit, ledger.RefGame, "g4")
	if err != nil || bal != 0 {
		t.Fatalf("debit to zero = %d, %v", bal, err)
	}
}

func testAdjustUnknownAccount(t *testing.T, st ledger.AccountStore) {
	if _, err := st.Adjust(context.Background(), "ghost", 5, ledger.EntryTopupCredit, ledger.RefAdmin, "x"); !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func testConcurrentFirstAccess(t *testing.T, st ledger.AccountStore) {
	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := st.GetOrCreateAccount(ctx, "dave", 1000)
			if err == nil && a.Balance != 1000 {
				err = fmt.Errorf("balance %d", a.Balance)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent create: %v", err)
		}
	}
	accounts, err := st.ListAccounts(ctx, 10, 0)
	if err != nil || len(accounts) != 1 {
		t.Fatalf("accounts = %+v, %v", accounts, err)
	}
}

func testConcurrentDebits(t *testing.T, st ledger.AccountStore) {
	ctx := context.Background()
	if _, err := st.GetOrCreateAccount(ctx, "erin", 100); err != nil {
		t.Fatalf("create: %v", err)
	}
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := st.Adjust(ctx, "erin", -30, ledger.EntryBetDebit, ledger.RefGame, fmt.Sprintf("g%d", i))
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else if !errors.Is(err, ledger.ErrInsufficientFunds) {
				t.Errorf("debit %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()
	if ok != 3 {
		t.Fatalf("successful debits = %d, want 3", ok)
	}
	a, _ := st.GetOrCreateAccount(ctx, "erin", 100)
	if a.Balance != 10 {
		t.Fatalf("balance = %d, want 10", a.Balance)
	}
}

func testListAccountsPaged(t *testing.T, st ledger.AccountStore) {
	ctx := context.Background()
	for _, id := range []string{"u3", "u1", "u2"} {
		if _, err := st.GetOrCreateAccount(ctx, id, 5); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	first, err := st.ListAccounts(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 2 || first[0].UserID != "u1" || first[1].UserID != "u2" {
		t.Fatalf("unexpected first page %+v", first)
	}
	rest, _ := st.ListAccounts(ctx, 2, 2)
	if len(rest) != 1 || rest[0].UserID != "u3" {
		t.Fatalf("unexpected second page %+v", rest)
	}
}
