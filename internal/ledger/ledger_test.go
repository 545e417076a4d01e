package ledger_test

import (
	"context"
	"errors"
	"testing"

	"twentyone/internal/ledger"
	"twentyone/internal/store/memory"
)

func TestGetOrCreateUsesStartBalance(t *testing.T) {
	l := ledger.New(memory.New(), 250)
	bal, err := l.GetOrCreate(context.Background(), "alice")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if bal != 250 {
		t.Fatalf("balance = %d, want 250", bal)
	}
}

func TestAdjustRejectsZeroDelta(t *testing.T) {
	l := ledger.New(memory.New(), 100)
	if _, err := l.Adjust(context.Background(), "alice", 0, ledger.EntryTopupCredit, ledger.RefAdmin, "x"); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestAdjustOpensAccountLazily(t *testing.T) {
	l := ledger.New(memory.New(), 100)
	bal, err := l.CreditTopup(context.Background(), "new-user", "welcome", 50)
	if err != nil {
		t.Fatalf("topup: %v", err)
	}
	if bal != 150 {
		t.Fatalf("balance = %d, want 150", bal)
	}
}

func TestBetAndPayoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(memory.New(), 100)

	bal, err := l.DebitBet(ctx, "alice", "g1", 40)
	if err != nil || bal != 60 {
		t.Fatalf("debit = %d, %v", bal, err)
	}
	bal, err = l.CreditPayout(ctx, "alice", "g1", ledger.EntryWinCredit, 80)
	if err != nil || bal != 140 {
		t.Fatalf("credit = %d, %v", bal, err)
	}
	if _, err := l.DebitBet(ctx, "alice", "g2", 141); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := l.DebitBet(ctx, "alice", "g3", -5); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	entries, err := l.ListEntries(ctx, ledger.EntryFilter{RefID: "g1"}, 10, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	var sum int64
	for _, e := range entries {
		sum += e.Amount
	}
	if len(entries) != 2 || sum != 40 {
		t.Fatalf("entries for g1 = %+v", entries)
	}
}

func TestNewIDIsUniqueAndSorted(t *testing.T) {
	prev := ledger.NewID()
	for i := 0; i < 100; i++ {
		id := ledger.NewID()
		if id <= prev {
			t.Fatalf("ids not increasing: %s then %s", prev, id)
		}
		prev = id
	}
}
