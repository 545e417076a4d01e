package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInsufficientFunds = errors.New("insufficient_funds")
	ErrAccountNotFound   = errors.New("account_not_found")
	ErrInvalidAmount     = errors.New("invalid_amount")
)

const (
	EntryBetDebit    = "bet_debit"
	EntryWinCredit   = "win_credit"
	EntryPushCredit  = "push_credit"
	EntryTopupCredit = "topup_credit"
	EntryBetRefund   = "bet_refund"

	RefGame  = "game"
	RefAdmin = "admin"
)

const DefaultStartBalance int64 = 1000

type Account struct {
	UserID    string    `json:"user_id"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	RefType   string    `json:"ref_type"`
	RefID     string    `json:"ref_id"`
	CreatedAt time.Time `json:"created_at"`
}

type EntryFilter struct {
	UserID string
	RefID  string
	From   *time.Time
	To     *time.Time
}

// AccountStore persists balances. Adjust must apply the delta, reject a
// negative result with ErrInsufficientFunds and record one Entry, all
// atomically with respect to other calls for the same user.
type AccountStore interface {
	GetOrCreateAccount(ctx context.Context, userID string, initial int64) (Account, error)
	Adjust(ctx context.Context, userID string, delta int64, entryType, refType, refID string) (int64, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]Account, error)
	ListEntries(ctx context.Context, f EntryFilter, limit, offset int) ([]Entry, error)
	Ping(ctx context.Context) error
	Close() error
}

type Ledger struct {
	Store        AccountStore
	StartBalance int64
}

func New(s AccountStore, startBalance int64) *Ledger {
	if startBalance < 0 {
		startBalance = DefaultStartBalance
	}
	return &Ledger{Store: s, StartBalance: startBalance}
}

// GetOrCreate returns the user's balance, opening the account at the
// starting balance on first access.
func (l *Ledger) GetOrCreate(ctx context.Context, userID string) (int64, error) {
	acct, err := l.Store.GetOrCreateAccount(ctx, userID, l.StartBalance)
	if err != nil {
		return 0, fmt.Errorf("get or create account: %w", err)
	}
	return acct.Balance, nil
}

func (l *Ledger) Adjust(ctx context.Context, userID string, delta int64, entryType, refType, refID string) (int64, error) {
	if delta == 0 {
		return 0, ErrInvalidAmount
	}
	if _, err := l.GetOrCreate(ctx, userID); err != nil {
		return 0, err
	}
	return l.Store.Adjust(ctx, userID, delta, entryType, refType, refID)
}

func (l *Ledger) DebitBet(ctx context.Context, userID, gameID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return l.Adjust(ctx, userID, -amount, EntryBetDebit, RefGame, gameID)
}

// CreditPayout credits a win or push payout for a finished game.
func (l *Ledger) CreditPayout(ctx context.Context, userID, gameID, entryType string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return l.Adjust(ctx, userID, amount, entryType, RefGame, gameID)
}

func (l *Ledger) CreditTopup(ctx context.Context, userID, reason string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return l.Adjust(ctx, userID, amount, EntryTopupCredit, RefAdmin, reason)
}

func (l *Ledger) ListAccounts(ctx context.Context, limit, offset int) ([]Account, error) {
	return l.Store.ListAccounts(ctx, limit, offset)
}

func (l *Ledger) ListEntries(ctx context.Context, f EntryFilter, limit, offset int) ([]Entry, error) {
	return l.Store.ListEntries(ctx, f, limit, offset)
}

func (l *Ledger) Ping(ctx context.Context) error {
	return l.Store.Ping(ctx)
}
