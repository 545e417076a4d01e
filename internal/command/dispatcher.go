package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"twentyone/internal/ratelimit"
	"twentyone/internal/session"

	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownCommand = errors.New("unknown_command")
	ErrRateLimited    = errors.New("rate_limited")
)

const (
	Start   = "start"
	Play    = "play"
	Hit     = "hit"
	Stand   = "stand"
	Balance = "balance"
	Help    = "help"
)

// Reply is what a transport sends back for one command. Data carries the
// structured result of a successful command.
type Reply struct {
	Command string `json:"command"`
	Text    string `json:"text"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
	Err     error  `json:"-"`
}

type Dispatcher struct {
	Sessions *session.Store
	Limiter  ratelimit.Limiter
}

func NewDispatcher(sessions *session.Store, limiter ratelimit.Limiter) *Dispatcher {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	return &Dispatcher{Sessions: sessions, Limiter: limiter}
}

// Parse splits "/play@bot 100" into ("play", "100").
func Parse(text string) (name, args string) {
	text = strings.TrimSpace(text)
	head, rest, _ := strings.Cut(text, " ")
	head = strings.TrimPrefix(head, "/")
	if at := strings.IndexByte(head, '@'); at >= 0 {
		head = head[:at]
	}
	return strings.ToLower(head), strings.TrimSpace(rest)
}

// Handle runs one text command for userID in chatID.
func (d *Dispatcher) Handle(ctx context.Context, chatID, userID, text string) Reply {
	name, args := Parse(text)
	reply := Reply{Command: name}

	allowed, retry, err := d.Limiter.Allow(ctx, chatID)
	if err != nil {
		log.Warn().Err(err).Str("chat_id", chatID).Msg("rate limiter unavailable; allowing command")
	} else if !allowed {
		reply.Err = ErrRateLimited
		reply.Error = ErrorCode(ErrRateLimited)
		reply.Text = fmt.Sprintf("Too many commands. Try again in %d s.", int(retry/time.Second))
		return reply
	}

	data, text, err := d.run(ctx, chatID, userID, name, args)
	if err != nil {
		reply.Err = err
		reply.Error = ErrorCode(err)
		reply.Text = renderError(err)
		if reply.Error == "internal_error" {
			log.Error().Err(err).Str("chat_id", chatID).Str("user_id", userID).Str("command", name).Msg("command failed")
		}
		return reply
	}
	reply.Data = data
	reply.Text = text
	return reply
}

func (d *Dispatcher) run(ctx context.Context, chatID, userID, name, args string) (any, string, error) {
	switch name {
	case Start:
		bal, err := d.Sessions.Greet(ctx, userID)
		if err != nil {
			return nil, "", err
		}
		return map[string]int64{"balance": bal}, renderGreeting(bal), nil
	case Balance:
		bal, err := d.Sessions.Balance(ctx, userID)
		if err != nil {
			return nil, "", err
		}
		return map[string]int64{"balance": bal}, renderBalance(bal), nil
	case Play:
		bet, err := session.ParseBet(args)
		if err != nil {
			return nil, "", err
		}
		res, err := d.Sessions.Start(ctx, chatID, userID, bet)
		if err != nil {
			return nil, "", err
		}
		return res, renderStart(res), nil
	case Hit:
		res, err := d.Sessions.Hit(ctx, chatID, userID)
		if err != nil {
			return nil, "", err
		}
		return res, renderHit(res), nil
	case Stand:
		res, err := d.Sessions.Stand(ctx, chatID, userID)
		if err != nil {
			return nil, "", err
		}
		return res, renderStand(res), nil
	case Help:
		return nil, usageText, nil
	default:
		return nil, "", ErrUnknownCommand
	}
}
