package httptransport

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"twentyone/internal/game"
)

func TestGameFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t, nil, game.Ten, game.Seven, game.Nine, game.Seven, game.Two)

	w := env.do(t, http.MethodPost, "/api/users/u1/greet", "", nil)
	if w.Code != http.StatusOK || decodeBody(t, w)["balance"].(float64) != 1000 {
		t.Fatalf("greet: %d %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodPost, "/api/chats/c1/play", `{"user_id":"u1","bet":100}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("play: %d %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["player_score"].(float64) != 17 || body["dealer_up_card"].(float64) != 9 || body["balance"].(float64) != 900 {
		t.Fatalf("unexpected deal %v", body)
	}

	w = env.do(t, http.MethodGet, "/api/chats/c1/session", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("session: %d", w.Code)
	}
	snap := decodeBody(t, w)
	if dealer := snap["dealer_hand"].([]any); len(dealer) != 1 {
		t.Fatalf("dealer hole card exposed: %v", snap)
	}
	if _, ok := snap["dealer_score"]; ok {
		t.Fatalf("dealer score exposed: %v", snap)
	}

	w = env.do(t, http.MethodPost, "/api/chats/c1/hit", `{"user_id":"u1"}`, nil)
	if w.Code != http.StatusOK || decodeBody(t, w)["player_score"].(float64) != 19 {
		t.Fatalf("hit: %d %s", w.Code, w.Body.String())
	}

	// dealer 9+7 draws from the rest of the deck; only the outcome's consistency is checked
	w = env.do(t, http.MethodPost, "/api/chats/c1/stand", `{"user_id":"u1"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stand: %d %s", w.Code, w.Body.String())
	}
	res := decodeBody(t, w)
	bal, err := env.ledger.GetOrCreate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if res["balance"].(float64) != float64(bal) {
		t.Fatalf("stand balance %v, ledger %d", res["balance"], bal)
	}
	want := map[string]int64{"win": 1100, "push": 1000, "loss": 900}[res["outcome"].(string)]
	if bal != want {
		t.Fatalf("outcome %v but balance %d", res["outcome"], bal)
	}

	w = env.do(t, http.MethodGet, "/api/users/u1/balance", "", nil)
	if decodeBody(t, w)["balance"].(float64) != float64(bal) {
		t.Fatalf("balance endpoint: %s", w.Body.String())
	}
}

func TestGameErrorsOverHTTP(t *testing.T) {
	env := newTestEnv(t, nil, game.Ten, game.Seven, game.Nine, game.Seven)

	tests := []struct {
		name, method, path, body string
		status                   int
		code                     string
	}{
		{"bad json", http.MethodPost, "/api/chats/c1/play", `{`, http.StatusBadRequest, "invalid_json"},
		{"missing user", http.MethodPost, "/api/chats/c1/play", `{"bet":10}`, http.StatusBadRequest, "invalid_request"},
		{"missing bet", http.MethodPost, "/api/chats/c1/play", `{"user_id":"u1"}`, http.StatusBadRequest, "missing_or_invalid_bet"},
		{"zero bet", http.MethodPost, "/api/chats/c1/play", `{"user_id":"u1","bet":0}`, http.StatusBadRequest, "missing_or_invalid_bet"},
		{"negative bet", http.MethodPost, "/api/chats/c1/play", `{"user_id":"u1","bet":-5}`, http.StatusBadRequest, "missing_or_invalid_bet"},
		{"too much", http.MethodPost, "/api/chats/c1/play", `{"user_id":"u1","bet":1001}`, http.StatusPaymentRequired, "insufficient_funds"},
		{"hit nothing", http.MethodPost, "/api/chats/c1/hit", `{"user_id":"u1"}`, http.StatusNotFound, "no_active_game"},
		{"stand nothing", http.MethodPost, "/api/chats/c1/stand", `{"user_id":"u1"}`, http.StatusNotFound, "no_active_game"},
		{"no session", http.MethodGet, "/api/chats/c1/session", "", http.StatusNotFound, "no_active_game"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, tt.body, nil)
			if w.Code != tt.status || errorOf(t, w) != tt.code {
				t.Fatalf("got %d %s, want %d %s", w.Code, w.Body.String(), tt.status, tt.code)
			}
		})
	}

	if w := env.do(t, http.MethodPost, "/api/chats/c1/play", `{"user_id":"u1","bet":1000}`, nil); w.Code != http.StatusCreated {
		t.Fatalf("all-in play: %d %s", w.Code, w.Body.String())
	}
	if w := env.do(t, http.MethodPost, "/api/chats/c1/play", `{"user_id":"u1","bet":1}`, nil); w.Code != http.StatusConflict || errorOf(t, w) != "game_already_active" {
		t.Fatalf("second play: %d %s", w.Code, w.Body.String())
	}
	if w := env.do(t, http.MethodPost, "/api/chats/c1/hit", `{"user_id":"u2"}`, nil); w.Code != http.StatusForbidden || errorOf(t, w) != "not_your_turn" {
		t.Fatalf("foreign hit: %d %s", w.Code, w.Body.String())
	}
}

func TestCommandEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/commands", `{"chat_id":"c1","user_id":"u1","text":"/balance"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("balance command: %d %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["text"] != "Your balance: 1000 coins." || body["command"] != "balance" {
		t.Fatalf("unexpected reply %v", body)
	}

	w = env.do(t, http.MethodPost, "/api/commands", `{"chat_id":"c1","user_id":"u1","text":"/fly"}`, nil)
	if w.Code != http.StatusBadRequest || errorOf(t, w) != "unknown_command" {
		t.Fatalf("unknown command: %d %s", w.Code, w.Body.String())
	}
	if text, _ := decodeBody(t, w)["text"].(string); !strings.HasPrefix(text, "Unknown command.") {
		t.Fatalf("unknown command text %q", text)
	}

	w = env.do(t, http.MethodPost, "/api/commands", `{"chat_id":"c1","text":"/balance"}`, nil)
	if w.Code != http.StatusBadRequest || errorOf(t, w) != "invalid_request" {
		t.Fatalf("missing user: %d %s", w.Code, w.Body.String())
	}
}

type countingLimiter struct {
	limit int
	seen  map[string]int
}

func (l *countingLimiter) Allow(_ context.Context, subject string) (bool, time.Duration, error) {
	l.seen[subject]++
	if l.seen[subject] > l.limit {
		return false, 20 * time.Second, nil
	}
	return true, 0, nil
}

func TestRateLimitPerChat(t *testing.T) {
	limiter := &countingLimiter{limit: 2, seen: map[string]int{}}
	env := newTestEnv(t, limiter)

	for i := 0; i < 2; i++ {
		w := env.do(t, http.MethodPost, "/api/chats/c1/hit", `{"user_id":"u1"}`, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("request %d: %d", i, w.Code)
		}
	}
	w := env.do(t, http.MethodPost, "/api/chats/c1/hit", `{"user_id":"u1"}`, nil)
	if w.Code != http.StatusTooManyRequests || errorOf(t, w) != "rate_limited" {
		t.Fatalf("third request: %d %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Retry-After"); got != "20" {
		t.Fatalf("Retry-After = %q", got)
	}
	if w := env.do(t, http.MethodPost, "/api/chats/c2/hit", `{"user_id":"u1"}`, nil); w.Code != http.StatusNotFound {
		t.Fatalf("other chat limited: %d", w.Code)
	}
}
