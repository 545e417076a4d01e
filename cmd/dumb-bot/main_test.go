package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"twentyone/internal/command"
	"twentyone/internal/config"
	"twentyone/internal/game"
	"twentyone/internal/ledger"
	"twentyone/internal/session"
	"twentyone/internal/store/memory"
	"twentyone/internal/testutil"
	"twentyone/internal/ws"

	"github.com/gorilla/websocket"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		score, standOn int
		want           string
	}{
		{12, 17, "/hit"},
		{16, 17, "/hit"},
		{17, 17, "/stand"},
		{20, 17, "/stand"},
		{14, 14, "/stand"},
	}
	for _, tt := range tests {
		if got := decide(tt.score, tt.standOn); got != tt.want {
			t.Fatalf("decide(%d, %d) = %s, want %s", tt.score, tt.standOn, got, tt.want)
		}
	}
}

func TestPlayRoundAgainstServer(t *testing.T) {
	led := ledger.New(memory.New(), 1000)
	sessions := session.New(led, testutil.RiggedShuffler{Draws: []game.CardValue{game.Ten, game.Six, game.Nine, game.Eight, game.Five}}, nil)
	srv := ws.NewServer(command.NewDispatcher(sessions, nil))
	ts := httptest.NewServer(http.HandlerFunc(srv.HandleWS))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	b := &bot{conn: conn, cfg: config.BotConfig{UserID: "bot", ChatID: "bot-chat", Bet: 10, StandOn: 17}}
	outcome, balance, err := b.playRound()
	if err != nil {
		t.Fatalf("playRound: %v", err)
	}
	if outcome != "win" || balance != 1010 {
		t.Fatalf("outcome %s balance %d", outcome, balance)
	}
	if b.seq != 3 {
		t.Fatalf("sent %d commands, want play, hit, stand", b.seq)
	}
}
