package httptransport

import (
	"context"
	"net/http"
	"testing"

	"twentyone/internal/game"
)

func TestAdminEndpointsAuthAndBasicBehavior(t *testing.T) {
	env := newTestEnv(t, nil, game.Ten, game.Ten, game.Nine, game.Eight, game.Five)

	unauth := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/accounts", ""},
		{http.MethodGet, "/api/ledger", ""},
		{http.MethodPost, "/api/topup", `{"user_id":"x","amount":10}`},
		{http.MethodGet, "/api/debug/vars", ""},
	}
	for _, tc := range unauth {
		w := env.do(t, tc.method, tc.path, tc.body, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("unauth %s %s expected 401, got %d", tc.method, tc.path, w.Code)
		}
	}

	adminHeader := http.Header{"X-Admin-Key": []string{testAdminKey}}
	bearer := http.Header{"Authorization": []string{"Bearer " + testAdminKey}}

	if w := env.do(t, http.MethodGet, "/api/accounts", "", bearer); w.Code != http.StatusOK {
		t.Fatalf("accounts with bearer expected 200, got %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/debug/vars", "", adminHeader); w.Code != http.StatusOK {
		t.Fatalf("debug vars expected 200, got %d", w.Code)
	}

	badTopups := []string{`{`, `{"user_id":"","amount":10}`, `{"user_id":"u1","amount":0}`, `{"user_id":"u1","amount":-3}`}
	for _, body := range badTopups {
		if w := env.do(t, http.MethodPost, "/api/topup", body, adminHeader); w.Code != http.StatusBadRequest {
			t.Fatalf("topup %s expected 400, got %d", body, w.Code)
		}
	}

	w := env.do(t, http.MethodPost, "/api/topup", `{"user_id":"u1","amount":250,"reason":"promo"}`, adminHeader)
	if w.Code != http.StatusOK || decodeBody(t, w)["balance"].(float64) != 1250 {
		t.Fatalf("topup: %d %s", w.Code, w.Body.String())
	}

	// play and bust so the ledger carries a game entry as well
	env.do(t, http.MethodPost, "/api/chats/c1/play", `{"user_id":"u1","bet":50}`, nil)
	env.do(t, http.MethodPost, "/api/chats/c1/hit", `{"user_id":"u1"}`, nil)

	bal, _ := env.ledger.GetOrCreate(context.Background(), "u1")
	if bal != 1200 {
		t.Fatalf("balance after bust = %d", bal)
	}

	w = env.do(t, http.MethodGet, "/api/ledger?user_id=u1", "", adminHeader)
	if w.Code != http.StatusOK {
		t.Fatalf("ledger expected 200, got %d", w.Code)
	}
	items := decodeBody(t, w)["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("ledger entries = %d, want topup and bet debit", len(items))
	}

	w = env.do(t, http.MethodGet, "/api/ledger?ref_id=promo", "", adminHeader)
	if items := decodeBody(t, w)["items"].([]any); len(items) != 1 {
		t.Fatalf("ref filter returned %d entries", len(items))
	}

	w = env.do(t, http.MethodGet, "/api/accounts?limit=1000", "", adminHeader)
	body := decodeBody(t, w)
	if body["limit"].(float64) != 500 || len(body["items"].([]any)) != 1 {
		t.Fatalf("accounts page: %v", body)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK || decodeBody(t, w)["ok"] != true {
		t.Fatalf("healthz: %d %s", w.Code, w.Body.String())
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query         string
		limit, offset int
	}{
		{"", 50, 0},
		{"?limit=10&offset=20", 10, 20},
		{"?limit=0&offset=-1", 1, 0},
		{"?limit=9999", 500, 0},
		{"?limit=abc", 50, 0},
	}
	for _, tt := range tests {
		req, _ := http.NewRequest(http.MethodGet, "/x"+tt.query, nil)
		limit, offset := ParsePagination(req)
		if limit != tt.limit || offset != tt.offset {
			t.Fatalf("%q: got %d/%d, want %d/%d", tt.query, limit, offset, tt.limit, tt.offset)
		}
	}
}
