package httptransport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"twentyone/internal/config"
	"twentyone/internal/game"
	"twentyone/internal/ledger"
	"twentyone/internal/ratelimit"
	"twentyone/internal/session"
	"twentyone/internal/store/memory"
	"twentyone/internal/testutil"

	"github.com/go-chi/chi/v5"
)

const testAdminKey = "admin-key"

type testEnv struct {
	router *chi.Mux
	ledger *ledger.Ledger
}

func newTestEnv(t *testing.T, limiter ratelimit.Limiter, draws ...game.CardValue) *testEnv {
	t.Helper()
	led := ledger.New(memory.New(), 1000)
	sessions := session.New(led, testutil.RiggedShuffler{Draws: draws}, nil)
	r := NewRouter(sessions, led, limiter, config.ServerConfig{AdminAPIKey: testAdminKey}, config.LogConfig{HTTPBodyMaxBytes: 4096})
	return &testEnv{router: r, ledger: led}
}

func (e *testEnv) do(t *testing.T, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if header != nil {
		req.Header = header.Clone()
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	s, _ := decodeBody(t, w)["error"].(string)
	return s
}
