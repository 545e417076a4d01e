package httptransport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type flusherRecorder struct {
	*httptest.ResponseRecorder
	flushed bool
}

func (f *flusherRecorder) Flush() {
	f.flushed = true
}

func TestBodyCaptureMiddlewarePreservesFlusher(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "no flusher", http.StatusInternalServerError)
			return
		}
		flusher.Flush()
		w.WriteHeader(http.StatusOK)
	})

	mw := BodyCaptureMiddleware(4096)
	rec := &flusherRecorder{ResponseRecorder: httptest.NewRecorder()}
	req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	mw(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !rec.flushed {
		t.Fatal("expected flusher to be called")
	}
}

func TestBodyCaptureMiddlewareKeepsFullBody(t *testing.T) {
	long := strings.Repeat("x", 100)
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = string(b)
		_, _ = w.Write([]byte(long))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/topup", strings.NewReader(long))
	BodyCaptureMiddleware(10)(handler).ServeHTTP(rec, req)

	if got != long {
		t.Fatalf("handler saw %d bytes, want %d", len(got), len(long))
	}
	if rec.Body.String() != long {
		t.Fatalf("response truncated to %d bytes", rec.Body.Len())
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 0, errors.New("redis down")
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	r := chi.NewRouter()
	r.With(RateLimitMiddleware(failingLimiter{})).Get("/chats/{chat_id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chats/c1", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected request to pass, got %d", rec.Code)
	}
}

func TestBodyCaptureMiddlewareDisabled(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if _, ok := w.(*captureWriter); ok {
			t.Fatal("capture writer installed with zero limit")
		}
		w.WriteHeader(http.StatusNoContent)
	})
	rec := httptest.NewRecorder()
	BodyCaptureMiddleware(0)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/topup", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestCheckAdminAuth(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		want   bool
	}{
		{"none", http.Header{}, false},
		{"header", http.Header{"X-Admin-Key": {"k1"}}, true},
		{"wrong header", http.Header{"X-Admin-Key": {"k2"}}, false},
		{"bearer", http.Header{"Authorization": {"Bearer k1"}}, true},
		{"basic", http.Header{"Authorization": {"Basic k1"}}, false},
		{"empty bearer", http.Header{"Authorization": {"Bearer "}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
			req.Header = tt.header
			if got := CheckAdminAuth(req, "k1"); got != tt.want {
				t.Fatalf("CheckAdminAuth = %v, want %v", got, tt.want)
			}
		})
	}
}
