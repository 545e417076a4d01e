package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Fatalf("RateLimitPerMinute = %d, want 60", cfg.RateLimitPerMinute)
	}
	if cfg.EventsExchange != "twentyone_events" {
		t.Fatalf("EventsExchange = %q", cfg.EventsExchange)
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.RateLimitPerMinute != 5 || cfg.RedisURL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}

func TestLoadServerRejectsBadInt(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

	if _, err := LoadServer(); err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadServerValidation(t *testing.T) {
	t.Run("negative rate", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_PER_MINUTE", "-1")
		if _, err := LoadServer(); err == nil {
			t.Fatal("expected error for negative rate limit")
		}
	})
	t.Run("admin key trimmed", func(t *testing.T) {
		t.Setenv("ADMIN_API_KEY", " secret \n")
		cfg, err := LoadServer()
		if err != nil {
			t.Fatalf("LoadServer() error = %v", err)
		}
		if cfg.AdminAPIKey != "secret" {
			t.Fatalf("AdminAPIKey = %q", cfg.AdminAPIKey)
		}
	})
}
