package config

import "testing"

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" || cfg.MaxMB != 10 || cfg.HTTPBodyMaxBytes != 4096 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadLogNormalizesLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "  DEBUG ")
	t.Setenv("LOG_HTTP_BODY_MAX_BYTES", "0")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "debug" || cfg.HTTPBodyMaxBytes != 0 {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
}

func TestLoadLogRejectsBadSizes(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"LOG_MAX_MB", "0"},
		{"LOG_MAX_MB", "-3"},
		{"LOG_HTTP_BODY_MAX_BYTES", "-1"},
		{"LOG_SAMPLE_EVERY", "often"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadLog(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
