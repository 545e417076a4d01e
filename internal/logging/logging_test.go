package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"twentyone/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	closeFn, err := Init(config.LogConfig{Level: "debug", File: path, MaxMB: 1})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer closeFn()
	defer Init(config.LogConfig{Level: "info"})

	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("level = %v, want debug", zerolog.GlobalLevel())
	}
	log.Info().Str("chat_id", "c1").Msg("game started")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"chat_id":"c1"`) {
		t.Fatalf("log file missing entry: %s", b)
	}
	if Writer() == nil {
		t.Fatal("Writer() returned nil")
	}
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	if _, err := Init(config.LogConfig{Level: "chatty"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %v, want info", zerolog.GlobalLevel())
	}
}
