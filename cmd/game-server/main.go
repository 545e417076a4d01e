package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"twentyone/internal/config"
	"twentyone/internal/events"
	"twentyone/internal/ledger"
	"twentyone/internal/logging"
	"twentyone/internal/ratelimit"
	"twentyone/internal/session"
	"twentyone/internal/store"
	httptransport "twentyone/internal/transport/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	closeLog, err := logging.Init(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, cleanup, err := newServer(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("server init failed")
	}
	defer cleanup()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Server.HTTPAddr).Str("storage", cfg.Storage.Mode).Msg("http listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

// newServer wires storage, events, rate limiting and the session store into
// an http.Server. cleanup releases everything newServer opened.
func newServer(ctx context.Context, cfg config.AppConfig) (*http.Server, func(), error) {
	accounts, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	led := ledger.New(accounts, cfg.Game.StartBalance)
	pub := events.Connect(cfg.Server.AMQPURL, cfg.Server.EventsExchange)
	limiter, closeLimiter := ratelimit.Connect(ctx, cfg.Server.RedisURL, cfg.Server.RateLimitPerMinute)

	sessions := session.New(led, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), pub, session.WithSessionTTL(cfg.Game.SessionTTL))
	sessions.StartJanitor(ctx, cfg.Game.JanitorInterval)

	r := httptransport.NewRouter(sessions, led, limiter, cfg.Server, cfg.Log)
	if cfg.Log.Level == "debug" {
		httptransport.LogRoutes(r)
	}

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	cleanup := func() {
		closeLimiter()
		pub.Close()
		if err := accounts.Close(); err != nil {
			log.Warn().Err(err).Msg("close account store")
		}
	}
	return server, cleanup, nil
}
