package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"twentyone/internal/command"
	"twentyone/internal/config"
	"twentyone/internal/ledger"
	"twentyone/internal/mcpserver"
	"twentyone/internal/ratelimit"
	"twentyone/internal/session"
	"twentyone/internal/ws"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(sessions *session.Store, led *ledger.Ledger, limiter ratelimit.Limiter, cfg config.ServerConfig, logCfg config.LogConfig) *chi.Mux {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	dispatcher := command.NewDispatcher(sessions, limiter)
	wsSrv := ws.NewServer(dispatcher)
	mcpSrv := mcpserver.New(sessions)

	gameHandlers := NewGameHandlers(sessions, dispatcher)
	adminHandlers := NewAdminHandlers(led)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())
	r.Get("/ws", wsSrv.HandleWS)
	r.With(APILogMiddleware()).MethodFunc(http.MethodOptions, "/mcp", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", "POST, GET, DELETE, OPTIONS")
		w.WriteHeader(http.StatusNoContent)
	})
	r.With(APILogMiddleware()).Method(http.MethodPost, "/mcp", mcpSrv.Handler())
	r.With(APILogMiddleware()).Method(http.MethodGet, "/mcp", mcpSrv.Handler())
	r.With(APILogMiddleware()).Method(http.MethodDelete, "/mcp", mcpSrv.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Post("/users/{user_id}/greet", gameHandlers.Greet())
		r.Get("/users/{user_id}/balance", gameHandlers.Balance())
		r.Post("/commands", gameHandlers.Command())

		r.Route("/chats/{chat_id}", func(r chi.Router) {
			r.Get("/session", gameHandlers.Session())
			r.Group(func(r chi.Router) {
				r.Use(RateLimitMiddleware(limiter))
				r.Post("/play", gameHandlers.Play())
				r.Post("/hit", gameHandlers.Hit())
				r.Post("/stand", gameHandlers.Stand())
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Get("/accounts", adminHandlers.Accounts())
			r.Get("/ledger", adminHandlers.Ledger())
			r.With(BodyCaptureMiddleware(logCfg.HTTPBodyMaxBytes)).Post("/topup", adminHandlers.Topup())

			r.Route("/debug", func(r chi.Router) {
				r.Use(BodyCaptureMiddleware(logCfg.HTTPBodyMaxBytes))
				r.Get("/vars", expvar.Handler().ServeHTTP)
			})
		})
	})
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 64)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
