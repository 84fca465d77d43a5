package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pixel-casino/internal/app/player"
	"pixel-casino/internal/config"
	"pixel-casino/internal/game"
	"pixel-casino/internal/ledger"
	"pixel-casino/internal/store"
	"pixel-casino/internal/telemetry"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(st *store.Store, cfg config.AppConfig) *chi.Mux {
	led := ledger.New(st)
	engine := game.NewEngine(st, led, game.RulesFromConfig(cfg.Game), nil)
	sink := telemetry.New(st)
	playerSvc := player.NewService(st, engine, sink, cfg.Server.StartingBalance)

	playerHandlers := NewPlayerHandlers(playerSvc)
	adminHandlers := NewAdminHandlers(st)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Get("/public/rank", playerHandlers.Rank())
		r.Get("/public/shop", playerHandlers.Shop())

		r.Group(func(r chi.Router) {
			r.Use(IdentityMiddleware())
			r.Post("/join", playerHandlers.Join())
			r.Get("/me", playerHandlers.Me())
			r.Post("/games/jackpot", playerHandlers.Jackpot())
			r.Post("/games/card", playerHandlers.Card())
			r.Post("/games/memory/match", playerHandlers.MemoryMatch())
			r.Post("/buy", playerHandlers.Buy())
			r.Post("/telemetry", playerHandlers.Telemetry())
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminAPIKey))
			r.Get("/accounts", adminHandlers.Accounts())
			r.Get("/events", adminHandlers.Events())
			r.Get("/ledger", adminHandlers.Ledger())
			r.Post("/topup", adminHandlers.Topup())
			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})

	staticDir := filepath.Join("internal", "web", "static")
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	} else {
		log.Warn().Str("path", staticDir).Msg("static directory not found; skipping catch-all static route")
	}
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
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
