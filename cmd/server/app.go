package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/diewo77/go-carteira/httpx"
	"github.com/diewo77/go-carteira/internal/config"
	"github.com/diewo77/go-carteira/internal/handlers"
	"github.com/diewo77/go-carteira/internal/logging"
	"github.com/diewo77/go-carteira/internal/store"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	store   store.Store
	handler http.Handler
}

// NewApp creates a new application with all routes and middleware configured.
func NewApp(s store.Store, cfg *config.Config, log *zap.Logger) *App {
	app := &App{mux: http.NewServeMux(), store: s}
	app.setupRoutes()
	app.handler = httpx.Chain(app.mux,
		logging.HTTPMiddleware(log),
		httpx.Recover,
		httpx.CORS(cfg.CORS.Origins),
		httpx.RateLimitByIP(httpx.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            time.Duration(cfg.RateLimit.WindowSec) * time.Second,
			Burst:             cfg.RateLimit.Burst,
			TrustProxy:        cfg.RateLimit.TrustProxy,
		}),
	)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	handlers.NewClientHandler(a.store).Register(a.mux)
	handlers.NewAssetHandler(a.store).Register(a.mux)
	a.mux.HandleFunc("GET /healthz", a.healthz)
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Ping(r.Context()); err != nil {
		logging.FromContext(r.Context()).Warn("health check failed", zap.Error(err))
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
