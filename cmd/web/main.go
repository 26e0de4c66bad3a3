// Command web serves the HTML frontend on top of the carteira API.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/diewo77/go-carteira/apiclient"
	"github.com/diewo77/go-carteira/httpx"
	"github.com/diewo77/go-carteira/internal/config"
	"github.com/diewo77/go-carteira/internal/logging"
	"github.com/diewo77/go-carteira/internal/web"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(logging.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	srv := &http.Server{
		Addr:         ":" + cfg.Web.Port,
		Handler:      newHandler(cfg, logger),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	hctx, hcancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := apiclient.New(cfg.Web.APIBaseURL, nil).Health(hctx); err != nil {
		logger.Warn("api not reachable at startup", zap.String("api", cfg.Web.APIBaseURL), zap.Error(err))
	}
	hcancel()

	go func() {
		logger.Info("web starting", zap.String("port", cfg.Web.Port), zap.String("api", cfg.Web.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("web server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
}

func newHandler(cfg *config.Config, logger *zap.Logger) http.Handler {
	q := apiclient.NewQueries(apiclient.New(cfg.Web.APIBaseURL, nil), apiclient.NewCache(cfg.Web.CacheTTL))
	mux := http.NewServeMux()
	web.NewHandler(q).Register(mux)
	return httpx.Chain(mux,
		logging.HTTPMiddleware(logger),
		httpx.Recover,
		web.Prefs,
	)
}
