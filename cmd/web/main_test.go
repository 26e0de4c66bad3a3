package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/diewo77/go-carteira/internal/config"
	"github.com/diewo77/go-carteira/internal/handlers"
	"github.com/diewo77/go-carteira/internal/logging"
	"github.com/diewo77/go-carteira/internal/store"
)

func TestHandlerRendersAgainstAPI(t *testing.T) {
	mux := http.NewServeMux()
	handlers.NewClientHandler(store.NewMemoryStore()).Register(mux)
	api := httptest.NewServer(mux)
	defer api.Close()

	cfg := &config.Config{Web: config.WebConfig{APIBaseURL: api.URL, CacheTTL: time.Second}}
	h := newHandler(cfg, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/clientes", nil)
	req.Header.Set("Accept-Language", "en")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No clients yet.")
	assert.NotEmpty(t, w.Header().Get(logging.RequestIDHeader))
}
