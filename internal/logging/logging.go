// Package logging builds the zap logger shared by the API and the frontend and
// carries a request-scoped logger through context.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Env    string // "development" selects the console encoder and caller info
	Level  string // debug, info, warn, error
	Format string // json or console; empty keeps the env default
}

// New returns a configured zap.Logger and installs it as the global logger.
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Env == "development" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.DisableCaller = true
	}
	switch strings.ToLower(cfg.Format) {
	case "json":
		zc.Encoding = "json"
	case "console", "text":
		zc.Encoding = "console"
	}
	if cfg.Level != "" {
		if err := zc.Level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	zc.EncoderConfig.TimeKey = "timestamp"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}
