package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "3333", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.Origins)
	assert.Equal(t, "3000", cfg.Web.Port)
	assert.Equal(t, "http://localhost:3333", cfg.Web.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Web.CacheTTL)
	assert.True(t, cfg.App.Migrations)
	assert.False(t, cfg.RateLimit.TrustProxy)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_DEBUG", "yes")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("RATELIMIT_REQUESTS", "0")
	t.Setenv("SERVER_READ_TIMEOUT", "not-a-number")
	t.Setenv("RATELIMIT_TRUST_PROXY", "true")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.Origins)
	assert.Equal(t, 0, cfg.RateLimit.Requests)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.True(t, cfg.RateLimit.TrustProxy)
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "carteira", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=carteira sslmode=disable", d.DSN())

	d.URL = "  'host=x user=y password=z dbname=w'  "
	assert.Equal(t, "host=x user=y password=z dbname=w sslmode=disable", d.DSN())
}

func TestNormalizeDSN(t *testing.T) {
	assert.Equal(t, "postgres://u@h/db", NormalizeDSN(`"postgres://u@h/db"`))
	assert.Equal(t, "not a dsn", NormalizeDSN("not a dsn"))
	assert.Equal(t, "", NormalizeDSN("  "))
	assert.Equal(t, "host=h sslmode=require", NormalizeDSN("host=h   sslmode=require"))
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "host=h password=*** dbname=d", MaskDSN("host=h password=secret dbname=d"))
	masked := MaskDSN("postgres://u:secret@h/db")
	assert.NotContains(t, masked, "secret")
	assert.Contains(t, masked, "@h/db")
}
