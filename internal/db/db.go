// Package db opens the relational database and keeps its schema current.
package db

import (
	"errors"
	"fmt"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/go-carteira/internal/config"
	"github.com/diewo77/go-carteira/internal/db/migrations"
	"github.com/diewo77/go-carteira/internal/logging"
	"github.com/diewo77/go-carteira/internal/models"
)

// ErrUnsupportedDriver is returned for drivers without a relational backend.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// retryDelay is the pause between connection attempts.
var retryDelay = 2 * time.Second

// Open connects to the configured database, retrying while it starts up.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	gcfg := &gorm.Config{Logger: logging.GormLogger(log, cfg.Debug)}
	attempts := max(cfg.ConnectRetries, 1)

	var (
		gdb *gorm.DB
		err error
	)
	for i := 1; i <= attempts; i++ {
		gdb, err = gorm.Open(dialector, gcfg)
		if err == nil {
			err = ping(gdb)
		}
		if err == nil {
			break
		}
		log.Warn("database connection failed",
			zap.Int("attempt", i), zap.Int("max_attempts", attempts), zap.Error(err))
		if i < attempts {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after %d attempts: %w", attempts, err)
	}

	target := cfg.SQLitePath
	if cfg.Driver == "postgres" {
		target = config.MaskDSN(cfg.DSN())
	}
	log.Info("database connected", zap.String("driver", cfg.Driver), zap.String("dsn", target))
	return gdb, nil
}

func ping(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Migrate brings the schema up to date. PostgreSQL runs the embedded SQL
// migrations; other dialects fall back to AutoMigrate.
func Migrate(gdb *gorm.DB) error {
	if gdb.Dialector.Name() != "postgres" {
		if err := gdb.AutoMigrate(&models.Client{}, &models.Asset{}); err != nil {
			return fmt.Errorf("automigrate: %w", err)
		}
		return nil
	}
	return runSQLMigrations(gdb)
}

func runSQLMigrations(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sql migrations failed: %w", err)
	}
	return nil
}
