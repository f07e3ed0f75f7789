package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNoDSN is returned when no connection string is configured.
var ErrNoDSN = errors.New("postgres DSN is empty")

// Config describes the restaurant database and its connection pool.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
	SlowQuery       time.Duration
}

// ConfigFromEnv reads POSTGRES_DSN and the optional POSTGRES_MAX_OPEN_CONNS,
// POSTGRES_MAX_IDLE_CONNS and POSTGRES_CONN_MAX_LIFETIME pool settings.
func ConfigFromEnv() Config {
	cfg := Config{DSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN"))}
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("POSTGRES_MAX_OPEN_CONNS"))); err == nil {
		cfg.MaxOpenConns = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("POSTGRES_MAX_IDLE_CONNS"))); err == nil {
		cfg.MaxIdleConns = n
	}
	if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("POSTGRES_CONN_MAX_LIFETIME"))); err == nil {
		cfg.ConnMaxLifetime = d
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns <= 0 || c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = min(5, c.MaxOpenConns)
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 30 * time.Minute
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = 5 * time.Second
	}
	if c.SlowQuery <= 0 {
		c.SlowQuery = 500 * time.Millisecond
	}
	return c
}

// Connect opens the pool and pings it. Driver errors are translated into gorm
// sentinels such as gorm.ErrDuplicatedKey. Slow queries are logged through logger.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, ErrNoDSN
	}
	cfg = cfg.withDefaults()
	gormCfg := &gorm.Config{TranslateError: true}
	if logger != nil {
		gormCfg.Logger = gormlogger.New(
			slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			gormlogger.Config{SlowThreshold: cfg.SlowQuery, LogLevel: gormlogger.Warn, IgnoreRecordNotFoundError: true},
		)
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN), gormCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Open connects for processes that can run on in-memory stores. It returns a
// nil DB when no DSN is set or the database is unreachable, and the cleanup is
// always safe to call.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := Connect(ctx, cfg, logger)
	switch {
	case errors.Is(err, ErrNoDSN):
		logger.Warn("POSTGRES_DSN not set, using in-memory stores")
		return nil, func() {}
	case err != nil:
		logger.Warn("postgres unreachable, using in-memory stores", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("postgres pool unavailable, using in-memory stores", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connection established", slog.Int("max_open_conns", sqlDB.Stats().MaxOpenConnections))
	return db, func() { _ = sqlDB.Close() }
}
