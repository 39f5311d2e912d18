package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"debtrecon/internal/logging"
)

type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

type Options struct {
	MaxConns int32
	// PingRetries bounds the startup ping attempts; zero means 5.
	PingRetries uint64
	Logger      *zap.Logger
}

// Connect opens a pool and pings it with exponential backoff, so the service can
// start before the database is accepting connections.
func Connect(ctx context.Context, url string, opts Options) (*DB, error) {
	log := logging.OrNop(opts.Logger).Named("postgres")

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	cfg.MaxConns = 10
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}

	retries := opts.PingRetries
	if retries == 0 {
		retries = 5
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries), ctx)
	err = backoff.RetryNotify(func() error { return pool.Ping(ctx) }, b, func(err error, wait time.Duration) {
		log.Warn("database not ready", zap.Error(err), zap.Duration("retry_in", wait))
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	log.Info("connected", zap.Int32("max_conns", cfg.MaxConns))
	return &DB{Pool: pool, log: log}, nil
}

// Ping reports whether the pool can reach the database.
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func (db *DB) Close() { db.Pool.Close() }
