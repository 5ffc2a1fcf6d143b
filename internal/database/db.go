package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// ErrMissingDSN is returned by Connect when no Postgres DSN is configured.
var ErrMissingDSN = errors.New("postgres dsn is not configured")

// The directory is read once into memory; the pool mostly serves submissions
// and moderation.
const (
	maxDirectoryConns = 8
	connLifetime      = time.Hour
	connIdleTime      = 15 * time.Minute
	healthCheckEvery  = 30 * time.Second
)

// Connect opens the pgx pool behind the company directory and the
// submissions store. It fails when Postgres does not answer a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, ErrMissingDSN
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = maxDirectoryConns
	cfg.MaxConnLifetime = connLifetime
	cfg.MaxConnIdleTime = connIdleTime
	cfg.HealthCheckPeriod = healthCheckEvery

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open directory pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("directory database unreachable: %w", err)
	}
	return pool, nil
}

// OpenSQL exposes the pool through database/sql for tools such as goose.
// Closing the returned handle does not close the pool.
func OpenSQL(pool *pgxpool.Pool) (*sql.DB, error) {
	if pool == nil {
		return nil, errors.New("migrations need an open directory pool")
	}
	return stdlib.OpenDBFromPool(pool), nil
}
