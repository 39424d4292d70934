package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/jinro-backend/internal/config"
)

const connectTimeout = 10 * time.Second

// NewPostgresPool creates and validates a PostgreSQL connection pool.
func NewPostgresPool(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxDBConns
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Str("database", poolCfg.ConnConfig.Database).
		Int32("max_conns", cfg.MaxDBConns).
		Msg("PostgreSQL connected")

	return pool, nil
}

// Backends holds the optional external stores. A nil field was not configured.
type Backends struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

// Connect opens PostgreSQL when the data source or history backend needs it,
// and Redis when REDIS_URL is set.
func Connect(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backends, error) {
	b := &Backends{}
	if cfg.NeedsPostgres() {
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		b.Pool = pool
	}
	if cfg.RedisURL != "" {
		rdb, err := NewRedisClient(ctx, cfg, log)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Redis = rdb
	}
	return b, nil
}

// Close releases whichever connections were opened.
func (b *Backends) Close() {
	if b.Pool != nil {
		b.Pool.Close()
	}
	if b.Redis != nil {
		_ = b.Redis.Close()
	}
}
