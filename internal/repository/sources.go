package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stemsi/jinro-backend/internal/config"
	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/history"
)

// ─── Backend selection ──────────────────────────────────────────────
// Each helper picks the implementation named by config. pool and rdb may be
// nil when the matching backend is not configured.

// LoadDataset reads the record sets from CSV files or from PostgreSQL.
func LoadDataset(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*dataset.Store, error) {
	switch cfg.DataSource {
	case config.DataSourceCSV:
		return dataset.LoadCSV(cfg.DataDir)
	case config.DataSourcePostgres:
		if pool == nil {
			return nil, fmt.Errorf("data source %q requires DATABASE_URL", cfg.DataSource)
		}
		return NewDatasetRepository(pool).Load(ctx)
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}

// NewHistoryStore returns the JSON file store or the chat_history table.
func NewHistoryStore(cfg *config.Config, pool *pgxpool.Pool) (history.Store, error) {
	switch cfg.HistoryBackend {
	case config.HistoryBackendFile:
		return history.NewFileStore(cfg.HistoryFile, cfg.HistoryLimit), nil
	case config.HistoryBackendPostgres:
		if pool == nil {
			return nil, fmt.Errorf("history backend %q requires DATABASE_URL", cfg.HistoryBackend)
		}
		return NewHistoryRepository(pool, cfg.HistoryLimit), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
	}
}

// NewSessionStore keeps sessions in Redis when available, else in process.
func NewSessionStore(cfg *config.Config, rdb *redis.Client) SessionRepository {
	if rdb != nil {
		return NewRedisSessionRepository(rdb, cfg.SessionTTL)
	}
	return NewMemorySessionRepository(cfg.SessionTTL)
}
