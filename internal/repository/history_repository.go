package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/jinro-backend/internal/history"
	"github.com/stemsi/jinro-backend/internal/model"
)

// HistoryRepository is the PostgreSQL history.Store. Appends trim the table
// to the newest limit rows in the same transaction.
type HistoryRepository struct {
	db    *pgxpool.Pool
	limit int
}

var _ history.Store = (*HistoryRepository)(nil)

func NewHistoryRepository(db *pgxpool.Pool, limit int) *HistoryRepository {
	if limit <= 0 {
		limit = history.DefaultLimit
	}
	return &HistoryRepository{db: db, limit: limit}
}

func (r *HistoryRepository) Append(ctx context.Context, entry model.ChatHistoryEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin history append: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serializes concurrent appenders so the trim sees every insert.
	if _, err := tx.Exec(ctx, `LOCK TABLE chat_history IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("lock history: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO chat_history (question, response, summary) VALUES ($1, $2, $3)`,
		entry.Question, entry.Response, entry.Summary,
	); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	query := `
		DELETE FROM chat_history
		WHERE id NOT IN (SELECT id FROM chat_history ORDER BY id DESC LIMIT $1)
	`
	if _, err := tx.Exec(ctx, query, r.limit); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *HistoryRepository) All(ctx context.Context) ([]model.ChatHistoryEntry, error) {
	query := `
		SELECT question, response, summary FROM (
			SELECT id, question, response, summary FROM chat_history ORDER BY id DESC LIMIT $1
		) recent
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query, r.limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	out := []model.ChatHistoryEntry{}
	for rows.Next() {
		var e model.ChatHistoryEntry
		if err := rows.Scan(&e.Question, &e.Response, &e.Summary); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
