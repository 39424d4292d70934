package service

import (
	"context"

	"github.com/stemsi/jinro-backend/internal/history"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/topic"
)

// DefaultRecentLimit matches the sidebar of recent summaries.
const DefaultRecentLimit = 5

type HistoryService interface {
	// Recent returns up to n entries, newest first.
	Recent(ctx context.Context, n int) ([]model.ChatHistoryEntry, error)
	Popular(ctx context.Context, limit int) ([]model.TopicCount, error)
}

type historyService struct {
	store history.Store
}

func NewHistoryService(store history.Store) HistoryService {
	return &historyService{store: store}
}

func (s *historyService) Recent(ctx context.Context, n int) ([]model.ChatHistoryEntry, error) {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return history.Recent(all, n), nil
}

func (s *historyService) Popular(ctx context.Context, limit int) ([]model.TopicCount, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	topics := topic.Popular(all, limit)
	if topics == nil {
		topics = []model.TopicCount{}
	}
	return topics, nil
}
