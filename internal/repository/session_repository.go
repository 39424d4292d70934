package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/jinro-backend/internal/config"
	"github.com/stemsi/jinro-backend/internal/session"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores session contexts with a sliding TTL.
type SessionRepository interface {
	Get(ctx context.Context, id string) (session.Context, error)
	Save(ctx context.Context, sess session.Context) error
	Delete(ctx context.Context, id string) error
}

type redisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionRepository(rdb *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *redisSessionRepository) Get(ctx context.Context, id string) (session.Context, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.SessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Context{}, ErrSessionNotFound
	}
	if err != nil {
		return session.Context{}, fmt.Errorf("get session: %w", err)
	}
	var sess session.Context
	if err := json.Unmarshal(raw, &sess); err != nil {
		return session.Context{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (r *redisSessionRepository) Save(ctx context.Context, sess session.Context) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, config.CacheKey.SessionKey(sess.ID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, config.CacheKey.SessionKey(id)).Err()
}

// memorySessionRepository is the single-process fallback when no Redis is configured.
type memorySessionRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memorySession
}

type memorySession struct {
	sess      session.Context
	expiresAt time.Time
}

func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memorySessionRepository{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memorySession),
	}
}

func (r *memorySessionRepository) Get(_ context.Context, id string) (session.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return session.Context{}, ErrSessionNotFound
	}
	if r.ttl > 0 && r.now().After(s.expiresAt) {
		delete(r.sessions, id)
		return session.Context{}, ErrSessionNotFound
	}
	return s.sess.Clone(), nil
}

func (r *memorySessionRepository) Save(_ context.Context, sess session.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweep()
	r.sessions[sess.ID] = memorySession{sess: sess.Clone(), expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memorySessionRepository) sweep() {
	if r.ttl <= 0 {
		return
	}
	now := r.now()
	for id, s := range r.sessions {
		if now.After(s.expiresAt) {
			delete(r.sessions, id)
		}
	}
}
