package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/jinro-backend/internal/repository"
	"github.com/stemsi/jinro-backend/internal/session"
)

type SessionService interface {
	Create(ctx context.Context) (session.Context, error)
	Get(ctx context.Context, id string) (session.Context, error)
	Save(ctx context.Context, sess session.Context) error
	// Home clears the session back to the landing state.
	Home(ctx context.Context, id string) (session.Context, error)
}

type sessionService struct {
	repo repository.SessionRepository
	now  func() time.Time
}

func NewSessionService(repo repository.SessionRepository) SessionService {
	return &sessionService{repo: repo, now: time.Now}
}

func (s *sessionService) Create(ctx context.Context) (session.Context, error) {
	sess := session.New(uuid.NewString(), s.now().UTC())
	if err := s.repo.Save(ctx, sess); err != nil {
		return session.Context{}, err
	}
	return sess, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (session.Context, error) {
	return s.repo.Get(ctx, id)
}

func (s *sessionService) Save(ctx context.Context, sess session.Context) error {
	sess.UpdatedAt = s.now().UTC()
	return s.repo.Save(ctx, sess)
}

func (s *sessionService) Home(ctx context.Context, id string) (session.Context, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return session.Context{}, err
	}
	next := sess.Home(s.now().UTC())
	if err := s.repo.Save(ctx, next); err != nil {
		return session.Context{}, err
	}
	return next, nil
}
