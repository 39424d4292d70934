package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/session"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := NewMemorySessionRepository(time.Hour).(*memorySessionRepository)
	repo.now = func() time.Time { return now }

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sess := session.New("abc", now).Append(model.ChatMessage{Role: model.RoleUser, Content: "안녕"})
	require.NoError(t, repo.Save(ctx, sess))

	got, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	got.Messages[0].Content = "changed"
	again, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "안녕", again.Messages[0].Content)

	now = now.Add(2 * time.Hour)
	_, err = repo.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, repo.Save(ctx, sess))
	require.NoError(t, repo.Delete(ctx, "abc"))
	_, err = repo.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
