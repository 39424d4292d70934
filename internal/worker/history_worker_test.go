package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/jinro-backend/internal/model"
)

type flakyStore struct {
	mu       sync.Mutex
	failures int
	entries  []model.ChatHistoryEntry
}

func (s *flakyStore) Append(_ context.Context, e model.ChatHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("disk full")
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *flakyStore) All(_ context.Context) ([]model.ChatHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ChatHistoryEntry(nil), s.entries...), nil
}

func (s *flakyStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func TestHistoryWorker_PersistsInOrder(t *testing.T) {
	store := &flakyStore{}
	w := NewHistoryWorker(NewMemoryQueue(8), store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	for _, q := range []string{"a", "b", "c"} {
		require.NoError(t, w.Enqueue(ctx, model.ChatHistoryEntry{Question: q}))
	}

	assert.Eventually(t, func() bool { return store.count() == 3 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done

	got, _ := store.All(context.Background())
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Question, got[1].Question, got[2].Question})
}

func TestHistoryWorker_RetriesFailedAppend(t *testing.T) {
	store := &flakyStore{failures: 2}
	w := NewHistoryWorker(NewMemoryQueue(8), store, zerolog.Nop()).WithRetryDelay(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, w.Enqueue(ctx, model.ChatHistoryEntry{Question: "q", Summary: "s"}))
	assert.Eventually(t, func() bool { return store.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestHistoryWorker_FailedAppendKeepsOrder(t *testing.T) {
	store := &flakyStore{failures: 1}
	w := NewHistoryWorker(NewMemoryQueue(8), store, zerolog.Nop()).WithRetryDelay(5 * time.Millisecond)

	for _, q := range []string{"a", "b", "c"} {
		require.NoError(t, w.Enqueue(context.Background(), model.ChatHistoryEntry{Question: q}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.count() == 3 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done

	got, _ := store.All(context.Background())
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Question, got[1].Question, got[2].Question})
}

func TestHistoryWorker_CancelledRetryRequeuesAtHead(t *testing.T) {
	store := &flakyStore{failures: 1}
	q := NewMemoryQueue(8)
	w := NewHistoryWorker(q, store, zerolog.Nop()).WithRetryDelay(time.Hour)

	for _, s := range []string{"first", "second"} {
		require.NoError(t, w.Enqueue(context.Background(), model.ChatHistoryEntry{Question: s}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.processNext(ctx)
		close(done)
	}()
	assert.Eventually(t, func() bool { return q.Len() == 1 }, 2*time.Second, 5*time.Millisecond,
		"first entry is held by the worker while it waits to retry")
	cancel()
	<-done

	assert.Equal(t, 2, q.Len())
	w.drain(context.Background())

	got, _ := store.All(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Question)
	assert.Equal(t, "second", got[1].Question)
}

func TestHistoryWorker_DrainFailureStaysAtHead(t *testing.T) {
	store := &flakyStore{failures: 1}
	q := NewMemoryQueue(1)
	w := NewHistoryWorker(q, store, zerolog.Nop())
	require.NoError(t, w.Enqueue(context.Background(), model.ChatHistoryEntry{Question: "x"}))

	w.drain(context.Background())
	assert.Zero(t, store.count())

	// The failed entry sits ahead of the channel, which is free for new work.
	require.NoError(t, w.Enqueue(context.Background(), model.ChatHistoryEntry{Question: "y"}))
	assert.Equal(t, 2, q.Len())

	w.drain(context.Background())
	got, _ := store.All(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, []string{"x", "y"}, []string{got[0].Question, got[1].Question})
}

func TestHistoryWorker_DrainsOnShutdown(t *testing.T) {
	store := &flakyStore{}
	q := NewMemoryQueue(8)
	w := NewHistoryWorker(q, store, zerolog.Nop())

	for _, s := range []string{"1", "2", "3"} {
		require.NoError(t, w.Enqueue(context.Background(), model.ChatHistoryEntry{Question: s}))
	}
	require.NoError(t, q.Push(context.Background(), []byte("not json")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	assert.Equal(t, 3, store.count())
	assert.Zero(t, q.Len())
}

func TestHistoryWorker_DrainStopsAtFailure(t *testing.T) {
	store := &flakyStore{failures: 1}
	q := NewMemoryQueue(8)
	w := NewHistoryWorker(q, store, zerolog.Nop())
	require.NoError(t, w.Enqueue(context.Background(), model.ChatHistoryEntry{Question: "keep"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	assert.Zero(t, store.count())
	assert.Equal(t, 1, q.Len(), "failed entry stays queued")
}

func TestMemoryQueue(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue(1)

	require.NoError(t, q.Push(ctx, []byte("x")))
	assert.ErrorIs(t, q.Push(ctx, []byte("y")), ErrQueueFull)

	got, err := q.Pop(ctx, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)

	_, err = q.Pop(ctx, 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = q.TryPop(ctx)
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestMemoryQueue_RequeueServedFirst(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue(1)

	require.NoError(t, q.Push(ctx, []byte("tail")))
	require.NoError(t, q.Requeue(ctx, []byte("head")), "requeue ignores the channel bound")
	assert.Equal(t, 2, q.Len())

	got, err := q.Pop(ctx, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []byte("head"), got)

	got, err = q.TryPop(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("tail"), got)
}
