package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/jinro-backend/internal/history"
	"github.com/stemsi/jinro-backend/internal/model"
)

const (
	HistoryPollTimeout = time.Second
	HistoryRetryDelay  = 5 * time.Second
)

// HistoryWorker is the single writer of the history store. Chat handlers
// enqueue exchanges; the worker appends them in arrival order.
type HistoryWorker struct {
	queue      Queue
	store      history.Store
	log        zerolog.Logger
	retryDelay time.Duration
}

func NewHistoryWorker(queue Queue, store history.Store, log zerolog.Logger) *HistoryWorker {
	return &HistoryWorker{
		queue:      queue,
		store:      store,
		log:        log.With().Str("component", "history_worker").Logger(),
		retryDelay: HistoryRetryDelay,
	}
}

// WithRetryDelay overrides the pause after a failed append.
func (w *HistoryWorker) WithRetryDelay(d time.Duration) *HistoryWorker {
	w.retryDelay = d
	return w
}

// Enqueue schedules entry for persistence.
func (w *HistoryWorker) Enqueue(ctx context.Context, entry model.ChatHistoryEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}
	if err := w.queue.Push(ctx, raw); err != nil {
		return fmt.Errorf("enqueue history entry: %w", err)
	}
	return nil
}

// Start runs until ctx is cancelled, then drains what is left. Call in a goroutine.
func (w *HistoryWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *HistoryWorker) processNext(ctx context.Context) {
	raw, err := w.queue.Pop(ctx, HistoryPollTimeout)
	if err != nil {
		if !errors.Is(err, ErrQueueEmpty) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Pop error")
		}
		return
	}

	entry, err := decodeEntry(raw)
	if err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	// Retry the same entry until it is stored so later entries cannot overtake it.
	for attempt := 1; ; attempt++ {
		err := w.store.Append(ctx, entry)
		if err == nil {
			return
		}
		w.log.Error().Err(err).
			Str("summary", entry.Summary).
			Int("attempt", attempt).
			Dur("retry_in", w.retryDelay).
			Msg("Persist error, retrying")

		select {
		case <-time.After(w.retryDelay):
		case <-ctx.Done():
			w.requeue(raw, entry)
			return
		}
	}
}

// requeue puts raw back at the head of the queue for drain to pick up first.
func (w *HistoryWorker) requeue(raw []byte, entry model.ChatHistoryEntry) {
	if err := w.queue.Requeue(context.Background(), raw); err != nil {
		w.log.Error().Err(err).Str("summary", entry.Summary).Msg("Requeue failed, entry lost")
	}
}

// drain persists everything still queued; it stops at the first failure and
// leaves that entry queued.
func (w *HistoryWorker) drain(ctx context.Context) {
	drained := 0
	for {
		raw, err := w.queue.TryPop(ctx)
		if err != nil {
			break
		}

		entry, err := decodeEntry(raw)
		if err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}

		if err := w.store.Append(ctx, entry); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.requeue(raw, entry)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}

func decodeEntry(raw []byte) (model.ChatHistoryEntry, error) {
	var e model.ChatHistoryEntry
	err := json.Unmarshal(raw, &e)
	return e, err
}
