package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrQueueEmpty is returned by Pop when nothing arrived before the timeout.
	ErrQueueEmpty = errors.New("queue empty")
	ErrQueueFull  = errors.New("queue full")
)

// Queue is a FIFO of opaque payloads.
type Queue interface {
	Push(ctx context.Context, payload []byte) error
	// Requeue puts payload back at the head so it is the next one popped.
	Requeue(ctx context.Context, payload []byte) error
	// Pop blocks for up to timeout.
	Pop(ctx context.Context, timeout time.Duration) ([]byte, error)
	// TryPop returns ErrQueueEmpty immediately when there is nothing queued.
	TryPop(ctx context.Context) ([]byte, error)
}

// RedisQueue is a Redis list consumed with BLPOP.
type RedisQueue struct {
	rdb *redis.Client
	key string
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{rdb: rdb, key: key}
}

func (q *RedisQueue) Push(ctx context.Context, payload []byte) error {
	return q.rdb.RPush(ctx, q.key, payload).Err()
}

func (q *RedisQueue) Requeue(ctx context.Context, payload []byte) error {
	return q.rdb.LPush(ctx, q.key, payload).Err()
}

func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.rdb.BLPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrQueueEmpty
	}
	if err != nil {
		return nil, err
	}
	if len(result) < 2 {
		return nil, ErrQueueEmpty
	}
	return []byte(result[1]), nil
}

func (q *RedisQueue) TryPop(ctx context.Context) ([]byte, error) {
	raw, err := q.rdb.LPop(ctx, q.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrQueueEmpty
	}
	return raw, err
}

// MemoryQueue is a bounded in-process queue for single-instance deployments.
// A requeued payload is held in head and served before the channel.
type MemoryQueue struct {
	ch chan []byte

	mu   sync.Mutex
	head [][]byte
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 1024
	}
	return &MemoryQueue{ch: make(chan []byte, size)}
}

func (q *MemoryQueue) Push(_ context.Context, payload []byte) error {
	select {
	case q.ch <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

// Requeue never fails: the head slot is outside the channel bound.
func (q *MemoryQueue) Requeue(_ context.Context, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.head = append([][]byte{payload}, q.head...)
	return nil
}

func (q *MemoryQueue) popHead() ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.head) == 0 {
		return nil, false
	}
	p := q.head[0]
	q.head = q.head[1:]
	return p, true
}

func (q *MemoryQueue) Pop(ctx context.Context, timeout time.Duration) ([]byte, error) {
	if p, ok := q.popHead(); ok {
		return p, nil
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case p := <-q.ch:
		return p, nil
	case <-timer.C:
		return nil, ErrQueueEmpty
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *MemoryQueue) TryPop(_ context.Context) ([]byte, error) {
	if p, ok := q.popHead(); ok {
		return p, nil
	}
	select {
	case p := <-q.ch:
		return p, nil
	default:
		return nil, ErrQueueEmpty
	}
}

func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.head) + len(q.ch)
}
