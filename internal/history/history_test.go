package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/jinro-backend/internal/model"
)

func entry(i int) model.ChatHistoryEntry {
	return model.ChatHistoryEntry{
		Question: fmt.Sprintf("질문 %d", i),
		Response: fmt.Sprintf("답변 %d <b>", i),
		Summary:  fmt.Sprintf("요약 %d", i),
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "none", "chat_history.json"), 0)

	got, err := s.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_KeepsLastFifty(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "chat_history.json"), DefaultLimit)

	for i := 1; i <= 55; i++ {
		require.NoError(t, s.Append(ctx, entry(i)))
	}

	got, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 50)
	assert.Equal(t, entry(6), got[0])
	assert.Equal(t, entry(55), got[49])
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chat_history.json")
	s := NewFileStore(path, 0)

	want := []model.ChatHistoryEntry{entry(1), entry(2), entry(3)}
	for _, e := range want {
		require.NoError(t, s.Append(ctx, e))
	}

	reopened := NewFileStore(path, 0)
	got, err := reopened.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"question": "질문 1"`)
	assert.Contains(t, string(raw), "<b>", "html is not escaped")
}

func TestFileStore_ConcurrentAppendsStayCapped(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "chat_history.json"), 10)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Append(ctx, entry(i)))
		}(i)
	}
	wg.Wait()

	got, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestFileStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path, 0).All(context.Background())
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "decode", ioErr.Op)
}

func TestFileStore_Replace(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "chat_history.json"), 2)

	require.NoError(t, s.Replace(ctx, []model.ChatHistoryEntry{entry(1), entry(2), entry(3)}))
	got, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.ChatHistoryEntry{entry(2), entry(3)}, got)

	require.NoError(t, s.Replace(ctx, nil))
	got, err = s.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecent(t *testing.T) {
	all := []model.ChatHistoryEntry{entry(1), entry(2), entry(3)}
	assert.Equal(t, []model.ChatHistoryEntry{entry(3), entry(2)}, Recent(all, 2))
	assert.Equal(t, []model.ChatHistoryEntry{entry(3), entry(2), entry(1)}, Recent(all, 0))
	assert.Equal(t, []model.ChatHistoryEntry{entry(3), entry(2), entry(1)}, Recent(all, 9))
	assert.Empty(t, Recent(nil, 5))
}
