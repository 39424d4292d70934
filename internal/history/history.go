// Package history persists answered chat exchanges, keeping only the most
// recent ones.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/stemsi/jinro-backend/internal/model"
)

// DefaultLimit is the number of entries a store retains.
const DefaultLimit = 50

// Store is an append-only log capped at a fixed length; the oldest entries
// are evicted first.
type Store interface {
	Append(ctx context.Context, entry model.ChatHistoryEntry) error
	// All returns the retained entries, oldest first.
	All(ctx context.Context) ([]model.ChatHistoryEntry, error)
}

// IOError reports a failed read or write of the history document.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("history %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FileStore keeps the history as one JSON array on disk. Every append
// rewrites the whole document through a temp file and rename.
type FileStore struct {
	path  string
	limit int
	mu    sync.Mutex
}

func NewFileStore(path string, limit int) *FileStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &FileStore{path: path, limit: limit}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Append(_ context.Context, entry model.ChatHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	entries = Trim(append(entries, entry), s.limit)
	return s.write(entries)
}

func (s *FileStore) All(_ context.Context) ([]model.ChatHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Replace overwrites the document with entries, trimmed to the limit.
func (s *FileStore) Replace(_ context.Context, entries []model.ChatHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(Trim(entries, s.limit))
}

func (s *FileStore) read() ([]model.ChatHistoryEntry, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.ChatHistoryEntry{}, nil
	}
	if err != nil {
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []model.ChatHistoryEntry{}, nil
	}
	var entries []model.ChatHistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &IOError{Op: "decode", Path: s.path, Err: err}
	}
	return entries, nil
}

func (s *FileStore) write(entries []model.ChatHistoryEntry) error {
	if entries == nil {
		entries = []model.ChatHistoryEntry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return &IOError{Op: "encode", Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// Trim keeps the last limit entries.
func Trim(entries []model.ChatHistoryEntry, limit int) []model.ChatHistoryEntry {
	if limit > 0 && len(entries) > limit {
		return append([]model.ChatHistoryEntry(nil), entries[len(entries)-limit:]...)
	}
	return entries
}

// Recent returns up to n entries, newest first.
func Recent(entries []model.ChatHistoryEntry, n int) []model.ChatHistoryEntry {
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]model.ChatHistoryEntry, 0, n)
	for i := len(entries) - 1; i >= len(entries)-n; i-- {
		out = append(out, entries[i])
	}
	return out
}
