package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cardscan/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OutboxEntry is a card save that could not reach the database yet.
type OutboxEntry struct {
	ID         uuid.UUID                   `json:"id"`
	Params     repository.CreateCardParams `json:"params"`
	EnqueuedAt time.Time                   `json:"enqueued_at"`
	Attempts   int                         `json:"attempts"`
	LastError  string                      `json:"last_error,omitempty"`
}

// OutboxService is a file-backed queue of pending card saves. Writes that
// fail against the database land here and a background flush retries them.
type OutboxService struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

func NewOutboxService(path string, log zerolog.Logger) *OutboxService {
	return &OutboxService{path: path, log: log}
}

// Enqueue appends a pending save to the outbox file.
func (s *OutboxService) Enqueue(params repository.CreateCardParams) (*OutboxEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	entry := OutboxEntry{
		ID:         uuid.New(),
		Params:     params,
		EnqueuedAt: time.Now().UTC(),
	}
	entries = append(entries, entry)

	if err := s.save(entries); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("entry_id", entry.ID.String()).
		Int("pending", len(entries)).
		Msg("card save queued to outbox")

	return &entry, nil
}

// List returns the pending entries in enqueue order.
func (s *OutboxService) List() ([]OutboxEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Pending returns the number of queued entries.
func (s *OutboxService) Pending() (int, error) {
	entries, err := s.List()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Flush retries every pending entry against the store. Entries that save
// successfully are removed; failures stay queued with their attempt count
// bumped. Returns the number of entries flushed.
func (s *OutboxService) Flush(ctx context.Context, store CardStore) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	remaining := make([]OutboxEntry, 0, len(entries))
	flushed := 0

	for _, entry := range entries {
		if _, err := store.CreateCard(ctx, entry.Params); err != nil {
			entry.Attempts++
			entry.LastError = err.Error()
			remaining = append(remaining, entry)

			s.log.Warn().
				Err(err).
				Str("entry_id", entry.ID.String()).
				Int("attempts", entry.Attempts).
				Msg("outbox entry flush failed")
			continue
		}
		flushed++
	}

	if err := s.save(remaining); err != nil {
		return flushed, err
	}

	if flushed > 0 {
		s.log.Info().
			Int("flushed", flushed).
			Int("remaining", len(remaining)).
			Msg("outbox flushed")
	}

	return flushed, nil
}

// load reads the outbox file. A missing file means an empty queue.
func (s *OutboxService) load() ([]OutboxEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []OutboxEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read outbox file: %w", err)
	}

	var entries []OutboxEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode outbox file: %w", err)
	}
	return entries, nil
}

// save writes the queue atomically via a temp file rename.
func (s *OutboxService) save(entries []OutboxEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode outbox entries: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create outbox directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write outbox file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace outbox file: %w", err)
	}
	return nil
}
