package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cardscan/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory CardStore for service tests.
type fakeStore struct {
	cards      map[uuid.UUID]repository.Card
	failCreate bool
	created    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{cards: make(map[uuid.UUID]repository.Card)}
}

func (f *fakeStore) CreateCard(_ context.Context, params repository.CreateCardParams) (*repository.Card, error) {
	if f.failCreate {
		return nil, errors.New("database unavailable")
	}
	f.created++
	now := time.Now().UTC()
	card := repository.Card{
		ID:        uuid.New(),
		UserID:    params.UserID,
		Name:      params.Name,
		Title:     params.Title,
		Company:   params.Company,
		Emails:    params.Emails,
		Phones:    params.Phones,
		Websites:  params.Websites,
		Social:    params.Social,
		RawText:   params.RawText,
		ScannedAt: params.ScannedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.cards[card.ID] = card
	return &card, nil
}

func (f *fakeStore) GetCard(_ context.Context, userID string, id uuid.UUID) (*repository.Card, error) {
	card, ok := f.cards[id]
	if !ok || card.UserID != userID {
		return nil, errNotFound
	}
	return &card, nil
}

func (f *fakeStore) ListCards(_ context.Context, params repository.ListCardsParams) ([]repository.Card, error) {
	out := []repository.Card{}
	for _, card := range f.cards {
		if card.UserID == params.UserID {
			out = append(out, card)
		}
	}
	return out, nil
}

func (f *fakeStore) CountCards(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, card := range f.cards {
		if card.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) UpdateCard(_ context.Context, userID string, id uuid.UUID, params repository.UpdateCardParams) (*repository.Card, error) {
	card, ok := f.cards[id]
	if !ok || card.UserID != userID {
		return nil, errNotFound
	}
	card.Name = params.Name
	card.Title = params.Title
	card.Company = params.Company
	card.Emails = params.Emails
	card.Phones = params.Phones
	card.Websites = params.Websites
	card.Social = params.Social
	card.UpdatedAt = time.Now().UTC()
	f.cards[id] = card
	return &card, nil
}

func (f *fakeStore) DeleteCard(_ context.Context, userID string, id uuid.UUID) error {
	card, ok := f.cards[id]
	if !ok || card.UserID != userID {
		return errNotFound
	}
	delete(f.cards, id)
	return nil
}

func (f *fakeStore) DeleteCards(_ context.Context, userID string, ids []uuid.UUID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if err := f.DeleteCard(context.Background(), userID, id); err == nil {
			deleted++
		}
	}
	return deleted, nil
}

var errNotFound = errors.New("record not found")

func testOutbox(t *testing.T) *OutboxService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outbox.json")
	return NewOutboxService(path, zerolog.Nop())
}

func testParams(userID string) repository.CreateCardParams {
	name := "Jane Doe"
	return repository.CreateCardParams{
		UserID:    userID,
		Name:      &name,
		Emails:    []string{"jane@example.com"},
		Phones:    []string{"+1 415-555-0100"},
		Websites:  []string{},
		Social:    map[string][]string{},
		RawText:   "Jane Doe\njane@example.com",
		ScannedAt: time.Now().UTC(),
	}
}

func TestOutboxEnqueueAndList(t *testing.T) {
	outbox := testOutbox(t)

	entry, err := outbox.Enqueue(testParams("user-1"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, 0, entry.Attempts)

	_, err = outbox.Enqueue(testParams("user-2"))
	require.NoError(t, err)

	entries, err := outbox.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "user-1", entries[0].Params.UserID)
	assert.Equal(t, "user-2", entries[1].Params.UserID)
}

func TestOutboxListEmptyWhenFileMissing(t *testing.T) {
	outbox := testOutbox(t)

	entries, err := outbox.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	pending, err := outbox.Pending()
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestOutboxFlushDrainsQueue(t *testing.T) {
	outbox := testOutbox(t)
	store := newFakeStore()

	_, err := outbox.Enqueue(testParams("user-1"))
	require.NoError(t, err)
	_, err = outbox.Enqueue(testParams("user-1"))
	require.NoError(t, err)

	flushed, err := outbox.Flush(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, 2, flushed)
	assert.Equal(t, 2, store.created)

	pending, err := outbox.Pending()
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestOutboxFlushKeepsFailedEntries(t *testing.T) {
	outbox := testOutbox(t)
	store := newFakeStore()
	store.failCreate = true

	_, err := outbox.Enqueue(testParams("user-1"))
	require.NoError(t, err)

	flushed, err := outbox.Flush(context.Background(), store)
	require.NoError(t, err)
	assert.Zero(t, flushed)

	entries, err := outbox.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Attempts)
	assert.NotEmpty(t, entries[0].LastError)

	// Recovery drains the queue.
	store.failCreate = false
	flushed, err = outbox.Flush(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, 1, flushed)

	pending, err := outbox.Pending()
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestOutboxFlushEmptyQueueIsNoop(t *testing.T) {
	outbox := testOutbox(t)

	flushed, err := outbox.Flush(context.Background(), newFakeStore())
	require.NoError(t, err)
	assert.Zero(t, flushed)
}
