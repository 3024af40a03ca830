package service

import (
	"context"
	"testing"

	"cardscan/backend/internal/extract"
	"cardscan/backend/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCard = `John Smith
Senior Software Engineer
Acme Technologies
john.smith@acme.com
+1 (415) 555-0100
www.acme.com`

func newTestService(store CardStore, outbox *OutboxService) *CardService {
	return NewCardService(store, extract.New(extract.Config{}), outbox, zerolog.Nop())
}

func TestScanDoesNotPersist(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)

	record := svc.Scan(sampleCard)

	require.NotNil(t, record)
	require.NotNil(t, record.Name)
	assert.Equal(t, "John Smith", *record.Name)
	assert.Equal(t, []string{"john.smith@acme.com"}, record.Emails)
	assert.Zero(t, store.created)
}

func TestScanAndSavePersistsCard(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)

	result, err := svc.ScanAndSave(context.Background(), "user-1", sampleCard)
	require.NoError(t, err)

	assert.False(t, result.Queued)
	require.NotNil(t, result.Card)
	assert.Equal(t, "user-1", result.Card.UserID)
	require.NotNil(t, result.Card.Name)
	assert.Equal(t, "John Smith", *result.Card.Name)
	assert.Equal(t, 1, store.created)
}

func TestScanAndSaveQueuesOnStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failCreate = true
	outbox := testOutbox(t)
	svc := newTestService(store, outbox)

	result, err := svc.ScanAndSave(context.Background(), "user-1", sampleCard)
	require.NoError(t, err)

	assert.True(t, result.Queued)
	assert.Nil(t, result.Card)
	require.NotNil(t, result.Record)

	entries, err := outbox.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "user-1", entries[0].Params.UserID)
}

func TestScanAndSaveErrorsWithoutOutbox(t *testing.T) {
	store := newFakeStore()
	store.failCreate = true
	svc := newTestService(store, nil)

	result, err := svc.ScanAndSave(context.Background(), "user-1", sampleCard)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestClassifyLines(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	lines := svc.ClassifyLines(sampleCard)
	require.Len(t, lines, 6)

	byLine := make(map[string]extract.LineType)
	for _, l := range lines {
		byLine[l.Line] = l.Type
	}
	assert.Equal(t, extract.LineTypeName, byLine["John Smith"])
	assert.Equal(t, extract.LineTypeEmail, byLine["john.smith@acme.com"])
	assert.Equal(t, extract.LineTypePhone, byLine["+1 (415) 555-0100"])
	assert.Equal(t, extract.LineTypeWebsite, byLine["www.acme.com"])
}

func TestListCardsReturnsTotal(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)

	_, err := svc.ScanAndSave(context.Background(), "user-1", sampleCard)
	require.NoError(t, err)
	_, err = svc.ScanAndSave(context.Background(), "user-2", sampleCard)
	require.NoError(t, err)

	cards, total, err := svc.ListCards(context.Background(), repository.ListCardsParams{
		UserID: "user-1",
		Limit:  20,
	})
	require.NoError(t, err)
	assert.Len(t, cards, 1)
	assert.Equal(t, int64(1), total)
}
