// Package service holds the business logic between the HTTP handlers and
// the storage layer.
package service

import (
	"context"
	"fmt"
	"time"

	"cardscan/backend/internal/extract"
	"cardscan/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CardStore is the persistence surface the card service depends on.
type CardStore interface {
	CreateCard(ctx context.Context, params repository.CreateCardParams) (*repository.Card, error)
	GetCard(ctx context.Context, userID string, id uuid.UUID) (*repository.Card, error)
	ListCards(ctx context.Context, params repository.ListCardsParams) ([]repository.Card, error)
	CountCards(ctx context.Context, userID string) (int64, error)
	UpdateCard(ctx context.Context, userID string, id uuid.UUID, params repository.UpdateCardParams) (*repository.Card, error)
	DeleteCard(ctx context.Context, userID string, id uuid.UUID) error
	DeleteCards(ctx context.Context, userID string, ids []uuid.UUID) (int64, error)
}

// ScanResult is the outcome of scanning a card. When the database is
// unreachable the save is queued to the outbox and Queued is set.
type ScanResult struct {
	Record *extract.ContactRecord `json:"record"`
	Card   *repository.Card       `json:"card,omitempty"`
	Queued bool                   `json:"queued"`
}

type CardService struct {
	store     CardStore
	extractor *extract.Extractor
	outbox    *OutboxService
	log       zerolog.Logger
}

// NewCardService creates the card service. outbox may be nil, in which
// case failed saves are returned as errors instead of queued.
func NewCardService(store CardStore, extractor *extract.Extractor, outbox *OutboxService, log zerolog.Logger) *CardService {
	return &CardService{
		store:     store,
		extractor: extractor,
		outbox:    outbox,
		log:       log,
	}
}

// Scan runs extraction over raw OCR text without persisting anything.
func (s *CardService) Scan(rawText string) *extract.ContactRecord {
	return s.extractor.ExtractContactInfo(rawText)
}

// ScanAndSave extracts contact information and persists the card. If the
// database write fails and an outbox is configured, the save is queued
// for a later flush instead of being lost.
func (s *CardService) ScanAndSave(ctx context.Context, userID, rawText string) (*ScanResult, error) {
	record := s.extractor.ExtractContactInfo(rawText)

	params := repository.CreateCardParams{
		UserID:    userID,
		Name:      record.Name,
		Title:     record.Title,
		Company:   record.Company,
		Emails:    record.Emails,
		Phones:    record.Phones,
		Websites:  record.Websites,
		Social:    record.Social,
		RawText:   record.RawText,
		ScannedAt: time.Now().UTC(),
	}

	card, err := s.store.CreateCard(ctx, params)
	if err != nil {
		if s.outbox == nil {
			return nil, fmt.Errorf("failed to save card: %w", err)
		}

		s.log.Warn().Err(err).Msg("card save failed, queueing to outbox")
		if _, qerr := s.outbox.Enqueue(params); qerr != nil {
			return nil, fmt.Errorf("failed to save card and failed to queue it: %w", qerr)
		}
		return &ScanResult{Record: record, Queued: true}, nil
	}

	return &ScanResult{Record: record, Card: card}, nil
}

// ClassifyLines labels each line of the raw text against a fresh
// extraction of that text.
func (s *CardService) ClassifyLines(rawText string) []extract.ClassifiedLine {
	return s.extractor.ClassifyText(rawText)
}

// GetCard retrieves a single card owned by the user.
func (s *CardService) GetCard(ctx context.Context, userID string, id uuid.UUID) (*repository.Card, error) {
	return s.store.GetCard(ctx, userID, id)
}

// ListCards retrieves a page of the user's cards plus the total count.
func (s *CardService) ListCards(ctx context.Context, params repository.ListCardsParams) ([]repository.Card, int64, error) {
	cards, err := s.store.ListCards(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.store.CountCards(ctx, params.UserID)
	if err != nil {
		return nil, 0, err
	}

	return cards, total, nil
}

// UpdateCard replaces the editable fields of a card.
func (s *CardService) UpdateCard(ctx context.Context, userID string, id uuid.UUID, params repository.UpdateCardParams) (*repository.Card, error) {
	return s.store.UpdateCard(ctx, userID, id, params)
}

// DeleteCard removes a single card.
func (s *CardService) DeleteCard(ctx context.Context, userID string, id uuid.UUID) error {
	return s.store.DeleteCard(ctx, userID, id)
}

// DeleteCards removes a batch of cards and reports how many existed.
func (s *CardService) DeleteCards(ctx context.Context, userID string, ids []uuid.UUID) (int64, error) {
	return s.store.DeleteCards(ctx, userID, ids)
}
