package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cardscan/backend/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Card represents a scanned business card and the contact information
// extracted from it.
type Card struct {
	ID        uuid.UUID           `json:"id"`
	UserID    string              `json:"user_id"`
	Name      *string             `json:"name,omitempty"`
	Title     *string             `json:"title,omitempty"`
	Company   *string             `json:"company,omitempty"`
	Emails    []string            `json:"emails"`
	Phones    []string            `json:"phones"`
	Websites  []string            `json:"websites"`
	Social    map[string][]string `json:"social"`
	RawText   string              `json:"rawText"`
	ScannedAt time.Time           `json:"scanned_at"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// CreateCardParams carries the fields needed to persist a new card.
type CreateCardParams struct {
	UserID    string
	Name      *string
	Title     *string
	Company   *string
	Emails    []string
	Phones    []string
	Websites  []string
	Social    map[string][]string
	RawText   string
	ScannedAt time.Time
}

// UpdateCardParams carries the editable fields of a stored card.
type UpdateCardParams struct {
	Name     *string
	Title    *string
	Company  *string
	Emails   []string
	Phones   []string
	Websites []string
	Social   map[string][]string
}

// ListCardsParams represents parameters for listing cards
type ListCardsParams struct {
	UserID string
	Limit  int32
	Offset int32
}

type CardRepository struct {
	pool *pgxpool.Pool
}

func NewCardRepository(database *db.Database) *CardRepository {
	return &CardRepository{pool: database.Pool}
}

func uuidToPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func stringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func pgTextToString(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// mustJSON marshals a value for a jsonb column. The inputs are plain
// slices and maps of strings, which cannot fail to marshal.
func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal jsonb column: %v", err))
	}
	return b
}

func scanCard(row pgx.Row) (*Card, error) {
	var (
		card                    Card
		id                      pgtype.UUID
		name, title, company    pgtype.Text
		emails, phones          []byte
		websites, social        []byte
		scanned, created, upd   pgtype.Timestamptz
	)

	err := row.Scan(&id, &card.UserID, &name, &title, &company,
		&emails, &phones, &websites, &social,
		&card.RawText, &scanned, &created, &upd)
	if err != nil {
		return nil, err
	}

	if id.Valid {
		card.ID = uuid.UUID(id.Bytes)
	}
	card.Name = pgTextToString(name)
	card.Title = pgTextToString(title)
	card.Company = pgTextToString(company)

	if err := json.Unmarshal(emails, &card.Emails); err != nil {
		return nil, fmt.Errorf("decode emails column: %w", err)
	}
	if err := json.Unmarshal(phones, &card.Phones); err != nil {
		return nil, fmt.Errorf("decode phones column: %w", err)
	}
	if err := json.Unmarshal(websites, &card.Websites); err != nil {
		return nil, fmt.Errorf("decode websites column: %w", err)
	}
	if err := json.Unmarshal(social, &card.Social); err != nil {
		return nil, fmt.Errorf("decode social column: %w", err)
	}

	if scanned.Valid {
		card.ScannedAt = scanned.Time
	}
	if created.Valid {
		card.CreatedAt = created.Time
	}
	if upd.Valid {
		card.UpdatedAt = upd.Time
	}

	return &card, nil
}

const cardColumns = `id, user_id, name, title, company, emails, phones, websites, social, raw_text, scanned_at, created_at, updated_at`

// CreateCard persists a new card and returns the stored row.
func (r *CardRepository) CreateCard(ctx context.Context, params CreateCardParams) (*Card, error) {
	query := `
		INSERT INTO business_cards (user_id, name, title, company, emails, phones, websites, social, raw_text, scanned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + cardColumns

	row := r.pool.QueryRow(ctx, query,
		params.UserID,
		stringToPgText(params.Name),
		stringToPgText(params.Title),
		stringToPgText(params.Company),
		mustJSON(nonNilSlice(params.Emails)),
		mustJSON(nonNilSlice(params.Phones)),
		mustJSON(nonNilSlice(params.Websites)),
		mustJSON(nonNilSocial(params.Social)),
		params.RawText,
		params.ScannedAt,
	)

	return scanCard(row)
}

// GetCard retrieves a card by ID, scoped to its owner.
func (r *CardRepository) GetCard(ctx context.Context, userID string, id uuid.UUID) (*Card, error) {
	query := `SELECT ` + cardColumns + ` FROM business_cards WHERE id = $1 AND user_id = $2`

	card, err := scanCard(r.pool.QueryRow(ctx, query, uuidToPgUUID(id), userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, err
	}
	return card, nil
}

// ListCards retrieves a page of the owner's cards, newest scan first.
func (r *CardRepository) ListCards(ctx context.Context, params ListCardsParams) ([]Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM business_cards
		WHERE user_id = $1
		ORDER BY scanned_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, params.UserID, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

// CountCards returns the total number of cards for a user.
func (r *CardRepository) CountCards(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM business_cards WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// UpdateCard replaces the editable fields of a card.
func (r *CardRepository) UpdateCard(ctx context.Context, userID string, id uuid.UUID, params UpdateCardParams) (*Card, error) {
	query := `
		UPDATE business_cards
		SET name = $3, title = $4, company = $5, emails = $6, phones = $7, websites = $8, social = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + cardColumns

	row := r.pool.QueryRow(ctx, query,
		uuidToPgUUID(id),
		userID,
		stringToPgText(params.Name),
		stringToPgText(params.Title),
		stringToPgText(params.Company),
		mustJSON(nonNilSlice(params.Emails)),
		mustJSON(nonNilSlice(params.Phones)),
		mustJSON(nonNilSlice(params.Websites)),
		mustJSON(nonNilSocial(params.Social)),
	)

	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, err
	}
	return card, nil
}

// DeleteCard removes a card by ID, scoped to its owner.
func (r *CardRepository) DeleteCard(ctx context.Context, userID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM business_cards WHERE id = $1 AND user_id = $2`, uuidToPgUUID(id), userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteCards removes a batch of cards in one statement and reports how
// many rows were actually deleted.
func (r *CardRepository) DeleteCards(ctx context.Context, userID string, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	pgIDs := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		pgIDs[i] = uuidToPgUUID(id)
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM business_cards WHERE user_id = $1 AND id = ANY($2)`, userID, pgIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func nonNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilSocial(m map[string][]string) map[string][]string {
	if m == nil {
		return map[string][]string{}
	}
	return m
}
