package handlers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"cardscan/backend/internal/api"
	"cardscan/backend/internal/auth"
	"cardscan/backend/internal/db"
	"cardscan/backend/internal/repository"
	"cardscan/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CardHandler handles stored card HTTP requests
type CardHandler struct {
	cardService *service.CardService
	validator   *validator.Validate
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService *service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		validator:   validator.New(),
	}
}

// CardResponse is the API shape of a stored card.
type CardResponse struct {
	ID        string              `json:"id"`
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

// UpdateCardRequest represents the request to update a stored card
type UpdateCardRequest struct {
	Name     *string             `json:"name,omitempty" validate:"omitempty,max=255"`
	Title    *string             `json:"title,omitempty" validate:"omitempty,max=255"`
	Company  *string             `json:"company,omitempty" validate:"omitempty,max=255"`
	Emails   []string            `json:"emails" validate:"omitempty,dive,email"`
	Phones   []string            `json:"phones"`
	Websites []string            `json:"websites" validate:"omitempty,dive,url"`
	Social   map[string][]string `json:"social"`
}

// DeleteCardsRequest represents a batch delete request
type DeleteCardsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// ListCardsQuery represents query parameters for listing cards
type ListCardsQuery struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=1000"`
}

func cardToResponse(card *repository.Card) CardResponse {
	return CardResponse{
		ID:        card.ID.String(),
		Name:      card.Name,
		Title:     card.Title,
		Company:   card.Company,
		Emails:    card.Emails,
		Phones:    card.Phones,
		Websites:  card.Websites,
		Social:    card.Social,
		RawText:   card.RawText,
		ScannedAt: card.ScannedAt,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}

// ListCards returns a paginated list of the user's cards, newest first.
func (h *CardHandler) ListCards(c *gin.Context) {
	var query ListCardsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		api.SendValidationError(c, "Invalid query parameters", err.Error())
		return
	}
	if err := h.validator.Struct(query); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	cards, total, err := h.cardService.ListCards(c.Request.Context(), repository.ListCardsParams{
		UserID: auth.UserID(c),
		Limit:  int32(query.Limit),
		Offset: int32((query.Page - 1) * query.Limit),
	})
	if err != nil {
		api.SendInternalError(c, "Failed to list cards")
		return
	}

	responses := make([]CardResponse, len(cards))
	for i := range cards {
		responses[i] = cardToResponse(&cards[i])
	}

	meta := &api.Meta{
		Pagination: &api.PaginationMeta{
			Page:  query.Page,
			Limit: query.Limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(query.Limit))),
		},
	}
	api.SendSuccess(c, http.StatusOK, responses, meta)
}

// GetCard returns a single card by ID.
func (h *CardHandler) GetCard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.SendValidationError(c, "Invalid card ID", err.Error())
		return
	}

	card, err := h.cardService.GetCard(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			api.SendNotFound(c, "Card")
			return
		}
		api.SendInternalError(c, "Failed to get card")
		return
	}

	api.SendSuccess(c, http.StatusOK, cardToResponse(card), nil)
}

// UpdateCard replaces the editable fields of a stored card.
func (h *CardHandler) UpdateCard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.SendValidationError(c, "Invalid card ID", err.Error())
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), auth.UserID(c), id, repository.UpdateCardParams{
		Name:     req.Name,
		Title:    req.Title,
		Company:  req.Company,
		Emails:   req.Emails,
		Phones:   req.Phones,
		Websites: req.Websites,
		Social:   req.Social,
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			api.SendNotFound(c, "Card")
			return
		}
		api.SendInternalError(c, "Failed to update card")
		return
	}

	api.SendSuccess(c, http.StatusOK, cardToResponse(card), nil)
}

// DeleteCard removes a single card.
func (h *CardHandler) DeleteCard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.SendValidationError(c, "Invalid card ID", err.Error())
		return
	}

	if err := h.cardService.DeleteCard(c.Request.Context(), auth.UserID(c), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			api.SendNotFound(c, "Card")
			return
		}
		api.SendInternalError(c, "Failed to delete card")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteCards removes a batch of cards in a single request.
func (h *CardHandler) DeleteCards(c *gin.Context) {
	var req DeleteCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	ids := make([]uuid.UUID, len(req.IDs))
	for i, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			api.SendValidationError(c, "Invalid card ID in batch", err.Error())
			return
		}
		ids[i] = id
	}

	deleted, err := h.cardService.DeleteCards(c.Request.Context(), auth.UserID(c), ids)
	if err != nil {
		api.SendInternalError(c, "Failed to delete cards")
		return
	}

	api.SendSuccess(c, http.StatusOK, gin.H{"deleted": deleted}, nil)
}
