package handlers

import (
	"net/http"

	"cardscan/backend/internal/api"
	"cardscan/backend/internal/auth"
	"cardscan/backend/internal/extract"
	"cardscan/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ScanHandler handles OCR text scanning requests
type ScanHandler struct {
	cardService *service.CardService
	validator   *validator.Validate
}

// NewScanHandler creates a new scan handler
func NewScanHandler(cardService *service.CardService) *ScanHandler {
	return &ScanHandler{
		cardService: cardService,
		validator:   validator.New(),
	}
}

// ScanRequest carries the raw OCR text of a card photo.
type ScanRequest struct {
	RawText string `json:"rawText" validate:"required"`
	// Save persists the extracted card. When false the extraction result
	// is returned without touching storage.
	Save bool `json:"save"`
}

// ScanResponse is the extraction result plus persistence outcome.
type ScanResponse struct {
	Record *extract.ContactRecord `json:"record"`
	Card   *CardResponse          `json:"card,omitempty"`
	Queued bool                   `json:"queued"`
}

// ClassifyResponse labels each line of the submitted text.
type ClassifyResponse struct {
	Lines []extract.ClassifiedLine `json:"lines"`
}

// CreateScan extracts contact information from raw OCR text, optionally
// persisting the result as a card.
func (h *ScanHandler) CreateScan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	h.scan(c, req)
}

// CreateCard scans raw OCR text and always persists the result.
func (h *ScanHandler) CreateCard(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	req.Save = true
	h.scan(c, req)
}

func (h *ScanHandler) scan(c *gin.Context, req ScanRequest) {
	if !req.Save {
		record := h.cardService.Scan(req.RawText)
		api.SendSuccess(c, http.StatusOK, ScanResponse{Record: record}, nil)
		return
	}

	result, err := h.cardService.ScanAndSave(c.Request.Context(), auth.UserID(c), req.RawText)
	if err != nil {
		api.SendInternalError(c, "Failed to save scanned card")
		return
	}

	resp := ScanResponse{Record: result.Record, Queued: result.Queued}
	if result.Card != nil {
		card := cardToResponse(result.Card)
		resp.Card = &card
	}

	status := http.StatusCreated
	if result.Queued {
		// The card is safe in the outbox but not yet in the database.
		status = http.StatusAccepted
	}
	api.SendSuccess(c, status, resp, nil)
}

// ClassifyScan labels each line of the submitted OCR text with the
// contact field it maps to.
func (h *ScanHandler) ClassifyScan(c *gin.Context) {
	var req struct {
		RawText string `json:"rawText" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	lines := h.cardService.ClassifyLines(req.RawText)
	api.SendSuccess(c, http.StatusOK, ClassifyResponse{Lines: lines}, nil)
}
