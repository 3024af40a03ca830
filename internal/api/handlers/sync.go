package handlers

import (
	"net/http"

	"cardscan/backend/internal/api"
	"cardscan/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SyncHandler exposes the offline outbox over HTTP so clients can inspect
// pending saves and force a flush instead of waiting for the scheduler.
type SyncHandler struct {
	outbox *service.OutboxService
	store  service.CardStore
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(outbox *service.OutboxService, store service.CardStore) *SyncHandler {
	return &SyncHandler{outbox: outbox, store: store}
}

// OutboxStatusResponse summarizes the queue.
type OutboxStatusResponse struct {
	Pending int                   `json:"pending"`
	Entries []service.OutboxEntry `json:"entries"`
}

// GetOutbox lists the pending entries.
func (h *SyncHandler) GetOutbox(c *gin.Context) {
	entries, err := h.outbox.List()
	if err != nil {
		api.SendInternalError(c, "Failed to read outbox")
		return
	}

	api.SendSuccess(c, http.StatusOK, OutboxStatusResponse{
		Pending: len(entries),
		Entries: entries,
	}, nil)
}

// FlushOutbox retries every pending entry immediately.
func (h *SyncHandler) FlushOutbox(c *gin.Context) {
	flushed, err := h.outbox.Flush(c.Request.Context(), h.store)
	if err != nil {
		api.SendInternalError(c, "Failed to flush outbox")
		return
	}

	remaining, err := h.outbox.Pending()
	if err != nil {
		api.SendInternalError(c, "Failed to read outbox")
		return
	}

	api.SendSuccess(c, http.StatusOK, gin.H{
		"flushed":   flushed,
		"remaining": remaining,
	}, nil)
}
