package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/api_gateway/middleware"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/api_gateway/service"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
)

// EntryHandler handles HTTP requests for journal entry operations
type EntryHandler struct {
	entryService service.EntryService
	logger       *slog.Logger
}

// NewEntryHandler creates a new journal entry handler
func NewEntryHandler(logger *slog.Logger, entryService service.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
		logger:       logger,
	}
}

// Create accepts a journal entry submission. The entry is validated
// synchronously (at least two lines, positive one-sided amounts, debits
// equal credits after rounding) and queued for asynchronous posting; a
// 202 means accepted, not yet committed.
func (h *EntryHandler) Create(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lines := make([]shared.PostingLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, shared.PostingLine{
			Account:  line.Account,
			Type:     line.Type,
			Amount:   line.Amount,
			Category: line.Category,
		})
	}

	postingRequest := &shared.PostingRequest{
		EntryID:       uuid.New(),
		Date:          req.Date,
		Description:   req.Description,
		Lines:         lines,
		SourceType:    shared.SourceTypeJournal,
		CorrelationID: middleware.GetCorrelationID(c),
		Timestamp:     time.Now(),
	}

	entryID, err := h.entryService.SubmitEntry(c.Request.Context(), postingRequest)
	if err != nil {
		var validationErr *journal.ValidationError
		if errors.As(err, &validationErr) {
			RespondValidationFailed(c, validationErr.Error())
			return
		}
		h.logger.Error("Failed to submit journal entry", "error", err)
		RespondInternalError(c)
		return
	}

	RespondAccepted(c, gin.H{
		"entry_id": entryID.String(),
		"status":   "PENDING",
	})
}

// GetByID retrieves a committed journal entry, returns 404 if not found
func (h *EntryHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid entry ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get journal entry", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	if entry == nil {
		RespondNotFound(c, "Journal entry not found")
		return
	}

	RespondOK(c, mapEntryToResponse(entry))
}

// List retrieves committed journal entries, optionally bounded by the
// inclusive from/to date range
func (h *EntryHandler) List(c *gin.Context) {
	var params RangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		RespondBadRequest(c, "Invalid query parameters")
		return
	}

	filter, err := parseDateFilter(params)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list journal entries", "error", err)
		RespondInternalError(c)
		return
	}

	response := EntryListResponse{Entries: []EntryResponse{}}
	for _, entry := range entries {
		response.Entries = append(response.Entries, mapEntryToResponse(entry))
	}
	response.Count = len(response.Entries)

	RespondOK(c, response)
}

// mapEntryToResponse maps a journal entry to its response DTO
func mapEntryToResponse(entry *journal.Entry) EntryResponse {
	lines := make([]EntryLineResponse, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		lines = append(lines, EntryLineResponse{
			Account:  line.Account,
			Type:     string(line.Side),
			Amount:   line.Amount.StringFixed(2),
			Category: string(line.Category),
		})
	}

	return EntryResponse{
		EntryID:     entry.ID.String(),
		Date:        entry.Date.Format(shared.DateLayout),
		Description: entry.Description,
		Lines:       lines,
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
	}
}
