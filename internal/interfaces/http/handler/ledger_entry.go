package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shivaccounts/backend/internal/application/ledger"
)

// reportInvalidator drops cached reports after a write that changes the
// books. The report service satisfies this.
type reportInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// EntryHandler handles ledger entry endpoints. Entries are append-only;
// the only write is a balanced adjustment batch.
type EntryHandler struct {
	BaseHandler
	entryService *ledger.EntryService
	reports      reportInvalidator
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService *ledger.EntryService, reports reportInvalidator) *EntryHandler {
	return &EntryHandler{entryService: entryService, reports: reports}
}

// List handles GET /api/v1/ledger-entries
func (h *EntryHandler) List(c *gin.Context) {
	var filter ledger.EntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	entries, total, err := h.entryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, entries, total, page, pageSize)
}

// Get handles GET /api/v1/ledger-entries/:id
func (h *EntryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := h.entryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// CreateAdjustment handles POST /api/v1/ledger-entries/adjustments
func (h *EntryHandler) CreateAdjustment(c *gin.Context) {
	var req ledger.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid adjustment payload")
		return
	}

	entries, err := h.entryService.CreateAdjustment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	_ = h.reports.InvalidateCache(c.Request.Context())
	h.Created(c, entries)
}
