package handler

import (
	"github.com/gin-gonic/gin"
	appbilling "github.com/shivaccounts/backend/internal/application/billing"
	"github.com/shivaccounts/backend/internal/domain/billing"
)

// DocumentHandler handles one document family's endpoints. The same
// handler type serves invoices, vendor bills, sale orders and purchase
// orders; the router instantiates it once per family.
type DocumentHandler struct {
	BaseHandler
	family          billing.DocumentFamily
	documentService *appbilling.DocumentService
	reports         reportInvalidator
}

// NewDocumentHandler creates a handler bound to one document family
func NewDocumentHandler(family billing.DocumentFamily, documentService *appbilling.DocumentService, reports reportInvalidator) *DocumentHandler {
	return &DocumentHandler{
		family:          family,
		documentService: documentService,
		reports:         reports,
	}
}

// Create handles POST /api/v1/<family>
func (h *DocumentHandler) Create(c *gin.Context) {
	var req appbilling.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid document payload")
		return
	}

	document, err := h.documentService.Create(c.Request.Context(), h.family, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	_ = h.reports.InvalidateCache(c.Request.Context())
	h.Created(c, document)
}

// List handles GET /api/v1/<family>
func (h *DocumentHandler) List(c *gin.Context) {
	var filter appbilling.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	documents, total, err := h.documentService.List(c.Request.Context(), h.family, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, documents, total, page, pageSize)
}

// Get handles GET /api/v1/<family>/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	document, err := h.documentService.GetByID(c.Request.Context(), h.family, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, document)
}

// NextNumber handles GET /api/v1/<family>/next-number. The number is
// advisory; creation may assign a later one under concurrency.
func (h *DocumentHandler) NextNumber(c *gin.Context) {
	number, err := h.documentService.NextNumber(c.Request.Context(), h.family)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"next_number": number})
}

// Update handles PUT /api/v1/<family>/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req appbilling.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid document payload")
		return
	}

	document, err := h.documentService.Update(c.Request.Context(), h.family, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	_ = h.reports.InvalidateCache(c.Request.Context())
	h.Success(c, document)
}

// Cancel handles POST /api/v1/<family>/:id/cancel
func (h *DocumentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	document, err := h.documentService.Cancel(c.Request.Context(), h.family, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	_ = h.reports.InvalidateCache(c.Request.Context())
	h.Success(c, document)
}

// Delete handles DELETE /api/v1/<family>/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), h.family, id); err != nil {
		h.HandleError(c, err)
		return
	}

	_ = h.reports.InvalidateCache(c.Request.Context())
	h.NoContent(c)
}

// Convert handles POST /api/v1/<family>/:id/convert for order families,
// producing the settleable counterpart document
func (h *DocumentHandler) Convert(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	document, err := h.documentService.ConvertOrder(c.Request.Context(), h.family, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	_ = h.reports.InvalidateCache(c.Request.Context())
	h.Created(c, document)
}
