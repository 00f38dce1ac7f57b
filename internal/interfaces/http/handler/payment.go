package handler

import (
	"github.com/gin-gonic/gin"
	appbilling "github.com/shivaccounts/backend/internal/application/billing"
	"github.com/shivaccounts/backend/internal/domain/billing"
)

// PaymentHandler handles one payment family's endpoints. Instantiated
// once for customer payments and once for vendor bill payments.
type PaymentHandler struct {
	BaseHandler
	family            billing.PaymentFamily
	settlementService *appbilling.SettlementService
	reports           reportInvalidator
}

// NewPaymentHandler creates a handler bound to one payment family
func NewPaymentHandler(family billing.PaymentFamily, settlementService *appbilling.SettlementService, reports reportInvalidator) *PaymentHandler {
	return &PaymentHandler{
		family:            family,
		settlementService: settlementService,
		reports:           reports,
	}
}

// Create handles POST /api/v1/<payments>
func (h *PaymentHandler) Create(c *gin.Context) {
	var req appbilling.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid payment payload")
		return
	}

	payment, err := h.settlementService.CreatePayment(c.Request.Context(), h.family, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	_ = h.reports.InvalidateCache(c.Request.Context())
	h.Created(c, payment)
}

// List handles GET /api/v1/<payments>
func (h *PaymentHandler) List(c *gin.Context) {
	var filter appbilling.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	payments, total, err := h.settlementService.List(c.Request.Context(), h.family, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, payments, total, page, pageSize)
}

// Get handles GET /api/v1/<payments>/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	payment, err := h.settlementService.GetByID(c.Request.Context(), h.family, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// Delete handles DELETE /api/v1/<payments>/:id. Deleting a payment
// reverses its settlement; the response carries the parent document's
// recomputed balance.
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	document, err := h.settlementService.DeletePayment(c.Request.Context(), h.family, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	_ = h.reports.InvalidateCache(c.Request.Context())
	h.Success(c, gin.H{"document": document})
}
