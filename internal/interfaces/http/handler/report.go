package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shivaccounts/backend/internal/application/report"
)

// ReportHandler handles read-only report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *report.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *report.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// PartnerLedger handles GET /api/v1/reports/partner-ledger
func (h *ReportHandler) PartnerLedger(c *gin.Context) {
	var filter report.PartnerLedgerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	rows, err := h.reportService.PartnerLedger(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// ProfitAndLoss handles GET /api/v1/reports/profit-loss
func (h *ReportHandler) ProfitAndLoss(c *gin.Context) {
	var filter report.PeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	pnl, err := h.reportService.ProfitAndLoss(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pnl)
}

// BalanceSheet handles GET /api/v1/reports/balance-sheet
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	var filter report.AsOfFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	sheet, err := h.reportService.BalanceSheet(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sheet)
}

// StockStatement handles GET /api/v1/reports/stock-statement
func (h *ReportHandler) StockStatement(c *gin.Context) {
	var filter report.StockStatementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	rows, err := h.reportService.StockStatement(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// Dashboard handles GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}
