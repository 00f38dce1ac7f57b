package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// DocumentLineRequest is one line of a document write. When a product is
// referenced, description, unit price and tax percentage default from the
// catalog; explicit values win.
type DocumentLineRequest struct {
	ProductID     *uuid.UUID       `json:"product_id"`
	Description   string           `json:"description" binding:"max=500"`
	Quantity      decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	TaxPercentage *decimal.Decimal `json:"tax_percentage"`
}

// CreateDocumentRequest represents a request to create a document in
// some family. Status defaults to draft; the settlement statuses are
// derived from payments and cannot be supplied.
type CreateDocumentRequest struct {
	PartyID       uuid.UUID             `json:"party_id" binding:"required"`
	DocumentDate  time.Time             `json:"document_date" binding:"required"`
	DueDate       *time.Time            `json:"due_date"`
	Status        string                `json:"status" binding:"omitempty,oneof=draft open cancelled"`
	Notes         string                `json:"notes"`
	SourceOrderID *uuid.UUID            `json:"source_order_id"`
	Lines         []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateDocumentRequest represents a request to update a document's
// header and, optionally, replace its full line set
type UpdateDocumentRequest struct {
	PartyID      *uuid.UUID            `json:"party_id"`
	DocumentDate *time.Time            `json:"document_date"`
	DueDate      *time.Time            `json:"due_date"`
	Status       *string               `json:"status" binding:"omitempty,oneof=draft open cancelled"`
	Notes        *string               `json:"notes"`
	Lines        []DocumentLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
}

// DocumentLineResponse represents a document line in API responses
type DocumentLineResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     *uuid.UUID      `json:"product_id,omitempty"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// DocumentResponse represents a financial document in API responses
type DocumentResponse struct {
	ID               uuid.UUID              `json:"id"`
	Family           string                 `json:"family"`
	DocumentNumber   string                 `json:"document_number"`
	PartyID          uuid.UUID              `json:"party_id"`
	PartyName        string                 `json:"party_name"`
	SourceOrderID    *uuid.UUID             `json:"source_order_id,omitempty"`
	DocumentDate     time.Time              `json:"document_date"`
	DueDate          *time.Time             `json:"due_date,omitempty"`
	Status           string                 `json:"status"`
	Subtotal         decimal.Decimal        `json:"subtotal"`
	TaxAmount        decimal.Decimal        `json:"tax_amount"`
	TotalAmount      decimal.Decimal        `json:"total_amount"`
	PaidAmount       decimal.Decimal        `json:"paid_amount"`
	RemainingBalance decimal.Decimal        `json:"remaining_balance"`
	Notes            string                 `json:"notes,omitempty"`
	Lines            []DocumentLineResponse `json:"lines"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	Version          int                    `json:"version"`
}

// DocumentListFilter represents filter options for document lists
type DocumentListFilter struct {
	Search    string     `form:"search"`
	PartyID   *uuid.UUID `form:"party_id"`
	Status    string     `form:"status" binding:"omitempty,oneof=draft open partially_paid paid cancelled"`
	StartDate time.Time  `form:"start_date" time_format:"2006-01-02"`
	EndDate   time.Time  `form:"end_date" time_format:"2006-01-02"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// CreatePaymentRequest represents a request to record a payment against
// a settleable document
type CreatePaymentRequest struct {
	DocumentID  uuid.UUID       `json:"document_id" binding:"required"`
	PaymentDate time.Time       `json:"payment_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=cash bank_transfer cheque card upi"`
	Reference   string          `json:"reference" binding:"max=100"`
	Notes       string          `json:"notes"`
}

// PaymentResponse represents a payment in API responses. Document carries
// the settled parent's recomputed balance and status.
type PaymentResponse struct {
	ID            uuid.UUID         `json:"id"`
	Family        string            `json:"family"`
	PaymentNumber string            `json:"payment_number"`
	DocumentID    uuid.UUID         `json:"document_id"`
	PartyID       uuid.UUID         `json:"party_id"`
	PaymentDate   time.Time         `json:"payment_date"`
	Amount        decimal.Decimal   `json:"amount"`
	Method        string            `json:"method"`
	Reference     string            `json:"reference,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	Document      *DocumentResponse `json:"document,omitempty"`
}

// PaymentListFilter represents filter options for payment lists
type PaymentListFilter struct {
	Search     string     `form:"search"`
	DocumentID *uuid.UUID `form:"document_id"`
	PartyID    *uuid.UUID `form:"party_id"`
	Method     string     `form:"method" binding:"omitempty,oneof=cash bank_transfer cheque card upi"`
	StartDate  time.Time  `form:"start_date" time_format:"2006-01-02"`
	EndDate    time.Time  `form:"end_date" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToDocumentResponse converts a domain document to its response DTO
func ToDocumentResponse(d *billing.FinancialDocument) DocumentResponse {
	lines := make([]DocumentLineResponse, len(d.Lines))
	for i := range d.Lines {
		lines[i] = DocumentLineResponse{
			ID:            d.Lines[i].ID,
			ProductID:     d.Lines[i].ProductID,
			Description:   d.Lines[i].Description,
			Quantity:      d.Lines[i].Quantity,
			UnitPrice:     d.Lines[i].UnitPrice,
			TaxPercentage: d.Lines[i].TaxPercentage,
			LineTotal:     d.Lines[i].LineTotal,
		}
	}
	return DocumentResponse{
		ID:               d.ID,
		Family:           string(d.Family),
		DocumentNumber:   d.DocumentNumber,
		PartyID:          d.PartyID,
		PartyName:        d.PartyName,
		SourceOrderID:    d.SourceOrderID,
		DocumentDate:     d.DocumentDate,
		DueDate:          d.DueDate,
		Status:           string(d.Status),
		Subtotal:         d.Subtotal,
		TaxAmount:        d.TaxAmount,
		TotalAmount:      d.TotalAmount,
		PaidAmount:       d.PaidAmount,
		RemainingBalance: d.RemainingBalance(),
		Notes:            d.Notes,
		Lines:            lines,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		Version:          d.Version,
	}
}

// ToPaymentResponse converts a domain payment to its response DTO
func ToPaymentResponse(p *billing.Payment, document *billing.FinancialDocument) PaymentResponse {
	response := PaymentResponse{
		ID:            p.ID,
		Family:        string(p.Family),
		PaymentNumber: p.PaymentNumber,
		DocumentID:    p.DocumentID,
		PartyID:       p.PartyID,
		PaymentDate:   p.PaymentDate,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Reference:     p.Reference,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
	if document != nil {
		doc := ToDocumentResponse(document)
		response.Document = &doc
	}
	return response
}
