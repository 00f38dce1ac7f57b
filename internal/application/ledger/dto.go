package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents a request to create an account
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=20"`
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Type        string `json:"type" binding:"required,oneof=asset liability equity revenue expense"`
	Description string `json:"description"`
}

// UpdateAccountRequest represents a request to update an account. Code
// and type are fixed once created.
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// AccountListFilter represents filter options for the account list
type AccountListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=asset liability equity revenue expense"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// AdjustmentLineRequest is one posting line of an adjustment batch.
// Exactly one of debit and credit must be positive.
type AdjustmentLineRequest struct {
	AccountID    uuid.UUID       `json:"account_id" binding:"required"`
	PartnerID    *uuid.UUID      `json:"partner_id"`
	Description  string          `json:"description" binding:"required,max=500"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
}

// CreateAdjustmentRequest posts a balanced batch of manual entries
type CreateAdjustmentRequest struct {
	EntryDate time.Time               `json:"entry_date" binding:"required"`
	Lines     []AdjustmentLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID            uuid.UUID       `json:"id"`
	EntryDate     time.Time       `json:"entry_date"`
	AccountID     uuid.UUID       `json:"account_id"`
	PartnerID     *uuid.UUID      `json:"partner_id,omitempty"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   *uuid.UUID      `json:"reference_id,omitempty"`
	Description   string          `json:"description"`
	DebitAmount   decimal.Decimal `json:"debit_amount"`
	CreditAmount  decimal.Decimal `json:"credit_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EntryListFilter represents filter options for the entry list
type EntryListFilter struct {
	Search        string     `form:"search"`
	AccountID     *uuid.UUID `form:"account_id"`
	PartnerID     *uuid.UUID `form:"partner_id"`
	ReferenceType string     `form:"reference_type" binding:"omitempty,oneof=invoice vendor_bill payment adjustment"`
	StartDate     time.Time  `form:"start_date" time_format:"2006-01-02"`
	EndDate       time.Time  `form:"end_date" time_format:"2006-01-02"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToAccountResponse converts a domain account to its response DTO
func ToAccountResponse(a *ledger.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Code:        a.Code,
		Name:        a.Name,
		Type:        string(a.Type),
		Description: a.Description,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Version:     a.Version,
	}
}

// ToEntryResponse converts a domain ledger entry to its response DTO
func ToEntryResponse(e *ledger.LedgerEntry) EntryResponse {
	return EntryResponse{
		ID:            e.ID,
		EntryDate:     e.EntryDate,
		AccountID:     e.AccountID,
		PartnerID:     e.PartnerID,
		ReferenceType: string(e.ReferenceType),
		ReferenceID:   e.ReferenceID,
		Description:   e.Description,
		DebitAmount:   e.DebitAmount,
		CreditAmount:  e.CreditAmount,
		CreatedAt:     e.CreatedAt,
	}
}
