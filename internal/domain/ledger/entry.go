package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReferenceType identifies the source record a ledger entry was posted for
type ReferenceType string

const (
	ReferenceInvoice    ReferenceType = "invoice"
	ReferenceVendorBill ReferenceType = "vendor_bill"
	ReferencePayment    ReferenceType = "payment"
	ReferenceAdjustment ReferenceType = "adjustment"
)

// IsValid checks if the reference type is known
func (r ReferenceType) IsValid() bool {
	switch r {
	case ReferenceInvoice, ReferenceVendorBill, ReferencePayment, ReferenceAdjustment:
		return true
	}
	return false
}

// String returns the string representation of the reference type
func (r ReferenceType) String() string {
	return string(r)
}

// LedgerEntry is a single posting line. An entry carries either a debit
// or a credit, never both and never neither; a balanced transaction is a
// set of entries whose debits and credits sum equal.
type LedgerEntry struct {
	shared.BaseEntity
	EntryDate     time.Time       `gorm:"not null;index" json:"entry_date"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	PartnerID     *uuid.UUID      `gorm:"type:uuid;index" json:"partner_id,omitempty"`
	ReferenceType ReferenceType   `gorm:"type:varchar(20);not null;index" json:"reference_type"`
	ReferenceID   *uuid.UUID      `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	Description   string          `gorm:"type:varchar(500);not null" json:"description"`
	DebitAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"debit_amount"`
	CreditAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"credit_amount"`
}

// TableName specifies the database table name
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// NewLedgerEntry creates a validated posting line. Exactly one of debit
// and credit must be positive.
func NewLedgerEntry(entryDate time.Time, accountID uuid.UUID, partnerID *uuid.UUID, referenceType ReferenceType, referenceID *uuid.UUID, description string, debit, credit decimal.Decimal) (*LedgerEntry, error) {
	if entryDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Entry date is required")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Entry requires an account")
	}
	if !referenceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid reference type")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Entry description is required")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Entry amounts cannot be negative")
	}
	if debit.IsPositive() == credit.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Entry must carry exactly one of debit or credit")
	}
	return &LedgerEntry{
		BaseEntity:    shared.NewBaseEntity(),
		EntryDate:     entryDate,
		AccountID:     accountID,
		PartnerID:     partnerID,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		Description:   description,
		DebitAmount:   debit,
		CreditAmount:  credit,
	}, nil
}

// Amount returns the signed movement of the entry, debit positive
func (e *LedgerEntry) Amount() decimal.Decimal {
	return e.DebitAmount.Sub(e.CreditAmount)
}

// IsDebit returns true if the entry is a debit posting
func (e *LedgerEntry) IsDebit() bool {
	return e.DebitAmount.IsPositive()
}
