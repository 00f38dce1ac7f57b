package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheque       PaymentMethod = "cheque"
	MethodCard         PaymentMethod = "card"
	MethodUPI          PaymentMethod = "upi"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheque, MethodCard, MethodUPI:
		return true
	}
	return false
}

// String returns the string representation of the payment method
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment records money received against an invoice or paid against a
// vendor bill. A payment always settles exactly one document; creating or
// deleting a payment recomputes that document's paid amount and status in
// the same transaction.
type Payment struct {
	shared.BaseAggregateRoot
	Family        PaymentFamily   `gorm:"type:varchar(20);not null;uniqueIndex:idx_payments_family_number;index" json:"family"`
	PaymentNumber string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_payments_family_number" json:"payment_number"`
	DocumentID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"document_id"`
	PartyID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"party_id"`
	PaymentDate   time.Time       `gorm:"not null;index" json:"payment_date"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Method        PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Reference     string          `gorm:"type:varchar(100)" json:"reference,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
}

// TableName specifies the database table name
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a payment against the given document. The payment
// number is assigned by the repository inside the settlement transaction.
func NewPayment(family PaymentFamily, documentID, partyID uuid.UUID, paymentDate time.Time, amount decimal.Decimal, method PaymentMethod, reference, notes string) (*Payment, error) {
	if !family.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment family")
	}
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment requires a document")
	}
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment requires a party")
	}
	if paymentDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment date is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment method")
	}
	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Family:            family,
		DocumentID:        documentID,
		PartyID:           partyID,
		PaymentDate:       paymentDate,
		Amount:            amount,
		Method:            method,
		Reference:         reference,
		Notes:             notes,
	}, nil
}
