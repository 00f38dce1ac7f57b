package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DocumentStatus represents the lifecycle status of a financial document
type DocumentStatus string

const (
	StatusDraft         DocumentStatus = "draft"          // Not yet issued
	StatusOpen          DocumentStatus = "open"           // Issued, nothing paid
	StatusPartiallyPaid DocumentStatus = "partially_paid" // 0 < paid < total
	StatusPaid          DocumentStatus = "paid"           // paid >= total
	StatusCancelled     DocumentStatus = "cancelled"      // Voided, excluded from settlement
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusOpen, StatusPartiallyPaid, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// CanApplyPayment returns true if payments can be applied in this status
func (s DocumentStatus) CanApplyPayment() bool {
	return s != StatusCancelled
}

// StatusForBalance derives the settlement status from the paid amount and
// the document total. This is the single status rule for both the payment
// and the reversal path:
//
//	paid >= total      -> paid
//	0 < paid < total   -> partially_paid
//	paid <= 0          -> open
func StatusForBalance(paid, total decimal.Decimal) DocumentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return StatusPaid
	case paid.GreaterThan(decimal.Zero):
		return StatusPartiallyPaid
	default:
		return StatusOpen
	}
}

// AmountExceedsRemainingError is returned when a payment would settle more
// than the document's outstanding balance. Overpayment is rejected outright;
// there is no credit carry-over.
type AmountExceedsRemainingError struct {
	Remaining decimal.Decimal
}

// Error implements the error interface
func (e *AmountExceedsRemainingError) Error() string {
	return fmt.Sprintf("payment amount exceeds remaining balance of %s", e.Remaining.StringFixed(2))
}

// DocumentLine is a line item within a financial document.
// LineTotal is quantity * unit price before tax; tax is computed from
// TaxPercentage when the document totals are rolled up.
type DocumentLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"document_id"`
	ProductID     *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Description   string          `gorm:"type:varchar(500);not null" json:"description"`
	Quantity      decimal.Decimal `gorm:"type:decimal(15,3);not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TaxPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_percentage"`
	LineTotal     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"line_total"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewDocumentLine creates a validated document line
func NewDocumentLine(productID *uuid.UUID, description string, quantity, unitPrice, taxPercentage decimal.Decimal) (*DocumentLine, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line description is required")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line unit price cannot be negative")
	}
	if taxPercentage.IsNegative() || taxPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line tax percentage must be between 0 and 100")
	}
	return &DocumentLine{
		ID:            uuid.New(),
		ProductID:     productID,
		Description:   description,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TaxPercentage: taxPercentage,
		LineTotal:     quantity.Mul(unitPrice).Round(2),
		CreatedAt:     time.Now(),
	}, nil
}

// TaxAmount returns the tax charged on this line
func (l *DocumentLine) TaxAmount() decimal.Decimal {
	return l.LineTotal.Mul(l.TaxPercentage).Div(decimal.NewFromInt(100)).Round(2)
}

// FinancialDocument is the aggregate root shared by all document families:
// invoices, vendor bills, sale orders and purchase orders. The family field
// selects numbering prefix, counterparty side and whether settlement applies.
type FinancialDocument struct {
	shared.BaseAggregateRoot
	Family         DocumentFamily  `gorm:"type:varchar(20);not null;uniqueIndex:idx_documents_family_number;index" json:"family"`
	DocumentNumber string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_documents_family_number" json:"document_number"`
	PartyID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"party_id"`
	PartyName      string          `gorm:"type:varchar(255);not null" json:"party_name"`
	SourceOrderID  *uuid.UUID      `gorm:"type:uuid;index" json:"source_order_id,omitempty"`
	DocumentDate   time.Time       `gorm:"not null;index" json:"document_date"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Status         DocumentStatus  `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"subtotal"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"tax_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_amount"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"paid_amount"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`
	Lines          []DocumentLine  `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"lines"`
}

// TableName specifies the database table name
func (FinancialDocument) TableName() string {
	return "financial_documents"
}

// NewFinancialDocument creates a document in the given family. The document
// number is assigned later by the repository, inside the same transaction
// that persists the document.
func NewFinancialDocument(family DocumentFamily, partyID uuid.UUID, partyName string, documentDate time.Time, dueDate *time.Time, notes string) (*FinancialDocument, error) {
	if !family.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid document family")
	}
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Party is required")
	}
	if documentDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Document date is required")
	}
	if dueDate != nil && dueDate.Before(documentDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Due date cannot be before document date")
	}
	return &FinancialDocument{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Family:            family,
		PartyID:           partyID,
		PartyName:         partyName,
		SourceOrderID:     nil,
		DocumentDate:      documentDate,
		DueDate:           dueDate,
		Status:            StatusDraft,
		Subtotal:          decimal.Zero,
		TaxAmount:         decimal.Zero,
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		Notes:             notes,
	}, nil
}

// AddLine appends a line item and rolls up the document totals
func (d *FinancialDocument) AddLine(productID *uuid.UUID, description string, quantity, unitPrice, taxPercentage decimal.Decimal) error {
	line, err := NewDocumentLine(productID, description, quantity, unitPrice, taxPercentage)
	if err != nil {
		return err
	}
	line.DocumentID = d.ID
	d.Lines = append(d.Lines, *line)
	d.recalculateTotals()
	return nil
}

// ReplaceLines swaps the full line set, as on a document update
func (d *FinancialDocument) ReplaceLines(lines []DocumentLine) error {
	if len(lines) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Document requires at least one line")
	}
	for i := range lines {
		lines[i].DocumentID = d.ID
	}
	d.Lines = lines
	d.recalculateTotals()
	return nil
}

func (d *FinancialDocument) recalculateTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for i := range d.Lines {
		subtotal = subtotal.Add(d.Lines[i].LineTotal)
		tax = tax.Add(d.Lines[i].TaxAmount())
	}
	d.Subtotal = subtotal
	d.TaxAmount = tax
	d.TotalAmount = subtotal.Add(tax)
	d.UpdatedAt = time.Now()
}

// RemainingBalance returns the unsettled portion of the document total
func (d *FinancialDocument) RemainingBalance() decimal.Decimal {
	return d.TotalAmount.Sub(d.PaidAmount)
}

// Issue moves a draft document to open so it enters the settlement cycle
func (d *FinancialDocument) Issue() error {
	if d.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft documents can be issued")
	}
	if len(d.Lines) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Document requires at least one line")
	}
	d.Status = StatusOpen
	d.UpdatedAt = time.Now()
	return nil
}

// SetStatus applies a caller-supplied lifecycle status, as on creation
// or a header update. Settlement statuses are owned by the settlement
// engine: they cannot be set directly, and once any amount is settled
// the status only moves through payments.
func (d *FinancialDocument) SetStatus(status DocumentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Invalid document status")
	}
	if status == StatusPaid || status == StatusPartiallyPaid {
		return shared.NewDomainError("INVALID_INPUT", "Settlement statuses are derived from payments and cannot be set directly")
	}
	if d.PaidAmount.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Status is driven by settlement once payments are recorded")
	}
	d.Status = status
	d.UpdatedAt = time.Now()
	return nil
}

// ApplyPayment settles the given amount against the document. The amount
// must be positive and must not exceed the remaining balance; on success
// the paid amount and status are recomputed together.
func (d *FinancialDocument) ApplyPayment(amount decimal.Decimal) error {
	if !d.Family.Settleable() {
		return shared.NewDomainError("INVALID_STATE", "Documents of this type cannot be settled")
	}
	if !d.Status.CanApplyPayment() {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply payment to a cancelled document")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	remaining := d.RemainingBalance()
	if amount.GreaterThan(remaining) {
		return &AmountExceedsRemainingError{Remaining: remaining}
	}
	d.PaidAmount = d.PaidAmount.Add(amount)
	d.Status = StatusForBalance(d.PaidAmount, d.TotalAmount)
	d.UpdatedAt = time.Now()
	return nil
}

// ReversePayment undoes a previously applied settlement amount, as when a
// payment record is deleted. The paid amount and status return to what they
// were before that payment existed.
func (d *FinancialDocument) ReversePayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Reversal amount must be positive")
	}
	d.PaidAmount = d.PaidAmount.Sub(amount)
	d.Status = StatusForBalance(d.PaidAmount, d.TotalAmount)
	d.UpdatedAt = time.Now()
	return nil
}

// Cancel voids the document. Settled documents must have their payments
// deleted first.
func (d *FinancialDocument) Cancel() error {
	if d.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Document is already cancelled")
	}
	if d.PaidAmount.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a document with recorded payments")
	}
	d.Status = StatusCancelled
	d.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails changes the header fields that remain editable after creation
func (d *FinancialDocument) UpdateDetails(partyID uuid.UUID, partyName string, documentDate time.Time, dueDate *time.Time, notes string) error {
	if partyID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Party is required")
	}
	if documentDate.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Document date is required")
	}
	if dueDate != nil && dueDate.Before(documentDate) {
		return shared.NewDomainError("INVALID_INPUT", "Due date cannot be before document date")
	}
	d.PartyID = partyID
	d.PartyName = partyName
	d.DocumentDate = documentDate
	d.DueDate = dueDate
	d.Notes = notes
	d.UpdatedAt = time.Now()
	return nil
}

// LinkSourceOrder records the order this invoice or bill was generated from
func (d *FinancialDocument) LinkSourceOrder(orderID uuid.UUID) {
	d.SourceOrderID = &orderID
	d.UpdatedAt = time.Now()
}

// CanDelete returns true if the document may be removed. Documents with
// recorded payments are kept for the audit trail.
func (d *FinancialDocument) CanDelete() bool {
	return !d.PaidAmount.IsPositive()
}
