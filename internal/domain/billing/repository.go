package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/shared"
)

// DocumentRepository defines persistence for financial documents.
// All lookups are family-scoped so the shared table behaves like four
// independent document stores.
type DocumentRepository interface {
	// FindByID loads a document with its lines
	FindByID(ctx context.Context, family DocumentFamily, id uuid.UUID) (*FinancialDocument, error)
	// FindByNumber loads a document by its assigned number
	FindByNumber(ctx context.Context, family DocumentFamily, number string) (*FinancialDocument, error)
	// FindAll returns documents matching the filter
	FindAll(ctx context.Context, family DocumentFamily, filter shared.Filter) ([]FinancialDocument, error)
	// Count returns the number of documents matching the filter
	Count(ctx context.Context, family DocumentFamily, filter shared.Filter) (int64, error)
	// Create assigns the next document number and persists the document
	// with its lines in a single transaction. On a number collision with
	// a concurrent writer the allocation is retried.
	Create(ctx context.Context, document *FinancialDocument) error
	// Update persists header and line changes with an optimistic lock
	// on the aggregate version
	Update(ctx context.Context, document *FinancialDocument) error
	// Delete removes the document and its lines
	Delete(ctx context.Context, family DocumentFamily, id uuid.UUID) error
	// NextNumber reports the number the next created document would
	// receive. It does not reserve the number; only Create does.
	NextNumber(ctx context.Context, family DocumentFamily) (string, error)
}

// PaymentRepository defines persistence for payments. Settlement side
// effects on the parent document happen inside the repository so that
// payment row and document balance can never diverge.
type PaymentRepository interface {
	// FindByID loads a payment
	FindByID(ctx context.Context, family PaymentFamily, id uuid.UUID) (*Payment, error)
	// FindAll returns payments matching the filter
	FindAll(ctx context.Context, family PaymentFamily, filter shared.Filter) ([]Payment, error)
	// Count returns the number of payments matching the filter
	Count(ctx context.Context, family PaymentFamily, filter shared.Filter) (int64, error)
	// CountByDocument returns how many payments settle the given document
	CountByDocument(ctx context.Context, family PaymentFamily, documentID uuid.UUID) (int64, error)
	// CreateWithSettlement locks the parent document, validates the
	// amount against its remaining balance, assigns the next payment
	// number, inserts the payment and updates the document's paid
	// amount and status, all in one transaction. The updated parent is
	// returned.
	CreateWithSettlement(ctx context.Context, payment *Payment) (*FinancialDocument, error)
	// DeleteWithSettlement removes the payment and reverses its amount
	// from the parent document in one transaction. The updated parent
	// is returned.
	DeleteWithSettlement(ctx context.Context, family PaymentFamily, id uuid.UUID) (*FinancialDocument, error)
}
