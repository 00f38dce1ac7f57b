package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/shared"
)

// SettlementService records and reverses payments. The balance math and
// status transitions run inside the payment repository's transaction,
// under a row lock on the parent document, so concurrent payments
// against the same document serialize.
type SettlementService struct {
	paymentRepo  billing.PaymentRepository
	documentRepo billing.DocumentRepository
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(paymentRepo billing.PaymentRepository, documentRepo billing.DocumentRepository) *SettlementService {
	return &SettlementService{
		paymentRepo:  paymentRepo,
		documentRepo: documentRepo,
	}
}

// CreatePayment records a payment against a settleable document and
// returns the payment with the settled parent's recomputed balance
func (s *SettlementService) CreatePayment(ctx context.Context, family billing.PaymentFamily, req CreatePaymentRequest) (*PaymentResponse, error) {
	// A missing document surfaces as not-found here exactly as it does
	// when the row disappears before the settlement transaction locks it
	document, err := s.documentRepo.FindByID(ctx, family.DocumentFamily(), req.DocumentID)
	if err != nil {
		return nil, err
	}

	payment, err := billing.NewPayment(
		family,
		document.ID,
		document.PartyID,
		req.PaymentDate,
		req.Amount,
		billing.PaymentMethod(req.Method),
		req.Reference,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	// Amount-vs-remaining validation happens inside the transaction,
	// after the parent row is locked; the pre-read above only provides
	// referential context for the payment record.
	settled, err := s.paymentRepo.CreateWithSettlement(ctx, payment)
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment, settled)
	return &response, nil
}

// GetByID retrieves a payment
func (s *SettlementService) GetByID(ctx context.Context, family billing.PaymentFamily, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, family, id)
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment, nil)
	return &response, nil
}

// List retrieves payments with filtering and pagination
func (s *SettlementService) List(ctx context.Context, family billing.PaymentFamily, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	payments, err := s.paymentRepo.FindAll(ctx, family, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.paymentRepo.Count(ctx, family, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i], nil)
	}
	return responses, total, nil
}

// DeletePayment removes a payment and reverses its amount from the
// parent document, returning the parent's recomputed state
func (s *SettlementService) DeletePayment(ctx context.Context, family billing.PaymentFamily, id uuid.UUID) (*DocumentResponse, error) {
	document, err := s.paymentRepo.DeleteWithSettlement(ctx, family, id)
	if err != nil {
		return nil, err
	}

	response := ToDocumentResponse(document)
	return &response, nil
}

func (s *SettlementService) toDomainFilter(filter PaymentListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.DocumentID != nil {
		domainFilter.Filters["document_id"] = *filter.DocumentID
	}
	if filter.PartyID != nil {
		domainFilter.Filters["party_id"] = *filter.PartyID
	}
	if filter.Method != "" {
		domainFilter.Filters["method"] = filter.Method
	}
	if !filter.StartDate.IsZero() {
		domainFilter.Filters["start_date"] = filter.StartDate
	}
	if !filter.EndDate.IsZero() {
		domainFilter.Filters["end_date"] = filter.EndDate
	}
	return domainFilter
}
