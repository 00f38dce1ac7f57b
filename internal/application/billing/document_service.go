package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/catalog"
	"github.com/shivaccounts/backend/internal/domain/partner"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DocumentService handles financial document operations for all four
// families. The family is a parameter so invoices, vendor bills, sale
// orders and purchase orders share one write path.
type DocumentService struct {
	documentRepo billing.DocumentRepository
	paymentRepo  billing.PaymentRepository
	contactRepo  partner.ContactRepository
	productRepo  catalog.ProductRepository
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo billing.DocumentRepository,
	paymentRepo billing.PaymentRepository,
	contactRepo partner.ContactRepository,
	productRepo catalog.ProductRepository,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		paymentRepo:  paymentRepo,
		contactRepo:  contactRepo,
		productRepo:  productRepo,
	}
}

// Create validates the counterparty and lines, assigns the next document
// number and writes header and lines in one transaction. The document
// starts in draft unless the caller supplies a status.
func (s *DocumentService) Create(ctx context.Context, family billing.DocumentFamily, req CreateDocumentRequest) (*DocumentResponse, error) {
	contact, err := s.validateParty(ctx, family, req.PartyID)
	if err != nil {
		return nil, err
	}

	if req.SourceOrderID != nil {
		if err := s.validateSourceOrder(ctx, family, *req.SourceOrderID, req.PartyID); err != nil {
			return nil, err
		}
	}

	document, err := billing.NewFinancialDocument(family, contact.ID, contact.Name, req.DocumentDate, req.DueDate, req.Notes)
	if err != nil {
		return nil, err
	}
	if req.SourceOrderID != nil {
		document.LinkSourceOrder(*req.SourceOrderID)
	}

	if err := s.addLines(ctx, document, req.Lines); err != nil {
		return nil, err
	}

	switch status := billing.DocumentStatus(req.Status); status {
	case "", billing.StatusDraft:
		// documents start in draft
	case billing.StatusOpen:
		if err := document.Issue(); err != nil {
			return nil, err
		}
	default:
		if err := document.SetStatus(status); err != nil {
			return nil, err
		}
	}

	if err := s.documentRepo.Create(ctx, document); err != nil {
		return nil, err
	}

	// Re-read the committed state so the response carries exactly what
	// was stored, assigned number included
	stored, err := s.documentRepo.FindByID(ctx, family, document.ID)
	if err != nil {
		return nil, err
	}

	response := ToDocumentResponse(stored)
	return &response, nil
}

// ConvertOrder creates an invoice from a sale order or a vendor bill
// from a purchase order, copying the order's party and lines and linking
// the source.
func (s *DocumentService) ConvertOrder(ctx context.Context, orderFamily billing.DocumentFamily, orderID uuid.UUID) (*DocumentResponse, error) {
	var targetFamily billing.DocumentFamily
	switch orderFamily {
	case billing.FamilySaleOrder:
		targetFamily = billing.FamilyInvoice
	case billing.FamilyPurchaseOrder:
		targetFamily = billing.FamilyVendorBill
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Only orders can be converted")
	}

	order, err := s.documentRepo.FindByID(ctx, orderFamily, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == billing.StatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot convert a cancelled order")
	}

	document, err := billing.NewFinancialDocument(targetFamily, order.PartyID, order.PartyName, order.DocumentDate, order.DueDate, order.Notes)
	if err != nil {
		return nil, err
	}
	document.LinkSourceOrder(order.ID)

	for i := range order.Lines {
		line := order.Lines[i]
		if err := document.AddLine(line.ProductID, line.Description, line.Quantity, line.UnitPrice, line.TaxPercentage); err != nil {
			return nil, err
		}
	}

	if err := document.Issue(); err != nil {
		return nil, err
	}

	if err := s.documentRepo.Create(ctx, document); err != nil {
		return nil, err
	}

	stored, err := s.documentRepo.FindByID(ctx, targetFamily, document.ID)
	if err != nil {
		return nil, err
	}

	response := ToDocumentResponse(stored)
	return &response, nil
}

// GetByID retrieves a document with its lines
func (s *DocumentService) GetByID(ctx context.Context, family billing.DocumentFamily, id uuid.UUID) (*DocumentResponse, error) {
	document, err := s.documentRepo.FindByID(ctx, family, id)
	if err != nil {
		return nil, err
	}

	response := ToDocumentResponse(document)
	return &response, nil
}

// GetByNumber retrieves a document by its assigned number
func (s *DocumentService) GetByNumber(ctx context.Context, family billing.DocumentFamily, number string) (*DocumentResponse, error) {
	document, err := s.documentRepo.FindByNumber(ctx, family, number)
	if err != nil {
		return nil, err
	}

	response := ToDocumentResponse(document)
	return &response, nil
}

// List retrieves documents with filtering and pagination
func (s *DocumentService) List(ctx context.Context, family billing.DocumentFamily, filter DocumentListFilter) ([]DocumentResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	documents, err := s.documentRepo.FindAll(ctx, family, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.documentRepo.Count(ctx, family, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DocumentResponse, len(documents))
	for i := range documents {
		responses[i] = ToDocumentResponse(&documents[i])
	}
	return responses, total, nil
}

// NextNumber reports the number the next created document would receive
func (s *DocumentService) NextNumber(ctx context.Context, family billing.DocumentFamily) (string, error) {
	return s.documentRepo.NextNumber(ctx, family)
}

// Update changes a document's header and optionally replaces its lines
// or moves its lifecycle status. Settled amounts are untouched; a
// settled document's status is rederived from the new total.
func (s *DocumentService) Update(ctx context.Context, family billing.DocumentFamily, id uuid.UUID, req UpdateDocumentRequest) (*DocumentResponse, error) {
	document, err := s.documentRepo.FindByID(ctx, family, id)
	if err != nil {
		return nil, err
	}
	if document.Status == billing.StatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot update a cancelled document")
	}

	partyID := document.PartyID
	partyName := document.PartyName
	if req.PartyID != nil && *req.PartyID != document.PartyID {
		contact, err := s.validateParty(ctx, family, *req.PartyID)
		if err != nil {
			return nil, err
		}
		partyID = contact.ID
		partyName = contact.Name
	}

	documentDate := document.DocumentDate
	if req.DocumentDate != nil {
		documentDate = *req.DocumentDate
	}
	dueDate := document.DueDate
	if req.DueDate != nil {
		dueDate = req.DueDate
	}
	notes := document.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}

	if err := document.UpdateDetails(partyID, partyName, documentDate, dueDate, notes); err != nil {
		return nil, err
	}

	if len(req.Lines) > 0 {
		document.Lines = nil
		if err := s.addLines(ctx, document, req.Lines); err != nil {
			return nil, err
		}
		if document.PaidAmount.GreaterThan(document.TotalAmount) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Document total cannot drop below the amount already paid")
		}
		// A draft stays draft through a line change; settled documents
		// rederive their status from the new total
		if document.PaidAmount.IsPositive() {
			document.Status = billing.StatusForBalance(document.PaidAmount, document.TotalAmount)
		}
	}

	if req.Status != nil && billing.DocumentStatus(*req.Status) != document.Status {
		if err := document.SetStatus(billing.DocumentStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.documentRepo.Update(ctx, document); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(document)
	return &response, nil
}

// Cancel voids a document. Documents with recorded payments must have
// those payments deleted first.
func (s *DocumentService) Cancel(ctx context.Context, family billing.DocumentFamily, id uuid.UUID) (*DocumentResponse, error) {
	document, err := s.documentRepo.FindByID(ctx, family, id)
	if err != nil {
		return nil, err
	}

	if err := document.Cancel(); err != nil {
		return nil, err
	}

	if err := s.documentRepo.Update(ctx, document); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(document)
	return &response, nil
}

// Delete removes a document. Settleable documents with payments are
// refused; delete the payments first.
func (s *DocumentService) Delete(ctx context.Context, family billing.DocumentFamily, id uuid.UUID) error {
	document, err := s.documentRepo.FindByID(ctx, family, id)
	if err != nil {
		return err
	}
	if !document.CanDelete() {
		return shared.ErrHasDependents
	}

	if family.Settleable() {
		count, err := s.paymentRepo.CountByDocument(ctx, paymentFamilyFor(family), id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrHasDependents
		}
	}

	return s.documentRepo.Delete(ctx, family, id)
}

// validateParty checks the counterparty exists, is active and sits on
// the side of the business the family requires
func (s *DocumentService) validateParty(ctx context.Context, family billing.DocumentFamily, partyID uuid.UUID) (*partner.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, partyID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("INVALID_INPUT", "Party does not exist")
		}
		return nil, err
	}
	if !contact.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Party is inactive")
	}

	requiredType := partner.ContactTypeCustomer
	if family.PartnerRole() == billing.PartnerRoleVendor {
		requiredType = partner.ContactTypeVendor
	}
	if contact.Type != requiredType {
		return nil, shared.NewDomainError("INVALID_INPUT", "Party is not a "+string(requiredType))
	}
	return contact, nil
}

// validateSourceOrder checks the referenced order exists in the family
// this document family is generated from and belongs to the same party
func (s *DocumentService) validateSourceOrder(ctx context.Context, family billing.DocumentFamily, orderID, partyID uuid.UUID) error {
	var orderFamily billing.DocumentFamily
	switch family {
	case billing.FamilyInvoice:
		orderFamily = billing.FamilySaleOrder
	case billing.FamilyVendorBill:
		orderFamily = billing.FamilyPurchaseOrder
	default:
		return shared.NewDomainError("INVALID_INPUT", "Orders cannot reference a source order")
	}

	order, err := s.documentRepo.FindByID(ctx, orderFamily, orderID)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("INVALID_INPUT", "Source order does not exist")
		}
		return err
	}
	if order.PartyID != partyID {
		return shared.NewDomainError("INVALID_INPUT", "Source order belongs to a different party")
	}
	return nil
}

// addLines resolves product references and appends validated lines
func (s *DocumentService) addLines(ctx context.Context, document *billing.FinancialDocument, lines []DocumentLineRequest) error {
	saleSide := document.Family.PartnerRole() == billing.PartnerRoleCustomer

	for _, line := range lines {
		description := line.Description
		unitPrice := decimal.Zero
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}
		taxPercentage := decimal.Zero
		if line.TaxPercentage != nil {
			taxPercentage = *line.TaxPercentage
		}

		if line.ProductID != nil {
			product, err := s.productRepo.FindByID(ctx, *line.ProductID)
			if err != nil {
				if err == shared.ErrNotFound {
					return shared.NewDomainError("INVALID_INPUT", "Line product does not exist")
				}
				return err
			}
			if !product.IsActive {
				return shared.NewDomainError("INVALID_STATE", "Product "+product.Name+" is inactive")
			}
			if !product.UsableOn(saleSide) {
				return shared.NewDomainError("INVALID_INPUT", "Product "+product.Name+" cannot appear on this document type")
			}
			if description == "" {
				description = product.Name
			}
			if line.UnitPrice == nil {
				if saleSide {
					unitPrice = product.SalePrice
				} else {
					unitPrice = product.PurchasePrice
				}
			}
			if line.TaxPercentage == nil {
				taxPercentage = product.TaxPercentage
			}
		}

		if err := document.AddLine(line.ProductID, description, line.Quantity, unitPrice, taxPercentage); err != nil {
			return err
		}
	}
	return nil
}

func (s *DocumentService) toDomainFilter(filter DocumentListFilter) shared.Filter {
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
	if filter.PartyID != nil {
		domainFilter.Filters["party_id"] = *filter.PartyID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if !filter.StartDate.IsZero() {
		domainFilter.Filters["start_date"] = filter.StartDate
	}
	if !filter.EndDate.IsZero() {
		domainFilter.Filters["end_date"] = filter.EndDate
	}
	return domainFilter
}

// paymentFamilyFor maps a settleable document family to the payment
// family that settles it
func paymentFamilyFor(family billing.DocumentFamily) billing.PaymentFamily {
	if family == billing.FamilyInvoice {
		return billing.PaymentFamilyCustomer
	}
	return billing.PaymentFamilyVendor
}
