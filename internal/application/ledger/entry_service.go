package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/ledger"
	"github.com/shivaccounts/backend/internal/domain/shared"
)

// EntryService handles ledger entry queries and manual adjustments.
// Entries are append-only; the only write path is a balanced adjustment
// batch.
type EntryService struct {
	entryRepo   ledger.EntryRepository
	accountRepo ledger.AccountRepository
}

// NewEntryService creates a new EntryService
func NewEntryService(entryRepo ledger.EntryRepository, accountRepo ledger.AccountRepository) *EntryService {
	return &EntryService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

// GetByID retrieves an entry by ID
func (s *EntryService) GetByID(ctx context.Context, id uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToEntryResponse(entry)
	return &response, nil
}

// List retrieves entries with filtering and pagination
func (s *EntryService) List(ctx context.Context, filter EntryListFilter) ([]EntryResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	entries, err := s.entryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.entryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses, total, nil
}

// CreateAdjustment posts a balanced batch of manual entries. Every
// referenced account must exist and be active, and total debits must
// equal total credits.
func (s *EntryService) CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest) ([]EntryResponse, error) {
	if len(req.Lines) < 2 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Adjustment requires at least two lines")
	}

	seen := make(map[uuid.UUID]bool)
	for _, line := range req.Lines {
		if seen[line.AccountID] {
			continue
		}
		account, err := s.accountRepo.FindByID(ctx, line.AccountID)
		if err != nil {
			return nil, err
		}
		if !account.IsActive {
			return nil, shared.NewDomainError("INVALID_STATE", "Account "+account.Code+" is inactive")
		}
		seen[line.AccountID] = true
	}

	entries := make([]ledger.LedgerEntry, 0, len(req.Lines))
	for _, line := range req.Lines {
		entry, err := ledger.NewLedgerEntry(
			req.EntryDate,
			line.AccountID,
			line.PartnerID,
			ledger.ReferenceAdjustment,
			nil,
			line.Description,
			line.DebitAmount,
			line.CreditAmount,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := s.entryRepo.CreateBatch(ctx, entries); err != nil {
		return nil, err
	}

	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses, nil
}

func (s *EntryService) toDomainFilter(filter EntryListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "entry_date"
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
	if filter.AccountID != nil {
		domainFilter.Filters["account_id"] = *filter.AccountID
	}
	if filter.PartnerID != nil {
		domainFilter.Filters["partner_id"] = *filter.PartnerID
	}
	if filter.ReferenceType != "" {
		domainFilter.Filters["reference_type"] = filter.ReferenceType
	}
	if !filter.StartDate.IsZero() {
		domainFilter.Filters["start_date"] = filter.StartDate
	}
	if !filter.EndDate.IsZero() {
		domainFilter.Filters["end_date"] = filter.EndDate
	}
	return domainFilter
}
