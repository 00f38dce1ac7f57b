package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/partner"
	"github.com/shivaccounts/backend/internal/domain/shared"
)

// ContactService handles contact-related business operations
type ContactService struct {
	contactRepo partner.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo partner.ContactRepository) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
	}
}

// Create creates a new contact
func (s *ContactService) Create(ctx context.Context, req CreateContactRequest) (*ContactResponse, error) {
	if req.Email != "" {
		exists, err := s.contactRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Contact with this email already exists")
		}
	}

	contact, err := partner.NewContact(
		req.Name,
		partner.ContactType(req.Type),
		req.Email,
		req.Phone,
		req.Address,
		req.City,
		req.State,
		req.Pincode,
		req.GSTIN,
	)
	if err != nil {
		return nil, err
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// GetByID retrieves a contact by ID
func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// List retrieves contacts with filtering and pagination
func (s *ContactService) List(ctx context.Context, filter ContactListFilter) ([]ContactResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	contacts, err := s.contactRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.contactRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses, total, nil
}

// Update updates a contact's details
func (s *ContactService) Update(ctx context.Context, id uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != "" && *req.Email != contact.Email {
		exists, err := s.contactRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Contact with this email already exists")
		}
	}

	name := contact.Name
	if req.Name != nil {
		name = *req.Name
	}
	email := contact.Email
	if req.Email != nil {
		email = *req.Email
	}
	phone := contact.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	address := contact.Address
	if req.Address != nil {
		address = *req.Address
	}
	city := contact.City
	if req.City != nil {
		city = *req.City
	}
	state := contact.State
	if req.State != nil {
		state = *req.State
	}
	pincode := contact.Pincode
	if req.Pincode != nil {
		pincode = *req.Pincode
	}
	gstin := contact.GSTIN
	if req.GSTIN != nil {
		gstin = *req.GSTIN
	}

	if err := contact.Update(name, email, phone, address, city, state, pincode, gstin); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Deactivate marks a contact inactive so new documents cannot reference it
func (s *ContactService) Deactivate(ctx context.Context, id uuid.UUID) error {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := contact.Deactivate(); err != nil {
		return err
	}
	return s.contactRepo.Update(ctx, contact)
}

// Activate reinstates a deactivated contact
func (s *ContactService) Activate(ctx context.Context, id uuid.UUID) error {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := contact.Activate(); err != nil {
		return err
	}
	return s.contactRepo.Update(ctx, contact)
}

// Delete removes a contact permanently
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.contactRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.contactRepo.Delete(ctx, id)
}

func (s *ContactService) toDomainFilter(filter ContactListFilter) shared.Filter {
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
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}
	return domainFilter
}
