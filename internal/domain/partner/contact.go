package partner

import (
	"time"

	"github.com/shivaccounts/backend/internal/domain/shared"
)

// ContactType represents which side of the business a contact trades on
type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypeVendor   ContactType = "vendor"
)

// IsValid checks if the contact type is known
func (t ContactType) IsValid() bool {
	return t == ContactTypeCustomer || t == ContactTypeVendor
}

// String returns the string representation of the contact type
func (t ContactType) String() string {
	return string(t)
}

// Contact is the aggregate root for customers and vendors. Documents
// reference contacts by ID, so contacts are deactivated rather than
// deleted once they appear on a document.
type Contact struct {
	shared.BaseAggregateRoot
	Name     string      `gorm:"type:varchar(255);not null" json:"name"`
	Type     ContactType `gorm:"type:varchar(20);not null;index" json:"type"`
	Email    string      `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone    string      `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Address  string      `gorm:"type:text" json:"address,omitempty"`
	City     string      `gorm:"type:varchar(100)" json:"city,omitempty"`
	State    string      `gorm:"type:varchar(100)" json:"state,omitempty"`
	Pincode  string      `gorm:"type:varchar(10)" json:"pincode,omitempty"`
	GSTIN    string      `gorm:"type:varchar(15)" json:"gstin,omitempty"`
	IsActive bool        `gorm:"not null;default:true;index" json:"is_active"`
}

// TableName specifies the database table name
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a validated contact
func NewContact(name string, contactType ContactType, email, phone, address, city, state, pincode, gstin string) (*Contact, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Contact name is required")
	}
	if !contactType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Contact type must be customer or vendor")
	}
	return &Contact{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              contactType,
		Email:             email,
		Phone:             phone,
		Address:           address,
		City:              city,
		State:             state,
		Pincode:           pincode,
		GSTIN:             gstin,
		IsActive:          true,
	}, nil
}

// Update changes the contact's editable fields. The type is fixed at
// creation; flipping a customer to a vendor would orphan its documents.
func (c *Contact) Update(name, email, phone, address, city, state, pincode, gstin string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Contact name is required")
	}
	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.City = city
	c.State = state
	c.Pincode = pincode
	c.GSTIN = gstin
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the contact so existing documents keep a
// valid reference
func (c *Contact) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Contact is already inactive")
	}
	c.IsActive = false
	c.UpdatedAt = time.Now()
	return nil
}

// Activate restores a deactivated contact
func (c *Contact) Activate() error {
	if c.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Contact is already active")
	}
	c.IsActive = true
	c.UpdatedAt = time.Now()
	return nil
}
