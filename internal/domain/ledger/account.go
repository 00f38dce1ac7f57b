package ledger

import (
	"time"

	"github.com/shivaccounts/backend/internal/domain/shared"
)

// AccountType classifies an account in the chart of accounts. The type
// determines which side of the books increases the account and which
// report it rolls up into.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// IsValid checks if the account type is known
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of the account type
func (t AccountType) String() string {
	return string(t)
}

// DebitNormal returns true if debits increase this account's balance
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account is a node in the chart of accounts. Accounts with posted
// entries are deactivated rather than deleted.
type Account struct {
	shared.BaseAggregateRoot
	Code        string      `gorm:"type:varchar(20);not null;uniqueIndex" json:"code"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name"`
	Type        AccountType `gorm:"type:varchar(20);not null;index" json:"type"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool        `gorm:"not null;default:true;index" json:"is_active"`
}

// TableName specifies the database table name
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a validated account
func NewAccount(code, name string, accountType AccountType, description string) (*Account, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account code is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account name is required")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid account type")
	}
	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Type:              accountType,
		Description:       description,
		IsActive:          true,
	}, nil
}

// Update changes name and description. Code and type are fixed once
// entries may reference the account.
func (a *Account) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Account name is required")
	}
	a.Name = name
	a.Description = description
	a.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the account
func (a *Account) Deactivate() error {
	if !a.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Account is already inactive")
	}
	a.IsActive = false
	a.UpdatedAt = time.Now()
	return nil
}

// Activate restores a deactivated account
func (a *Account) Activate() error {
	if a.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Account is already active")
	}
	a.IsActive = true
	a.UpdatedAt = time.Now()
	return nil
}
