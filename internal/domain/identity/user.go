package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/shivaccounts/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the access level of a user
type UserRole string

const (
	RoleAdmin         UserRole = "admin"          // Full access including user management
	RoleInvoicingUser UserRole = "invoicing_user" // Day-to-day bookkeeping access
)

// IsValid checks if the role is known
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleInvoicingUser
}

// String returns the string representation of the role
func (r UserRole) String() string {
	return string(r)
}

const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is the aggregate root for authentication. Passwords are stored
// only as bcrypt hashes.
type User struct {
	shared.BaseAggregateRoot
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:varchar(100);not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'invoicing_user'" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// TableName specifies the database table name
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user with a hashed password
func NewUser(name, email, password string, role UserRole) (*User, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid email address")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid user role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		IsActive:          true,
	}, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_INPUT", "Password cannot exceed 72 characters")
	}
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword validates and rehashes the password
func (u *User) ChangePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
}

// Rename changes the user's display name
func (u *User) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "User name is required")
	}
	u.Name = name
	u.UpdatedAt = time.Now()
	return nil
}

// ChangeRole changes the user's access level
func (u *User) ChangeRole(role UserRole) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Invalid user role")
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

// Deactivate blocks the user from logging in
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("INVALID_STATE", "User is already inactive")
	}
	u.IsActive = false
	u.UpdatedAt = time.Now()
	return nil
}

// Activate restores a deactivated user
func (u *User) Activate() error {
	if u.IsActive {
		return shared.NewDomainError("INVALID_STATE", "User is already active")
	}
	u.IsActive = true
	u.UpdatedAt = time.Now()
	return nil
}
