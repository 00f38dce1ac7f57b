package identity

import (
	"context"

	"github.com/shivaccounts/backend/internal/domain/shared"
)

// UserRepository defines persistence for users
type UserRepository interface {
	shared.Repository[User]
	// FindByEmail returns the user with the given email, or ErrNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)
	// ExistsByEmail reports whether the email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
