package partner

import (
	"context"

	"github.com/shivaccounts/backend/internal/domain/shared"
)

// ContactRepository defines persistence for contacts
type ContactRepository interface {
	shared.Repository[Contact]
	// FindByEmail returns the contact with the given email, or ErrNotFound
	FindByEmail(ctx context.Context, email string) (*Contact, error)
	// ExistsByEmail reports whether an active contact already uses the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
