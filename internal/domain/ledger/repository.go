package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/shared"
)

// AccountRepository defines persistence for the chart of accounts
type AccountRepository interface {
	shared.Repository[Account]
	// FindByCode returns the account with the given code, or ErrNotFound
	FindByCode(ctx context.Context, code string) (*Account, error)
	// ExistsByCode reports whether the code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)
	// HasEntries reports whether any ledger entry references the account
	HasEntries(ctx context.Context, accountID uuid.UUID) (bool, error)
}

// EntryRepository defines persistence for ledger entries. Entries are
// append-only; corrections are posted as adjustment entries.
type EntryRepository interface {
	// FindByID loads an entry
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerEntry, error)
	// FindAll returns entries matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]LedgerEntry, error)
	// Count returns the number of entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// CreateBatch persists a set of entries atomically. The batch must
	// balance: total debits equal total credits.
	CreateBatch(ctx context.Context, entries []LedgerEntry) error
}
