package catalog

import (
	"context"

	"github.com/shivaccounts/backend/internal/domain/shared"
)

// ProductRepository defines persistence for products
type ProductRepository interface {
	shared.Repository[Product]
	// FindBySKU returns the product with the given SKU, or ErrNotFound
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	// ExistsBySKU reports whether an active product already uses the SKU
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}
