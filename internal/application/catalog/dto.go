package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=255"`
	SKU           string           `json:"sku" binding:"max=64"`
	Type          string           `json:"type" binding:"required,oneof=sale purchase both"`
	Description   string           `json:"description"`
	SalePrice     decimal.Decimal  `json:"sale_price"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	TaxPercentage *decimal.Decimal `json:"tax_percentage"`
	Unit          string           `json:"unit" binding:"max=20"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=255"`
	SKU           *string          `json:"sku" binding:"omitempty,max=64"`
	Type          *string          `json:"type" binding:"omitempty,oneof=sale purchase both"`
	Description   *string          `json:"description"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	TaxPercentage *decimal.Decimal `json:"tax_percentage"`
	Unit          *string          `json:"unit" binding:"omitempty,max=20"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	Type          string          `json:"type"`
	Description   string          `json:"description,omitempty"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	Unit          string          `json:"unit,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=sale purchase both"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToProductResponse converts a domain product to its response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Type:          string(p.Type),
		Description:   p.Description,
		SalePrice:     p.SalePrice,
		PurchasePrice: p.PurchasePrice,
		TaxPercentage: p.TaxPercentage,
		Unit:          p.Unit,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}
