package catalog

import (
	"time"

	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductType restricts which document families a product can appear on
type ProductType string

const (
	ProductTypeSale     ProductType = "sale"     // Sold to customers only
	ProductTypePurchase ProductType = "purchase" // Bought from vendors only
	ProductTypeBoth     ProductType = "both"
)

// IsValid checks if the product type is known
func (t ProductType) IsValid() bool {
	return t == ProductTypeSale || t == ProductTypePurchase || t == ProductTypeBoth
}

// String returns the string representation of the product type
func (t ProductType) String() string {
	return string(t)
}

// Product is the aggregate root for catalog items. Prices are defaults
// that document lines copy at creation time; later price changes never
// touch existing documents.
type Product struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	SKU           string          `gorm:"type:varchar(64);index" json:"sku,omitempty"`
	Type          ProductType     `gorm:"type:varchar(20);not null;default:'both'" json:"type"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"sale_price"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"purchase_price"`
	TaxPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_percentage"`
	Unit          string          `gorm:"type:varchar(20)" json:"unit,omitempty"`
	IsActive      bool            `gorm:"not null;default:true;index" json:"is_active"`
}

// TableName specifies the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a validated product
func NewProduct(name, sku string, productType ProductType, description string, salePrice, purchasePrice, taxPercentage decimal.Decimal, unit string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if !productType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product type must be sale, purchase or both")
	}
	if salePrice.IsNegative() || purchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product prices cannot be negative")
	}
	if taxPercentage.IsNegative() || taxPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product tax percentage must be between 0 and 100")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		Type:              productType,
		Description:       description,
		SalePrice:         salePrice,
		PurchasePrice:     purchasePrice,
		TaxPercentage:     taxPercentage,
		Unit:              unit,
		IsActive:          true,
	}, nil
}

// Update changes the product's editable fields
func (p *Product) Update(name, sku string, productType ProductType, description string, salePrice, purchasePrice, taxPercentage decimal.Decimal, unit string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if !productType.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Product type must be sale, purchase or both")
	}
	if salePrice.IsNegative() || purchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Product prices cannot be negative")
	}
	if taxPercentage.IsNegative() || taxPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_INPUT", "Product tax percentage must be between 0 and 100")
	}
	p.Name = name
	p.SKU = sku
	p.Type = productType
	p.Description = description
	p.SalePrice = salePrice
	p.PurchasePrice = purchasePrice
	p.TaxPercentage = taxPercentage
	p.Unit = unit
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the product so existing document lines keep
// a valid reference
func (p *Product) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Product is already inactive")
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
	return nil
}

// Activate restores a deactivated product
func (p *Product) Activate() error {
	if p.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Product is already active")
	}
	p.IsActive = true
	p.UpdatedAt = time.Now()
	return nil
}

// UsableOn reports whether the product may appear on documents needing
// the given side of the catalog
func (p *Product) UsableOn(sale bool) bool {
	if p.Type == ProductTypeBoth {
		return true
	}
	if sale {
		return p.Type == ProductTypeSale
	}
	return p.Type == ProductTypePurchase
}
