package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct("Steel Bracket", "SB-100", ProductTypeBoth, "", decimal.NewFromInt(150), decimal.NewFromInt(90), decimal.NewFromInt(18), "pcs")
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates active product", func(t *testing.T) {
		p := validProduct(t)
		assert.True(t, p.IsActive)
		assert.Equal(t, ProductTypeBoth, p.Type)
	})

	tests := []struct {
		name          string
		productName   string
		productType   ProductType
		salePrice     decimal.Decimal
		purchasePrice decimal.Decimal
		taxPct        decimal.Decimal
	}{
		{"empty name", "", ProductTypeBoth, decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero},
		{"unknown type", "Widget", ProductType("rental"), decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero},
		{"negative sale price", "Widget", ProductTypeSale, decimal.NewFromInt(-1), decimal.Zero, decimal.Zero},
		{"negative purchase price", "Widget", ProductTypePurchase, decimal.Zero, decimal.NewFromInt(-1), decimal.Zero},
		{"tax over 100", "Widget", ProductTypeBoth, decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(120)},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.productName, "", tt.productType, "", tt.salePrice, tt.purchasePrice, tt.taxPct, "")
			assert.Error(t, err)
		})
	}
}

func TestProduct_UsableOn(t *testing.T) {
	sale, err := NewProduct("Widget", "", ProductTypeSale, "", decimal.NewFromInt(10), decimal.Zero, decimal.Zero, "")
	require.NoError(t, err)
	purchase, err := NewProduct("Raw Material", "", ProductTypePurchase, "", decimal.Zero, decimal.NewFromInt(5), decimal.Zero, "")
	require.NoError(t, err)
	both := validProduct(t)

	assert.True(t, sale.UsableOn(true))
	assert.False(t, sale.UsableOn(false))
	assert.False(t, purchase.UsableOn(true))
	assert.True(t, purchase.UsableOn(false))
	assert.True(t, both.UsableOn(true))
	assert.True(t, both.UsableOn(false))
}

func TestProduct_ActivationCycle(t *testing.T) {
	p := validProduct(t)

	require.NoError(t, p.Deactivate())
	assert.False(t, p.IsActive)
	assert.Error(t, p.Deactivate())

	require.NoError(t, p.Activate())
	assert.True(t, p.IsActive)
}

func TestProduct_Update(t *testing.T) {
	p := validProduct(t)

	require.NoError(t, p.Update("Steel Bracket XL", "SB-200", ProductTypeSale, "larger variant", decimal.NewFromInt(200), decimal.NewFromInt(120), decimal.NewFromInt(18), "pcs"))
	assert.Equal(t, "Steel Bracket XL", p.Name)
	assert.Equal(t, ProductTypeSale, p.Type)

	assert.Error(t, p.Update("", "", ProductTypeSale, "", decimal.Zero, decimal.Zero, decimal.Zero, ""))
}
