package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T, total int64) *FinancialDocument {
	t.Helper()
	doc, err := NewFinancialDocument(FamilyInvoice, uuid.New(), "Acme Traders", time.Now(), nil, "")
	require.NoError(t, err)
	require.NoError(t, doc.AddLine(nil, "Consulting", decimal.NewFromInt(1), decimal.NewFromInt(total), decimal.Zero))
	require.NoError(t, doc.Issue())
	return doc
}

func TestNewFinancialDocument(t *testing.T) {
	t.Run("creates draft document", func(t *testing.T) {
		doc, err := NewFinancialDocument(FamilyInvoice, uuid.New(), "Acme Traders", time.Now(), nil, "first order")
		require.NoError(t, err)
		assert.Equal(t, StatusDraft, doc.Status)
		assert.Empty(t, doc.DocumentNumber)
		assert.True(t, doc.TotalAmount.IsZero())
		assert.True(t, doc.PaidAmount.IsZero())
	})

	t.Run("rejects invalid family", func(t *testing.T) {
		_, err := NewFinancialDocument(DocumentFamily("receipt"), uuid.New(), "Acme", time.Now(), nil, "")
		assert.Error(t, err)
	})

	t.Run("rejects nil party", func(t *testing.T) {
		_, err := NewFinancialDocument(FamilyInvoice, uuid.Nil, "Acme", time.Now(), nil, "")
		assert.Error(t, err)
	})

	t.Run("rejects due date before document date", func(t *testing.T) {
		docDate := time.Now()
		due := docDate.Add(-24 * time.Hour)
		_, err := NewFinancialDocument(FamilyInvoice, uuid.New(), "Acme", docDate, &due, "")
		assert.Error(t, err)
	})
}

func TestDocumentLine_Validation(t *testing.T) {
	tests := []struct {
		name        string
		description string
		quantity    decimal.Decimal
		unitPrice   decimal.Decimal
		taxPct      decimal.Decimal
		wantErr     bool
	}{
		{"valid line", "Widget", decimal.NewFromInt(2), decimal.NewFromInt(50), decimal.NewFromInt(18), false},
		{"empty description", "", decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.Zero, true},
		{"zero quantity", "Widget", decimal.Zero, decimal.NewFromInt(10), decimal.Zero, true},
		{"negative quantity", "Widget", decimal.NewFromInt(-1), decimal.NewFromInt(10), decimal.Zero, true},
		{"negative price", "Widget", decimal.NewFromInt(1), decimal.NewFromInt(-10), decimal.Zero, true},
		{"tax over 100", "Widget", decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.NewFromInt(101), true},
		{"zero price allowed", "Sample", decimal.NewFromInt(1), decimal.Zero, decimal.Zero, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDocumentLine(nil, tt.description, tt.quantity, tt.unitPrice, tt.taxPct)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFinancialDocument_Totals(t *testing.T) {
	doc, err := NewFinancialDocument(FamilyInvoice, uuid.New(), "Acme Traders", time.Now(), nil, "")
	require.NoError(t, err)

	// 2 x 100 @ 18% tax, 1 x 50 @ 0% tax
	require.NoError(t, doc.AddLine(nil, "Consulting", decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.NewFromInt(18)))
	require.NoError(t, doc.AddLine(nil, "Courier", decimal.NewFromInt(1), decimal.NewFromInt(50), decimal.Zero))

	assert.True(t, doc.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal = %s", doc.Subtotal)
	assert.True(t, doc.TaxAmount.Equal(decimal.NewFromInt(36)), "tax = %s", doc.TaxAmount)
	assert.True(t, doc.TotalAmount.Equal(decimal.NewFromInt(286)), "total = %s", doc.TotalAmount)
}

func TestStatusForBalance(t *testing.T) {
	total := decimal.NewFromInt(100)

	tests := []struct {
		name string
		paid decimal.Decimal
		want DocumentStatus
	}{
		{"nothing paid", decimal.Zero, StatusOpen},
		{"negative paid", decimal.NewFromInt(-10), StatusOpen},
		{"partially paid", decimal.NewFromInt(40), StatusPartiallyPaid},
		{"fully paid", decimal.NewFromInt(100), StatusPaid},
		{"over total", decimal.NewFromInt(120), StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForBalance(tt.paid, total))
		})
	}
}

func TestFinancialDocument_ApplyPayment(t *testing.T) {
	t.Run("partial payment moves to partially_paid", func(t *testing.T) {
		doc := newTestInvoice(t, 100)

		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(40)))
		assert.Equal(t, StatusPartiallyPaid, doc.Status)
		assert.True(t, doc.PaidAmount.Equal(decimal.NewFromInt(40)))
		assert.True(t, doc.RemainingBalance().Equal(decimal.NewFromInt(60)))
	})

	t.Run("exact remaining settles the document", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(40)))

		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(60)))
		assert.Equal(t, StatusPaid, doc.Status)
		assert.True(t, doc.RemainingBalance().IsZero())
	})

	t.Run("overpayment is rejected with remaining balance", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(40)))

		err := doc.ApplyPayment(decimal.NewFromInt(70))
		require.Error(t, err)

		var exceedsErr *AmountExceedsRemainingError
		require.True(t, errors.As(err, &exceedsErr))
		assert.True(t, exceedsErr.Remaining.Equal(decimal.NewFromInt(60)))

		// document untouched on rejection
		assert.True(t, doc.PaidAmount.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, StatusPartiallyPaid, doc.Status)
	})

	t.Run("rejects payment on fully settled document", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(100)))

		err := doc.ApplyPayment(decimal.NewFromInt(1))
		var exceedsErr *AmountExceedsRemainingError
		require.True(t, errors.As(err, &exceedsErr))
		assert.True(t, exceedsErr.Remaining.IsZero())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		assert.Error(t, doc.ApplyPayment(decimal.Zero))
		assert.Error(t, doc.ApplyPayment(decimal.NewFromInt(-5)))
	})

	t.Run("rejects payment on cancelled document", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		require.NoError(t, doc.Cancel())
		assert.Error(t, doc.ApplyPayment(decimal.NewFromInt(10)))
	})

	t.Run("rejects payment on non-settleable family", func(t *testing.T) {
		doc, err := NewFinancialDocument(FamilySaleOrder, uuid.New(), "Acme", time.Now(), nil, "")
		require.NoError(t, err)
		require.NoError(t, doc.AddLine(nil, "Widget", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero))

		assert.Error(t, doc.ApplyPayment(decimal.NewFromInt(100)))
	})
}

func TestFinancialDocument_ReversePayment(t *testing.T) {
	t.Run("reversal restores prior state", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(40)))
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(60)))
		assert.Equal(t, StatusPaid, doc.Status)

		require.NoError(t, doc.ReversePayment(decimal.NewFromInt(60)))
		assert.Equal(t, StatusPartiallyPaid, doc.Status)
		assert.True(t, doc.PaidAmount.Equal(decimal.NewFromInt(40)))

		require.NoError(t, doc.ReversePayment(decimal.NewFromInt(40)))
		assert.Equal(t, StatusOpen, doc.Status)
		assert.True(t, doc.PaidAmount.IsZero())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		assert.Error(t, doc.ReversePayment(decimal.Zero))
	})
}

func TestFinancialDocument_Cancel(t *testing.T) {
	t.Run("cancels unsettled document", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		require.NoError(t, doc.Cancel())
		assert.Equal(t, StatusCancelled, doc.Status)
	})

	t.Run("rejects cancelling settled document", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(10)))
		assert.Error(t, doc.Cancel())
	})

	t.Run("rejects double cancel", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		require.NoError(t, doc.Cancel())
		assert.Error(t, doc.Cancel())
	})
}

func TestFinancialDocument_Issue(t *testing.T) {
	t.Run("requires at least one line", func(t *testing.T) {
		doc, err := NewFinancialDocument(FamilyInvoice, uuid.New(), "Acme", time.Now(), nil, "")
		require.NoError(t, err)
		assert.Error(t, doc.Issue())
	})

	t.Run("only draft can be issued", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		assert.Error(t, doc.Issue())
	})
}

func TestFinancialDocument_SetStatus(t *testing.T) {
	t.Run("moves draft to open", func(t *testing.T) {
		doc, err := NewFinancialDocument(FamilyInvoice, uuid.New(), "Acme", time.Now(), nil, "")
		require.NoError(t, err)
		require.NoError(t, doc.AddLine(nil, "Widget", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero))

		require.NoError(t, doc.SetStatus(StatusOpen))
		assert.Equal(t, StatusOpen, doc.Status)
	})

	t.Run("moves open back to draft while unpaid", func(t *testing.T) {
		doc := newTestInvoice(t, 100)

		require.NoError(t, doc.SetStatus(StatusDraft))
		assert.Equal(t, StatusDraft, doc.Status)
	})

	t.Run("rejects settlement statuses", func(t *testing.T) {
		doc := newTestInvoice(t, 100)

		assert.Error(t, doc.SetStatus(StatusPaid))
		assert.Error(t, doc.SetStatus(StatusPartiallyPaid))
		assert.Equal(t, StatusOpen, doc.Status)
	})

	t.Run("rejects direct status once payments exist", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(40)))

		assert.Error(t, doc.SetStatus(StatusDraft))
		assert.Error(t, doc.SetStatus(StatusCancelled))
		assert.Equal(t, StatusPartiallyPaid, doc.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		doc := newTestInvoice(t, 100)
		assert.Error(t, doc.SetStatus(DocumentStatus("archived")))
	})
}

func TestFinancialDocument_CanDelete(t *testing.T) {
	doc := newTestInvoice(t, 100)
	assert.True(t, doc.CanDelete())

	require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(1)))
	assert.False(t, doc.CanDelete())
}

func TestDocumentFamily(t *testing.T) {
	tests := []struct {
		family     DocumentFamily
		prefix     string
		settleable bool
		role       PartnerRole
	}{
		{FamilyInvoice, "INV", true, PartnerRoleCustomer},
		{FamilyVendorBill, "BILL", true, PartnerRoleVendor},
		{FamilySaleOrder, "SO", false, PartnerRoleCustomer},
		{FamilyPurchaseOrder, "PO", false, PartnerRoleVendor},
	}

	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			assert.True(t, tt.family.IsValid())
			assert.Equal(t, tt.prefix, tt.family.NumberPrefix())
			assert.Equal(t, tt.settleable, tt.family.Settleable())
			assert.Equal(t, tt.role, tt.family.PartnerRole())
		})
	}

	assert.False(t, DocumentFamily("quote").IsValid())
}
