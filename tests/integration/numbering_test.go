package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/partner"
	"github.com/shivaccounts/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentNumbersUniqueUnderContention(t *testing.T) {
	tdb := NewTestDB(t)
	tdb.CleanTables()

	contact := seedCustomer(t, tdb, "Gupta Traders")
	documentRepo := persistence.NewGormDocumentRepository(tdb.DB)

	const writers = 20

	docs := make([]*billing.FinancialDocument, writers)
	for i := range docs {
		doc, err := billing.NewFinancialDocument(billing.FamilyInvoice, contact.ID, contact.Name, time.Now(), nil, "")
		require.NoError(t, err)
		require.NoError(t, doc.AddLine(nil, "Line", decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.Zero))
		require.NoError(t, doc.Issue())
		docs[i] = doc
	}

	var wg sync.WaitGroup
	results := make([]error, writers)
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc *billing.FinancialDocument) {
			defer wg.Done()
			results[i] = documentRepo.Create(context.Background(), doc)
		}(i, doc)
	}
	wg.Wait()

	for i, err := range results {
		require.NoError(t, err, "writer %d failed", i)
	}

	// Every writer got a number and no two numbers collide
	seen := make(map[string]bool, writers)
	for _, doc := range docs {
		assert.Regexp(t, `^INV-\d{6}$`, doc.DocumentNumber)
		assert.False(t, seen[doc.DocumentNumber], "duplicate number %s", doc.DocumentNumber)
		seen[doc.DocumentNumber] = true
	}

	// The sequence is dense: with an empty table, N writers claim 1..N
	for seq := 1; seq <= writers; seq++ {
		assert.True(t, seen[fmt.Sprintf("INV-%06d", seq)], "missing INV-%06d", seq)
	}
}

func TestDocumentSequencesIndependentPerFamily(t *testing.T) {
	tdb := NewTestDB(t)
	tdb.CleanTables()

	contact := seedCustomer(t, tdb, "Reddy Agencies")
	documentRepo := persistence.NewGormDocumentRepository(tdb.DB)

	invoice := seedInvoice(t, tdb, contact, 100)
	assert.Equal(t, "INV-000001", invoice.DocumentNumber)

	order, err := billing.NewFinancialDocument(billing.FamilySaleOrder, contact.ID, contact.Name, time.Now(), nil, "")
	require.NoError(t, err)
	require.NoError(t, order.AddLine(nil, "Line", decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.Zero))
	require.NoError(t, order.Issue())
	require.NoError(t, documentRepo.Create(context.Background(), order))

	// The invoice already claimed 000001 in its own family; the sale order
	// still starts at 000001
	assert.Equal(t, "SO-000001", order.DocumentNumber)

	next, err := documentRepo.NextNumber(context.Background(), billing.FamilyInvoice)
	require.NoError(t, err)
	assert.Equal(t, "INV-000002", next)
}

func TestPaymentSequencesIndependentPerFamily(t *testing.T) {
	tdb := NewTestDB(t)
	tdb.CleanTables()

	customer := seedCustomer(t, tdb, "Mehta Stores")
	invoice := seedInvoice(t, tdb, customer, 300)

	vendor, err := partner.NewContact("Singh Supplies", partner.ContactTypeVendor, "", "", "", "", "", "", "")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormContactRepository(tdb.DB).Create(context.Background(), vendor))

	bill, err := billing.NewFinancialDocument(billing.FamilyVendorBill, vendor.ID, vendor.Name, time.Now(), nil, "")
	require.NoError(t, err)
	require.NoError(t, bill.AddLine(nil, "Raw material", decimal.NewFromInt(1), decimal.NewFromInt(200), decimal.Zero))
	require.NoError(t, bill.Issue())
	require.NoError(t, persistence.NewGormDocumentRepository(tdb.DB).Create(context.Background(), bill))

	paymentRepo := persistence.NewGormPaymentRepository(tdb.DB)

	first := newPayment(t, invoice, 100)
	_, err = paymentRepo.CreateWithSettlement(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, "PAY-000001", first.PaymentNumber)

	second := newPayment(t, invoice, 100)
	_, err = paymentRepo.CreateWithSettlement(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, "PAY-000002", second.PaymentNumber)

	// The vendor side shares the PAY prefix but draws its own sequence
	billPayment, err := billing.NewPayment(
		billing.PaymentFamilyVendor, bill.ID, vendor.ID,
		time.Now(), decimal.NewFromInt(200), billing.MethodBankTransfer, "", "",
	)
	require.NoError(t, err)
	_, err = paymentRepo.CreateWithSettlement(context.Background(), billPayment)
	require.NoError(t, err)
	assert.Equal(t, "PAY-000001", billPayment.PaymentNumber)
}
