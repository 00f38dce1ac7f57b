package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSettlementService() (*SettlementService, *MockPaymentRepository, *MockDocumentRepository) {
	paymentRepo := new(MockPaymentRepository)
	documentRepo := new(MockDocumentRepository)
	return NewSettlementService(paymentRepo, documentRepo), paymentRepo, documentRepo
}

func TestSettlementService_CreatePayment(t *testing.T) {
	paymentDate := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	t.Run("records payment and returns settled document", func(t *testing.T) {
		service, paymentRepo, documentRepo := newSettlementService()
		invoice := newTestDocument(t, billing.FamilyInvoice, uuid.New(), 1000)

		documentRepo.On("FindByID", mock.Anything, billing.FamilyInvoice, invoice.ID).Return(invoice, nil)
		paymentRepo.On("CreateWithSettlement", mock.Anything, mock.MatchedBy(func(p *billing.Payment) bool {
			return p.Family == billing.PaymentFamilyCustomer &&
				p.DocumentID == invoice.ID &&
				p.PartyID == invoice.PartyID &&
				p.Amount.Equal(decimal.NewFromInt(400))
		})).Run(func(args mock.Arguments) {
			p := args.Get(1).(*billing.Payment)
			p.PaymentNumber = "PAY-000001"
			require.NoError(t, invoice.ApplyPayment(p.Amount))
		}).Return(invoice, nil)

		resp, err := service.CreatePayment(context.Background(), billing.PaymentFamilyCustomer, CreatePaymentRequest{
			DocumentID:  invoice.ID,
			PaymentDate: paymentDate,
			Amount:      decimal.NewFromInt(400),
			Method:      "bank_transfer",
			Reference:   "UTR-1",
		})

		require.NoError(t, err)
		assert.Equal(t, "PAY-000001", resp.PaymentNumber)
		require.NotNil(t, resp.Document)
		assert.True(t, resp.Document.PaidAmount.Equal(decimal.NewFromInt(400)))
		assert.Equal(t, "partially_paid", resp.Document.Status)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("surfaces unknown document as not found", func(t *testing.T) {
		service, paymentRepo, documentRepo := newSettlementService()
		documentID := uuid.New()

		documentRepo.On("FindByID", mock.Anything, billing.FamilyVendorBill, documentID).Return(nil, shared.ErrNotFound)

		resp, err := service.CreatePayment(context.Background(), billing.PaymentFamilyVendor, CreatePaymentRequest{
			DocumentID:  documentID,
			PaymentDate: paymentDate,
			Amount:      decimal.NewFromInt(100),
			Method:      "cash",
		})

		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		paymentRepo.AssertNotCalled(t, "CreateWithSettlement")
	})

	t.Run("propagates overpayment with remaining balance", func(t *testing.T) {
		service, paymentRepo, documentRepo := newSettlementService()
		invoice := newTestDocument(t, billing.FamilyInvoice, uuid.New(), 1000)
		invoice.PaidAmount = decimal.NewFromInt(800)
		invoice.Status = billing.StatusPartiallyPaid

		documentRepo.On("FindByID", mock.Anything, billing.FamilyInvoice, invoice.ID).Return(invoice, nil)
		paymentRepo.On("CreateWithSettlement", mock.Anything, mock.AnythingOfType("*billing.Payment")).
			Return(nil, &billing.AmountExceedsRemainingError{Remaining: decimal.NewFromInt(200)})

		resp, err := service.CreatePayment(context.Background(), billing.PaymentFamilyCustomer, CreatePaymentRequest{
			DocumentID:  invoice.ID,
			PaymentDate: paymentDate,
			Amount:      decimal.NewFromInt(300),
			Method:      "upi",
		})

		assert.Nil(t, resp)
		var exceedsErr *billing.AmountExceedsRemainingError
		require.True(t, errors.As(err, &exceedsErr))
		assert.True(t, exceedsErr.Remaining.Equal(decimal.NewFromInt(200)))
	})

	t.Run("rejects non-positive amount before touching the repository", func(t *testing.T) {
		service, paymentRepo, documentRepo := newSettlementService()
		invoice := newTestDocument(t, billing.FamilyInvoice, uuid.New(), 1000)

		documentRepo.On("FindByID", mock.Anything, billing.FamilyInvoice, invoice.ID).Return(invoice, nil)

		resp, err := service.CreatePayment(context.Background(), billing.PaymentFamilyCustomer, CreatePaymentRequest{
			DocumentID:  invoice.ID,
			PaymentDate: paymentDate,
			Amount:      decimal.Zero,
			Method:      "cash",
		})

		assert.Nil(t, resp)
		assert.Error(t, err)
		paymentRepo.AssertNotCalled(t, "CreateWithSettlement")
	})
}

func TestSettlementService_DeletePayment(t *testing.T) {
	t.Run("reverses settlement and returns updated document", func(t *testing.T) {
		service, paymentRepo, _ := newSettlementService()
		invoice := newTestDocument(t, billing.FamilyInvoice, uuid.New(), 1000)
		paymentID := uuid.New()

		paymentRepo.On("DeleteWithSettlement", mock.Anything, billing.PaymentFamilyCustomer, paymentID).Return(invoice, nil)

		resp, err := service.DeletePayment(context.Background(), billing.PaymentFamilyCustomer, paymentID)

		require.NoError(t, err)
		assert.True(t, resp.PaidAmount.Equal(decimal.Zero))
		assert.Equal(t, "open", resp.Status)
	})

	t.Run("propagates not found", func(t *testing.T) {
		service, paymentRepo, _ := newSettlementService()
		paymentID := uuid.New()

		paymentRepo.On("DeleteWithSettlement", mock.Anything, billing.PaymentFamilyVendor, paymentID).Return(nil, shared.ErrNotFound)

		resp, err := service.DeletePayment(context.Background(), billing.PaymentFamilyVendor, paymentID)

		assert.Nil(t, resp)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}
