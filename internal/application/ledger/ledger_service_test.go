package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/ledger"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, code string) (*ledger.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) HasEntries(ctx context.Context, accountID uuid.UUID) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Account, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEntryRepository is a mock implementation of EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) CreateBatch(ctx context.Context, entries []ledger.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func newTestAccount(t *testing.T, code string, accountType ledger.AccountType) *ledger.Account {
	account, err := ledger.NewAccount(code, "Account "+code, accountType, "")
	require.NoError(t, err)
	return account
}

func TestAccountService_Create(t *testing.T) {
	t.Run("creates account", func(t *testing.T) {
		repo := new(MockAccountRepository)
		service := NewAccountService(repo)

		repo.On("ExistsByCode", mock.Anything, "1001").Return(false, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*ledger.Account")).Return(nil)

		resp, err := service.Create(context.Background(), CreateAccountRequest{
			Code: "1001",
			Name: "Cash",
			Type: "asset",
		})

		assert.NoError(t, err)
		assert.Equal(t, "1001", resp.Code)
		assert.Equal(t, "asset", resp.Type)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(MockAccountRepository)
		service := NewAccountService(repo)

		repo.On("ExistsByCode", mock.Anything, "1001").Return(true, nil)

		resp, err := service.Create(context.Background(), CreateAccountRequest{
			Code: "1001",
			Name: "Cash",
			Type: "asset",
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		repo := new(MockAccountRepository)
		service := NewAccountService(repo)

		repo.On("ExistsByCode", mock.Anything, "1001").Return(false, nil)

		resp, err := service.Create(context.Background(), CreateAccountRequest{
			Code: "1001",
			Name: "Cash",
			Type: "contra",
		})

		assert.Nil(t, resp)
		assert.Error(t, err)
	})
}

func TestAccountService_Delete(t *testing.T) {
	t.Run("deletes account without entries", func(t *testing.T) {
		repo := new(MockAccountRepository)
		service := NewAccountService(repo)

		account := newTestAccount(t, "1001", ledger.AccountTypeAsset)
		repo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		repo.On("HasEntries", mock.Anything, account.ID).Return(false, nil)
		repo.On("Delete", mock.Anything, account.ID).Return(nil)

		err := service.Delete(context.Background(), account.ID)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("refuses to delete account with entries", func(t *testing.T) {
		repo := new(MockAccountRepository)
		service := NewAccountService(repo)

		account := newTestAccount(t, "4001", ledger.AccountTypeRevenue)
		repo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		repo.On("HasEntries", mock.Anything, account.ID).Return(true, nil)

		err := service.Delete(context.Background(), account.ID)

		assert.Equal(t, shared.ErrHasDependents, err)
		repo.AssertNotCalled(t, "Delete")
	})
}

func TestEntryService_CreateAdjustment(t *testing.T) {
	entryDate := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("posts balanced adjustment", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockEntryRepository)
		service := NewEntryService(entryRepo, accountRepo)

		cash := newTestAccount(t, "1001", ledger.AccountTypeAsset)
		revenue := newTestAccount(t, "4001", ledger.AccountTypeRevenue)
		accountRepo.On("FindByID", mock.Anything, cash.ID).Return(cash, nil)
		accountRepo.On("FindByID", mock.Anything, revenue.ID).Return(revenue, nil)
		entryRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(entries []ledger.LedgerEntry) bool {
			return len(entries) == 2 &&
				entries[0].ReferenceType == ledger.ReferenceAdjustment
		})).Return(nil)

		responses, err := service.CreateAdjustment(context.Background(), CreateAdjustmentRequest{
			EntryDate: entryDate,
			Lines: []AdjustmentLineRequest{
				{AccountID: cash.ID, Description: "Opening cash", DebitAmount: decimal.NewFromInt(500)},
				{AccountID: revenue.ID, Description: "Opening balance", CreditAmount: decimal.NewFromInt(500)},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, responses, 2)
		entryRepo.AssertExpectations(t)
	})

	t.Run("rejects single line batch", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockEntryRepository)
		service := NewEntryService(entryRepo, accountRepo)

		cash := newTestAccount(t, "1001", ledger.AccountTypeAsset)

		responses, err := service.CreateAdjustment(context.Background(), CreateAdjustmentRequest{
			EntryDate: entryDate,
			Lines: []AdjustmentLineRequest{
				{AccountID: cash.ID, Description: "Lonely debit", DebitAmount: decimal.NewFromInt(500)},
			},
		})

		assert.Nil(t, responses)
		assert.Error(t, err)
		entryRepo.AssertNotCalled(t, "CreateBatch")
	})

	t.Run("rejects line with both debit and credit", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockEntryRepository)
		service := NewEntryService(entryRepo, accountRepo)

		cash := newTestAccount(t, "1001", ledger.AccountTypeAsset)
		revenue := newTestAccount(t, "4001", ledger.AccountTypeRevenue)
		accountRepo.On("FindByID", mock.Anything, cash.ID).Return(cash, nil)
		accountRepo.On("FindByID", mock.Anything, revenue.ID).Return(revenue, nil)

		responses, err := service.CreateAdjustment(context.Background(), CreateAdjustmentRequest{
			EntryDate: entryDate,
			Lines: []AdjustmentLineRequest{
				{AccountID: cash.ID, Description: "Bad line", DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.NewFromInt(100)},
				{AccountID: revenue.ID, Description: "Credit", CreditAmount: decimal.NewFromInt(100)},
			},
		})

		assert.Nil(t, responses)
		assert.Error(t, err)
		entryRepo.AssertNotCalled(t, "CreateBatch")
	})

	t.Run("rejects inactive account", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		entryRepo := new(MockEntryRepository)
		service := NewEntryService(entryRepo, accountRepo)

		cash := newTestAccount(t, "1001", ledger.AccountTypeAsset)
		cash.IsActive = false
		accountRepo.On("FindByID", mock.Anything, cash.ID).Return(cash, nil)

		responses, err := service.CreateAdjustment(context.Background(), CreateAdjustmentRequest{
			EntryDate: entryDate,
			Lines: []AdjustmentLineRequest{
				{AccountID: cash.ID, Description: "Debit", DebitAmount: decimal.NewFromInt(100)},
				{AccountID: cash.ID, Description: "Credit", CreditAmount: decimal.NewFromInt(100)},
			},
		})

		assert.Nil(t, responses)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}
