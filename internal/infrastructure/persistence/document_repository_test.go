package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDocumentRepository creates a GormDocumentRepository with a mocked SQL connection
func newMockDocumentRepository(t *testing.T) (*GormDocumentRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormDocumentRepository(gormDB), mock, mockDB
}

func TestGormDocumentRepository_FindByID(t *testing.T) {
	t.Run("returns ErrNotFound for missing document", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		docID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "financial_documents" WHERE family = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(billing.FamilyInvoice, docID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		doc, err := repo.FindByID(context.Background(), billing.FamilyInvoice, docID)

		assert.Nil(t, doc)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentRepository_NextNumber(t *testing.T) {
	t.Run("returns first number for empty family", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT COALESCE\(MAX\(CAST\(SUBSTRING\(document_number FROM '\[0-9\]\+\$'\) AS INTEGER\)\), 0\) FROM "financial_documents" WHERE family = \$1 AND document_number ~ \$2`).
			WithArgs(billing.FamilyInvoice, "^INV-[0-9]+$").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

		number, err := repo.NextNumber(context.Background(), billing.FamilyInvoice)

		assert.NoError(t, err)
		assert.Equal(t, "INV-000001", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments past the highest existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT COALESCE\(MAX\(CAST\(SUBSTRING\(document_number FROM '\[0-9\]\+\$'\) AS INTEGER\)\), 0\) FROM "financial_documents" WHERE family = \$1 AND document_number ~ \$2`).
			WithArgs(billing.FamilyVendorBill, "^BILL-[0-9]+$").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(41))

		number, err := repo.NextNumber(context.Background(), billing.FamilyVendorBill)

		assert.NoError(t, err)
		assert.Equal(t, "BILL-000042", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("uses the family prefix", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT COALESCE\(MAX`).
			WithArgs(billing.FamilySaleOrder, "^SO-[0-9]+$").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7))

		number, err := repo.NextNumber(context.Background(), billing.FamilySaleOrder)

		assert.NoError(t, err)
		assert.Equal(t, "SO-000008", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentRepository_Create(t *testing.T) {
	t.Run("rolls back the document when a line insert fails", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		doc, err := billing.NewFinancialDocument(billing.FamilyInvoice, uuid.New(), "Acme Traders", time.Now(), nil, "")
		require.NoError(t, err)
		require.NoError(t, doc.AddLine(nil, "Widget", decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.Zero))

		insertFailure := errors.New("line insert failed")

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COALESCE\(MAX`).
			WithArgs(billing.FamilyInvoice, "^INV-[0-9]+$").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(6))
		mock.ExpectExec(`INSERT INTO "financial_documents"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "document_lines"`).
			WillReturnError(insertFailure)
		mock.ExpectRollback()

		err = repo.Create(context.Background(), doc)

		assert.ErrorIs(t, err, insertFailure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentRepository_Update(t *testing.T) {
	t.Run("returns conflict when version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		doc, err := billing.NewFinancialDocument(billing.FamilyInvoice, uuid.New(), "Acme Traders", time.Now(), nil, "")
		require.NoError(t, err)

		require.NoError(t, doc.AddLine(nil, "Widget", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "financial_documents" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.Update(context.Background(), doc)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.Equal(t, 1, doc.Version) // restored on failure
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentRepository_Delete(t *testing.T) {
	t.Run("returns ErrNotFound for missing document", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		docID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "document_lines" WHERE document_id = \$1`).
			WithArgs(docID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "financial_documents" WHERE family = \$1 AND id = \$2`).
			WithArgs(billing.FamilyPurchaseOrder, docID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), billing.FamilyPurchaseOrder, docID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes document and lines", func(t *testing.T) {
		repo, mock, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		docID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "document_lines" WHERE document_id = \$1`).
			WithArgs(docID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "financial_documents" WHERE family = \$1 AND id = \$2`).
			WithArgs(billing.FamilyInvoice, docID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), billing.FamilyInvoice, docID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements DocumentRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockDocumentRepository(t)
		defer mockDB.Close()

		var _ billing.DocumentRepository = repo
	})
}
