package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/partner"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockContactRepository creates a GormContactRepository with a mocked SQL connection
func newMockContactRepository(t *testing.T) (*GormContactRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormContactRepository(gormDB), mock, mockDB
}

func TestGormContactRepository_FindByID(t *testing.T) {
	t.Run("finds existing contact", func(t *testing.T) {
		repo, mock, mockDB := newMockContactRepository(t)
		defer mockDB.Close()

		contactID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "type", "email", "is_active", "version"}).
			AddRow(contactID, "Acme Traders", "customer", "accounts@acme.example", true, 1)

		mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(contactID, 1).
			WillReturnRows(rows)

		contact, err := repo.FindByID(context.Background(), contactID)

		assert.NoError(t, err)
		assert.NotNil(t, contact)
		assert.Equal(t, contactID, contact.ID)
		assert.Equal(t, "Acme Traders", contact.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing contact", func(t *testing.T) {
		repo, mock, mockDB := newMockContactRepository(t)
		defer mockDB.Close()

		contactID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(contactID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		contact, err := repo.FindByID(context.Background(), contactID)

		assert.Nil(t, contact)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormContactRepository_ExistsByEmail(t *testing.T) {
	t.Run("returns true when email exists", func(t *testing.T) {
		repo, mock, mockDB := newMockContactRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE email = \$1`).
			WithArgs("accounts@acme.example").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByEmail(context.Background(), "accounts@acme.example")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when email does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockContactRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE email = \$1`).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByEmail(context.Background(), "nobody@example.com")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormContactRepository_Update(t *testing.T) {
	t.Run("updates contact and bumps version", func(t *testing.T) {
		repo, mock, mockDB := newMockContactRepository(t)
		defer mockDB.Close()

		contact, err := partner.NewContact("Acme Traders", partner.ContactTypeCustomer, "accounts@acme.example", "", "", "", "", "", "")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "contacts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Update(context.Background(), contact)

		assert.NoError(t, err)
		assert.Equal(t, 2, contact.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockContactRepository(t)
		defer mockDB.Close()

		contact, err := partner.NewContact("Acme Traders", partner.ContactTypeCustomer, "accounts@acme.example", "", "", "", "", "", "")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "contacts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), contact)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.Equal(t, 1, contact.Version) // restored on failure
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormContactRepository_Delete(t *testing.T) {
	t.Run("deletes existing contact", func(t *testing.T) {
		repo, mock, mockDB := newMockContactRepository(t)
		defer mockDB.Close()

		contactID := uuid.New()

		mock.ExpectExec(`DELETE FROM "contacts" WHERE id = \$1`).
			WithArgs(contactID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), contactID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing contact", func(t *testing.T) {
		repo, mock, mockDB := newMockContactRepository(t)
		defer mockDB.Close()

		contactID := uuid.New()

		mock.ExpectExec(`DELETE FROM "contacts" WHERE id = \$1`).
			WithArgs(contactID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), contactID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormContactRepository_Count(t *testing.T) {
	t.Run("counts contacts", func(t *testing.T) {
		repo, mock, mockDB := newMockContactRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.Count(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies type filter", func(t *testing.T) {
		repo, mock, mockDB := newMockContactRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE type = \$1`).
			WithArgs("vendor").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.Count(context.Background(), shared.Filter{
			Filters: map[string]interface{}{"type": "vendor"},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormContactRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements ContactRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockContactRepository(t)
		defer mockDB.Close()

		var _ partner.ContactRepository = repo
	})
}
