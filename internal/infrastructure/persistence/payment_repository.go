package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements billing.PaymentRepository using GORM.
// Settlement runs inside repository transactions: the parent document row
// is locked with SELECT ... FOR UPDATE before its balance is recomputed,
// so two concurrent payments against the same document serialize and the
// second sees the first one's paid amount.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment, scoped to the family
func (r *GormPaymentRepository) FindByID(ctx context.Context, family billing.PaymentFamily, id uuid.UUID) (*billing.Payment, error) {
	var payment billing.Payment
	if err := r.db.WithContext(ctx).
		Where("family = ? AND id = ?", family, id).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindAll finds payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, family billing.PaymentFamily, filter shared.Filter) ([]billing.Payment, error) {
	var payments []billing.Payment
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.Payment{}).Where("family = ?", family),
		filter,
	)

	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, family billing.PaymentFamily, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&billing.Payment{}).Where("family = ?", family),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByDocument counts payments settling the given document
func (r *GormPaymentRepository) CountByDocument(ctx context.Context, family billing.PaymentFamily, documentID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Payment{}).
		Where("family = ? AND document_id = ?", family, documentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateWithSettlement inserts the payment and updates the parent
// document's paid amount and status in one transaction. The payment
// number allocation shares the retry loop with document creation.
func (r *GormPaymentRepository) CreateWithSettlement(ctx context.Context, payment *billing.Payment) (*billing.FinancialDocument, error) {
	docFamily := payment.Family.DocumentFamily()

	var settled *billing.FinancialDocument
	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			doc, err := r.lockDocument(tx, docFamily, payment.DocumentID)
			if err != nil {
				return err
			}

			if err := doc.ApplyPayment(payment.Amount); err != nil {
				return err
			}

			number, err := scanNextNumber(tx, &billing.Payment{}, "payment_number", "family = ?", payment.Family, payment.Family.NumberPrefix())
			if err != nil {
				return err
			}
			payment.PaymentNumber = number

			if err := tx.Create(payment).Error; err != nil {
				return err
			}

			if err := r.updateSettledDocument(tx, doc); err != nil {
				return err
			}

			settled = doc
			return nil
		})
		if err == nil {
			return settled, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("payment number allocation failed after %d attempts: %w", maxNumberAttempts, lastErr)
}

// DeleteWithSettlement removes the payment and reverses its amount from
// the parent document in one transaction
func (r *GormPaymentRepository) DeleteWithSettlement(ctx context.Context, family billing.PaymentFamily, id uuid.UUID) (*billing.FinancialDocument, error) {
	var settled *billing.FinancialDocument
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment billing.Payment
		if err := tx.Where("family = ? AND id = ?", family, id).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		doc, err := r.lockDocument(tx, family.DocumentFamily(), payment.DocumentID)
		if err != nil {
			return err
		}

		if err := doc.ReversePayment(payment.Amount); err != nil {
			return err
		}

		if err := tx.Delete(&billing.Payment{}, "id = ?", payment.ID).Error; err != nil {
			return err
		}

		if err := r.updateSettledDocument(tx, doc); err != nil {
			return err
		}

		settled = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

// lockDocument loads the parent document under SELECT ... FOR UPDATE.
// Lines are loaded after the lock is taken; settlement only touches the
// header but callers get the full aggregate back.
func (r *GormPaymentRepository) lockDocument(tx *gorm.DB, family billing.DocumentFamily, id uuid.UUID) (*billing.FinancialDocument, error) {
	var doc billing.FinancialDocument
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("family = ? AND id = ?", family, id).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := tx.Where("document_id = ?", doc.ID).Find(&doc.Lines).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *GormPaymentRepository) updateSettledDocument(tx *gorm.DB, doc *billing.FinancialDocument) error {
	currentVersion := doc.Version
	doc.Version++
	doc.UpdatedAt = time.Now()

	result := tx.Model(&billing.FinancialDocument{}).
		Where("id = ? AND version = ?", doc.ID, currentVersion).
		Updates(map[string]interface{}{
			"paid_amount": doc.PaidAmount,
			"status":      doc.Status,
			"version":     doc.Version,
			"updated_at":  doc.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	// The row is held FOR UPDATE, so a zero row count means the document
	// vanished, not a version race.
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PaymentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormPaymentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("payment_number ILIKE ? OR reference ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "document_id":
			query = query.Where("document_id = ?", value)
		case "party_id":
			query = query.Where("party_id = ?", value)
		case "method":
			query = query.Where("method = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("payment_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("payment_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
