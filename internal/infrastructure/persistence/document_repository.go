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
)

// maxNumberAttempts bounds the retry loop when two writers race for the
// same document number. The unique index on (family, document_number) is
// the arbiter; the loser re-scans and tries the next number.
const maxNumberAttempts = 5

// GormDocumentRepository implements billing.DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document with its lines, scoped to the family
func (r *GormDocumentRepository) FindByID(ctx context.Context, family billing.DocumentFamily, id uuid.UUID) (*billing.FinancialDocument, error) {
	var doc billing.FinancialDocument
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("family = ? AND id = ?", family, id).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindByNumber finds a document by its assigned number
func (r *GormDocumentRepository) FindByNumber(ctx context.Context, family billing.DocumentFamily, number string) (*billing.FinancialDocument, error) {
	var doc billing.FinancialDocument
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("family = ? AND document_number = ?", family, number).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindAll finds documents matching the filter
func (r *GormDocumentRepository) FindAll(ctx context.Context, family billing.DocumentFamily, filter shared.Filter) ([]billing.FinancialDocument, error) {
	var docs []billing.FinancialDocument
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.FinancialDocument{}).
			Preload("Lines").
			Where("family = ?", family),
		filter,
	)

	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Count counts documents matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, family billing.DocumentFamily, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&billing.FinancialDocument{}).Where("family = ?", family),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create assigns the next document number and inserts the document with
// its lines in one transaction. A concurrent writer can win the same
// number; the unique index rejects the insert and the whole transaction
// is retried with a fresh scan.
func (r *GormDocumentRepository) Create(ctx context.Context, document *billing.FinancialDocument) error {
	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			number, err := scanNextNumber(tx, &billing.FinancialDocument{}, "document_number", "family = ?", document.Family, document.Family.NumberPrefix())
			if err != nil {
				return err
			}
			document.DocumentNumber = number
			for i := range document.Lines {
				document.Lines[i].DocumentID = document.ID
			}
			return tx.Create(document).Error
		})
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("document number allocation failed after %d attempts: %w", maxNumberAttempts, lastErr)
}

// Update persists header and line changes with an optimistic lock on the
// aggregate version. The full line set is replaced.
func (r *GormDocumentRepository) Update(ctx context.Context, document *billing.FinancialDocument) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := document.Version
		document.Version++
		document.UpdatedAt = time.Now()

		result := tx.Model(&billing.FinancialDocument{}).
			Where("id = ? AND family = ? AND version = ?", document.ID, document.Family, currentVersion).
			Updates(map[string]interface{}{
				"party_id":      document.PartyID,
				"party_name":    document.PartyName,
				"document_date": document.DocumentDate,
				"due_date":      document.DueDate,
				"status":        document.Status,
				"subtotal":      document.Subtotal,
				"tax_amount":    document.TaxAmount,
				"total_amount":  document.TotalAmount,
				"paid_amount":   document.PaidAmount,
				"notes":         document.Notes,
				"version":       document.Version,
				"updated_at":    document.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			document.Version = currentVersion
			return shared.ErrConcurrencyConflict
		}

		// Replace the line set
		if err := tx.Where("document_id = ?", document.ID).Delete(&billing.DocumentLine{}).Error; err != nil {
			return err
		}
		for i := range document.Lines {
			document.Lines[i].DocumentID = document.ID
			if err := tx.Create(&document.Lines[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes the document and its lines
func (r *GormDocumentRepository) Delete(ctx context.Context, family billing.DocumentFamily, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&billing.DocumentLine{}).Error; err != nil {
			return err
		}

		result := tx.Where("family = ? AND id = ?", family, id).Delete(&billing.FinancialDocument{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextNumber reports the number the next created document would receive.
// It does not reserve the number; a concurrent Create can still claim it.
func (r *GormDocumentRepository) NextNumber(ctx context.Context, family billing.DocumentFamily) (string, error) {
	return scanNextNumber(r.db.WithContext(ctx), &billing.FinancialDocument{}, "document_number", "family = ?", family, family.NumberPrefix())
}

// scanNextNumber computes the next PREFIX-NNNNNN number for a numbered
// table by scanning the maximum numeric suffix among well-formed numbers.
// Rows whose number does not match the pattern are ignored.
func scanNextNumber(db *gorm.DB, model interface{}, column, familyCond string, familyValue interface{}, prefix string) (string, error) {
	pattern := fmt.Sprintf("^%s-[0-9]+$", prefix)
	selectExpr := fmt.Sprintf("COALESCE(MAX(CAST(SUBSTRING(%s FROM '[0-9]+$') AS INTEGER)), 0)", column)

	var maxSeq int64
	if err := db.Model(model).
		Where(familyCond, familyValue).
		Where(column+" ~ ?", pattern).
		Select(selectExpr).
		Scan(&maxSeq).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%06d", prefix, maxSeq+1), nil
}

func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormDocumentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("document_number ILIKE ? OR party_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "party_id":
			query = query.Where("party_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("document_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("document_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ billing.DocumentRepository = (*GormDocumentRepository)(nil)
