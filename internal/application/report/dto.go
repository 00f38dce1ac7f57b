package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/report"
)

// PartnerLedgerFilter narrows the partner ledger query
type PartnerLedgerFilter struct {
	PartnerID *uuid.UUID `form:"partner_id"`
	StartDate time.Time  `form:"start_date" time_format:"2006-01-02"`
	EndDate   time.Time  `form:"end_date" time_format:"2006-01-02"`
}

// PeriodFilter bounds a statement period. A zero start means from the
// beginning of the books; a zero end means up to now.
type PeriodFilter struct {
	StartDate time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02"`
}

// AsOfFilter selects the reporting date for point-in-time statements
type AsOfFilter struct {
	AsOf time.Time `form:"as_of" time_format:"2006-01-02"`
}

// StockStatementFilter narrows the stock statement query
type StockStatementFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	StartDate time.Time  `form:"start_date" time_format:"2006-01-02"`
	EndDate   time.Time  `form:"end_date" time_format:"2006-01-02"`
}

func (f PartnerLedgerFilter) toDomain() report.Filter {
	return report.Filter{
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		PartnerID: f.PartnerID,
	}
}

func (f StockStatementFilter) toDomain() report.Filter {
	return report.Filter{
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		ProductID: f.ProductID,
	}
}
