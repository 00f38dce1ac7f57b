package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shivaccounts/backend/internal/domain/report"
	"github.com/shivaccounts/backend/internal/infrastructure/cache"
)

// ReportService serves read-only reports over the posted ledger. Results
// are cached read-through; writes elsewhere call InvalidateCache so the
// next read recomputes from the books.
type ReportService struct {
	repo  report.Repository
	cache cache.ReportCache
}

// NewReportService creates a new ReportService
func NewReportService(repo report.Repository, reportCache cache.ReportCache) *ReportService {
	return &ReportService{
		repo:  repo,
		cache: reportCache,
	}
}

// PartnerLedger returns posting lines with running balances per partner
func (s *ReportService) PartnerLedger(ctx context.Context, filter PartnerLedgerFilter) ([]report.PartnerLedgerRow, error) {
	key := partnerLedgerKey(filter)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		if rows, ok := cached.([]report.PartnerLedgerRow); ok {
			return rows, nil
		}
	}

	rows, err := s.repo.PartnerLedger(ctx, filter.toDomain())
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, rows, 0)
	return rows, nil
}

// ProfitAndLoss returns the income statement for the period. An empty
// period defaults to the current financial year to date.
func (s *ReportService) ProfitAndLoss(ctx context.Context, filter PeriodFilter) (*report.ProfitAndLoss, error) {
	start, end := normalizePeriod(filter.StartDate, filter.EndDate)

	key := fmt.Sprintf("pnl:%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		if pnl, ok := cached.(*report.ProfitAndLoss); ok {
			return pnl, nil
		}
	}

	pnl, err := s.repo.ProfitAndLoss(ctx, start, end)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, pnl, 0)
	return pnl, nil
}

// BalanceSheet returns the statement of financial position as of a date.
// A zero date defaults to today.
func (s *ReportService) BalanceSheet(ctx context.Context, filter AsOfFilter) (*report.BalanceSheet, error) {
	asOf := filter.AsOf
	if asOf.IsZero() {
		asOf = endOfDay(time.Now())
	} else {
		asOf = endOfDay(asOf)
	}

	key := "balance-sheet:" + asOf.Format("2006-01-02")
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		if sheet, ok := cached.(*report.BalanceSheet); ok {
			return sheet, nil
		}
	}

	sheet, err := s.repo.BalanceSheet(ctx, asOf)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, sheet, 0)
	return sheet, nil
}

// StockStatement summarizes product movement over the period
func (s *ReportService) StockStatement(ctx context.Context, filter StockStatementFilter) ([]report.StockStatementRow, error) {
	key := stockStatementKey(filter)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		if rows, ok := cached.([]report.StockStatementRow); ok {
			return rows, nil
		}
	}

	rows, err := s.repo.StockStatement(ctx, filter.toDomain())
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, rows, 0)
	return rows, nil
}

// Dashboard returns the landing-page summary
func (s *ReportService) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	const key = "dashboard"
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		if dashboard, ok := cached.(*report.Dashboard); ok {
			return dashboard, nil
		}
	}

	dashboard, err := s.repo.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, dashboard, 0)
	return dashboard, nil
}

// InvalidateCache drops all cached reports. Called after any write that
// changes document balances or ledger postings.
func (s *ReportService) InvalidateCache(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}

func partnerLedgerKey(filter PartnerLedgerFilter) string {
	partner := "all"
	if filter.PartnerID != nil {
		partner = filter.PartnerID.String()
	}
	return fmt.Sprintf("partner-ledger:%s:%s:%s",
		partner, filter.StartDate.Format("2006-01-02"), filter.EndDate.Format("2006-01-02"))
}

func stockStatementKey(filter StockStatementFilter) string {
	product := "all"
	if filter.ProductID != nil {
		product = filter.ProductID.String()
	}
	return fmt.Sprintf("stock-statement:%s:%s:%s",
		product, filter.StartDate.Format("2006-01-02"), filter.EndDate.Format("2006-01-02"))
}

// normalizePeriod fills unbounded period ends. The financial year is
// April to March, per Indian accounting convention.
func normalizePeriod(start, end time.Time) (time.Time, time.Time) {
	now := time.Now()
	if end.IsZero() {
		end = now
	}
	if start.IsZero() {
		year := end.Year()
		if end.Month() < time.April {
			year--
		}
		start = time.Date(year, time.April, 1, 0, 0, 0, 0, end.Location())
	}
	return start, endOfDay(end)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}
