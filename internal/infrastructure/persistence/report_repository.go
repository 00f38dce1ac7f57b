package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// balanceTolerance is the rounding slack allowed between the two sides of
// the balance sheet, one paisa.
var balanceTolerance = decimal.NewFromFloat(0.01)

// GormReportRepository implements report.Repository with raw SQL
// aggregates over the posted ledger and documents. All queries are
// read-only.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// PartnerLedger returns posting lines with running balances. The balance
// accumulates debit minus credit per partner, in entry date then posting
// time order, so a receivable grows with invoices and shrinks with
// payments.
func (r *GormReportRepository) PartnerLedger(ctx context.Context, filter report.Filter) ([]report.PartnerLedgerRow, error) {
	query := `
		SELECT
			le.partner_id,
			c.name AS partner_name,
			le.entry_date,
			a.code AS account_code,
			a.name AS account_name,
			le.reference_type,
			le.description,
			le.debit_amount,
			le.credit_amount,
			SUM(le.debit_amount - le.credit_amount) OVER (
				PARTITION BY le.partner_id
				ORDER BY le.entry_date, le.created_at
				ROWS UNBOUNDED PRECEDING
			) AS running_balance,
			le.created_at AS posted_at
		FROM ledger_entries le
		JOIN contacts c ON c.id = le.partner_id
		JOIN accounts a ON a.id = le.account_id
		WHERE le.partner_id IS NOT NULL`
	args := []interface{}{}

	if filter.PartnerID != nil {
		query += " AND le.partner_id = ?"
		args = append(args, *filter.PartnerID)
	}
	if !filter.StartDate.IsZero() {
		query += " AND le.entry_date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND le.entry_date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY c.name, le.entry_date, le.created_at"

	var rows []report.PartnerLedgerRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ProfitAndLoss aggregates revenue as credit minus debit and expenses as
// debit minus credit over the period. Accounts with no net movement are
// omitted.
func (r *GormReportRepository) ProfitAndLoss(ctx context.Context, periodStart, periodEnd time.Time) (*report.ProfitAndLoss, error) {
	revenueLines, err := r.accountLines(ctx,
		"credit_amount - debit_amount", "revenue", periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	expenseLines, err := r.accountLines(ctx,
		"debit_amount - credit_amount", "expense", periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	totalRevenue := sumLines(revenueLines)
	totalExpenses := sumLines(expenseLines)

	return &report.ProfitAndLoss{
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		RevenueLines:  revenueLines,
		ExpenseLines:  expenseLines,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetProfit:     totalRevenue.Sub(totalExpenses),
	}, nil
}

// BalanceSheet aggregates asset balances as debit minus credit and
// liability and equity balances as credit minus debit, over all entries
// up to the as-of date. Undistributed profit is folded into equity as a
// synthetic current period earnings line so a balanced ledger produces a
// balanced sheet.
func (r *GormReportRepository) BalanceSheet(ctx context.Context, asOf time.Time) (*report.BalanceSheet, error) {
	assetLines, err := r.accountLines(ctx,
		"debit_amount - credit_amount", "asset", time.Time{}, asOf)
	if err != nil {
		return nil, err
	}
	liabilityLines, err := r.accountLines(ctx,
		"credit_amount - debit_amount", "liability", time.Time{}, asOf)
	if err != nil {
		return nil, err
	}
	equityLines, err := r.accountLines(ctx,
		"credit_amount - debit_amount", "equity", time.Time{}, asOf)
	if err != nil {
		return nil, err
	}

	earnings, err := r.retainedEarnings(ctx, asOf)
	if err != nil {
		return nil, err
	}
	if !earnings.IsZero() {
		equityLines = append(equityLines, report.AccountLine{
			AccountID:   uuid.Nil,
			AccountCode: "",
			AccountName: "Current Period Earnings",
			Amount:      earnings,
		})
	}

	totalAssets := sumLines(assetLines)
	totalLiabilities := sumLines(liabilityLines)
	totalEquity := sumLines(equityLines)

	diff := totalAssets.Sub(totalLiabilities.Add(totalEquity)).Abs()

	return &report.BalanceSheet{
		AsOf:             asOf,
		AssetLines:       assetLines,
		LiabilityLines:   liabilityLines,
		EquityLines:      equityLines,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
		IsBalanced:       diff.LessThanOrEqual(balanceTolerance),
	}, nil
}

// StockStatement summarizes quantities and values per product from
// invoice and vendor bill lines. Cancelled documents are excluded.
func (r *GormReportRepository) StockStatement(ctx context.Context, filter report.Filter) ([]report.StockStatementRow, error) {
	query := `
		SELECT
			p.id AS product_id,
			p.name AS product_name,
			p.sku,
			p.unit,
			COALESCE(SUM(CASE WHEN d.family = 'vendor_bill' THEN dl.quantity ELSE 0 END), 0) AS quantity_purchased,
			COALESCE(SUM(CASE WHEN d.family = 'invoice' THEN dl.quantity ELSE 0 END), 0) AS quantity_sold,
			COALESCE(SUM(CASE WHEN d.family = 'vendor_bill' THEN dl.line_total ELSE 0 END), 0) AS purchase_value,
			COALESCE(SUM(CASE WHEN d.family = 'invoice' THEN dl.line_total ELSE 0 END), 0) AS sales_value
		FROM document_lines dl
		JOIN financial_documents d ON d.id = dl.document_id
		JOIN products p ON p.id = dl.product_id
		WHERE d.family IN ('invoice', 'vendor_bill')
		AND d.status <> 'cancelled'`
	args := []interface{}{}

	if filter.ProductID != nil {
		query += " AND p.id = ?"
		args = append(args, *filter.ProductID)
	}
	if !filter.StartDate.IsZero() {
		query += " AND d.document_date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND d.document_date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " GROUP BY p.id, p.name, p.sku, p.unit ORDER BY p.name"

	var rows []report.StockStatementRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].QuantityOnHand = rows[i].QuantityPurchased.Sub(rows[i].QuantitySold)
	}
	return rows, nil
}

// Dashboard returns the landing-page summary. Monthly figures cover the
// current calendar month up to now.
func (r *GormReportRepository) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	dashboard := &report.Dashboard{}

	type outstanding struct {
		Amount decimal.Decimal
		Count  int64
	}
	var receivable, payable outstanding

	outstandingQuery := `
		SELECT
			COALESCE(SUM(total_amount - paid_amount), 0) AS amount,
			COUNT(*) AS count
		FROM financial_documents
		WHERE family = ? AND status IN ('open', 'partially_paid')`

	if err := r.db.WithContext(ctx).Raw(outstandingQuery, "invoice").Scan(&receivable).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Raw(outstandingQuery, "vendor_bill").Scan(&payable).Error; err != nil {
		return nil, err
	}
	dashboard.TotalReceivable = receivable.Amount
	dashboard.OpenInvoices = receivable.Count
	dashboard.TotalPayable = payable.Amount
	dashboard.OpenVendorBills = payable.Count

	cashQuery := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE family = ? AND payment_date >= ?`

	if err := r.db.WithContext(ctx).Raw(cashQuery, "payment", monthStart).Scan(&dashboard.CashReceived).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Raw(cashQuery, "bill_payment", monthStart).Scan(&dashboard.CashPaid).Error; err != nil {
		return nil, err
	}

	monthlyQuery := `
		SELECT COALESCE(SUM(%s), 0)
		FROM ledger_entries le
		JOIN accounts a ON a.id = le.account_id
		WHERE a.type = ? AND le.entry_date >= ?`

	if err := r.db.WithContext(ctx).
		Raw(fmt.Sprintf(monthlyQuery, "le.credit_amount - le.debit_amount"), "revenue", monthStart).
		Scan(&dashboard.RevenueThisMonth).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Raw(fmt.Sprintf(monthlyQuery, "le.debit_amount - le.credit_amount"), "expense", monthStart).
		Scan(&dashboard.ExpenseThisMonth).Error; err != nil {
		return nil, err
	}

	return dashboard, nil
}

// accountLines aggregates one account type's movement with the given
// balance expression, e.g. "credit_amount - debit_amount" for revenue.
// A zero start means all entries up to the end date.
func (r *GormReportRepository) accountLines(ctx context.Context, movementExpr, accountType string, start, end time.Time) ([]report.AccountLine, error) {
	query := `
		SELECT
			a.id AS account_id,
			a.code AS account_code,
			a.name AS account_name,
			SUM(` + movementExpr + `) AS amount
		FROM ledger_entries le
		JOIN accounts a ON a.id = le.account_id
		WHERE a.type = ?`
	args := []interface{}{accountType}

	if !start.IsZero() {
		query += " AND le.entry_date >= ?"
		args = append(args, start)
	}
	if !end.IsZero() {
		query += " AND le.entry_date <= ?"
		args = append(args, end)
	}

	query += `
		GROUP BY a.id, a.code, a.name
		HAVING SUM(` + movementExpr + `) <> 0
		ORDER BY a.code`

	var lines []report.AccountLine
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// retainedEarnings sums net profit over revenue and expense accounts up
// to the as-of date. Credit minus debit over both types is revenue minus
// expenses, since expenses carry debit balances.
func (r *GormReportRepository) retainedEarnings(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(le.credit_amount - le.debit_amount), 0)
		FROM ledger_entries le
		JOIN accounts a ON a.id = le.account_id
		WHERE a.type IN ('revenue', 'expense') AND le.entry_date <= ?`

	var earnings decimal.Decimal
	if err := r.db.WithContext(ctx).Raw(query, asOf).Scan(&earnings).Error; err != nil {
		return decimal.Zero, err
	}
	return earnings, nil
}

func sumLines(lines []report.AccountLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].Amount)
	}
	return total
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
