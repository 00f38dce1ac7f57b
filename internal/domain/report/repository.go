package report

import (
	"context"
	"time"
)

// Repository is the read-only query side over posted ledger entries and
// documents. Implementations compose SQL aggregates; nothing here mutates
// state.
type Repository interface {
	// PartnerLedger returns posting lines with running balances,
	// ordered by partner name, entry date and posting time
	PartnerLedger(ctx context.Context, filter Filter) ([]PartnerLedgerRow, error)
	// ProfitAndLoss aggregates revenue and expense accounts over the period
	ProfitAndLoss(ctx context.Context, periodStart, periodEnd time.Time) (*ProfitAndLoss, error)
	// BalanceSheet aggregates asset, liability and equity accounts as of a date
	BalanceSheet(ctx context.Context, asOf time.Time) (*BalanceSheet, error)
	// StockStatement summarizes product movement over the period
	StockStatement(ctx context.Context, filter Filter) ([]StockStatementRow, error)
	// Dashboard returns the landing-page summary
	Dashboard(ctx context.Context) (*Dashboard, error)
}
