package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartnerLedgerRow is one posting line in the partner ledger with its
// running balance. Rows are ordered by partner name, then entry date,
// then posting time, and the balance accumulates debit minus credit
// within that order.
type PartnerLedgerRow struct {
	PartnerID      uuid.UUID       `json:"partner_id"`
	PartnerName    string          `json:"partner_name"`
	EntryDate      time.Time       `json:"entry_date"`
	AccountCode    string          `json:"account_code"`
	AccountName    string          `json:"account_name"`
	ReferenceType  string          `json:"reference_type"`
	Description    string          `json:"description"`
	DebitAmount    decimal.Decimal `json:"debit_amount"`
	CreditAmount   decimal.Decimal `json:"credit_amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
	PostedAt       time.Time       `json:"posted_at"`
}

// AccountLine is one account's aggregate for a statement section
type AccountLine struct {
	AccountID   uuid.UUID       `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitAndLoss is the income statement for a period. Revenue lines
// aggregate credit minus debit, expense lines debit minus credit, and
// accounts with no movement are omitted.
type ProfitAndLoss struct {
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	RevenueLines  []AccountLine   `json:"revenue_lines"`
	ExpenseLines  []AccountLine   `json:"expense_lines"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

// BalanceSheet is the statement of financial position as of a date.
// IsBalanced reports whether assets equal liabilities plus equity within
// a one paisa rounding tolerance.
type BalanceSheet struct {
	AsOf             time.Time       `json:"as_of"`
	AssetLines       []AccountLine   `json:"asset_lines"`
	LiabilityLines   []AccountLine   `json:"liability_lines"`
	EquityLines      []AccountLine   `json:"equity_lines"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	IsBalanced       bool            `json:"is_balanced"`
}

// StockStatementRow summarizes one product's movement: quantities sold
// on invoices and purchased on vendor bills, with the resulting net
// position and valuation.
type StockStatementRow struct {
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	SKU               string          `json:"sku,omitempty"`
	Unit              string          `json:"unit,omitempty"`
	QuantityPurchased decimal.Decimal `json:"quantity_purchased"`
	QuantitySold      decimal.Decimal `json:"quantity_sold"`
	QuantityOnHand    decimal.Decimal `json:"quantity_on_hand"`
	PurchaseValue     decimal.Decimal `json:"purchase_value"`
	SalesValue        decimal.Decimal `json:"sales_value"`
}

// Dashboard is the landing-page summary of the books
type Dashboard struct {
	TotalReceivable  decimal.Decimal `json:"total_receivable"`  // Outstanding on open and partially paid invoices
	TotalPayable     decimal.Decimal `json:"total_payable"`     // Outstanding on open and partially paid vendor bills
	CashReceived     decimal.Decimal `json:"cash_received"`     // Customer payments in the period
	CashPaid         decimal.Decimal `json:"cash_paid"`         // Vendor payments in the period
	OpenInvoices     int64           `json:"open_invoices"`
	OpenVendorBills  int64           `json:"open_vendor_bills"`
	RevenueThisMonth decimal.Decimal `json:"revenue_this_month"`
	ExpenseThisMonth decimal.Decimal `json:"expense_this_month"`
}

// Filter narrows report queries. Zero dates mean an unbounded period.
type Filter struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	PartnerID *uuid.UUID `json:"partner_id,omitempty"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
}
