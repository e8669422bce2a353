package domain

import (
	"github.com/shopspring/decimal"
)

// Statement maps line-item names to signed monetary amounts.
type Statement map[string]decimal.Decimal

// Income statement line items.
const (
	LineRevenue         = "revenue"
	LineCOGS            = "cost_of_goods_sold"
	LineGrossMargin     = "gross_margin"
	LineAdvertising     = "advertising_expense"
	LineMarketResearch  = "market_research_expense"
	LineDepreciation    = "depreciation_expense"
	LineOperatingIncome = "operating_income"
	LineInterestExpense = "interest_expense"
	LineCorrection      = "price_level_correction"
	LinePretaxIncome    = "pretax_income"
	LineIncomeTax       = "income_tax_expense"
	LineNetIncome       = "net_income"
)

// Cash flow statement line items.
const (
	LineCollections      = "collections_from_customers"
	LineSupplierPayments = "payments_to_suppliers"
	LineOperatingPaid    = "operating_expenses_paid"
	LineVATPaid          = "vat_paid"
	LineIncomeTaxPaid    = "income_tax_paid"
	LineOperatingCash    = "net_operating_cash"
	LineBorrowings       = "loan_proceeds"
	LineRepayments       = "loan_repayments"
	LineInterestPaid     = "interest_paid"
	LineDividendsPaid    = "dividends_paid"
	LineFinancingCash    = "net_financing_cash"
	LineNetCashChange    = "net_cash_change"
)

// Diagnostic severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Diagnostic codes for recoverable conditions surfaced in the bundle.
const (
	DiagStockout            = "stockout"
	DiagProductionShortfall = "production_shortfall"
	DiagMacroDataStale      = "macro_data_stale"
	DiagLoanRollover        = "loan_rollover"
)

// Diagnostic is a reportable, non-fatal condition raised while advancing a
// period: a stockout, a capped production run, stale macro data.
type Diagnostic struct {
	Code     string          `json:"code"`
	Severity string          `json:"severity"`
	Message  string          `json:"message"`
	Amount   decimal.Decimal `json:"amount"`
}

// MarketResult reports demand resolution for one market.
type MarketResult struct {
	Market        string          `json:"market"`
	DemandUnits   decimal.Decimal `json:"demand_units"`
	RealizedUnits decimal.Decimal `json:"realized_units"`
	UnfilledUnits decimal.Decimal `json:"unfilled_units"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// StatementBundle is the immutable output of one advanced period: the three
// statements, derived totals, per-market sales results and diagnostics.
type StatementBundle struct {
	Period          int             `json:"period"`
	RunID           string          `json:"run_id,omitempty"`
	IncomeStatement Statement       `json:"income_statement"`
	BalanceSheet    Statement       `json:"balance_sheet"`
	CashFlow        Statement       `json:"cash_flow"`
	MarketResults   []MarketResult  `json:"market_results"`
	NetIncome       decimal.Decimal `json:"net_income"`
	EndingCash      decimal.Decimal `json:"ending_cash"`
	EndingEquity    decimal.Decimal `json:"ending_equity"`
	Diagnostics     []Diagnostic    `json:"diagnostics,omitempty"`
}
