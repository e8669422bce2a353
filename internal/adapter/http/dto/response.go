package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CompanyResponse represents a company in API responses.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyFromDomain converts a domain company to a response.
func CompanyFromDomain(c *domain.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

// CompaniesFromDomain converts domain companies to responses.
func CompaniesFromDomain(companies []*domain.Company) []*CompanyResponse {
	result := make([]*CompanyResponse, len(companies))
	for i, c := range companies {
		result[i] = CompanyFromDomain(c)
	}
	return result
}

// StatementBundleResponse represents a closed period in API responses.
type StatementBundleResponse struct {
	Period          int                `json:"period"`
	RunID           string             `json:"run_id"`
	IncomeStatement domain.Statement   `json:"income_statement"`
	BalanceSheet    domain.Statement   `json:"balance_sheet"`
	CashFlow        domain.Statement   `json:"cash_flow"`
	MarketResults   []MarketResultItem `json:"market_results"`
	NetIncome       decimal.Decimal    `json:"net_income"`
	EndingCash      decimal.Decimal    `json:"ending_cash"`
	EndingEquity    decimal.Decimal    `json:"ending_equity"`
	Diagnostics     []DiagnosticItem   `json:"diagnostics,omitempty"`
}

// MarketResultItem reports demand resolution for one market.
type MarketResultItem struct {
	Market        string          `json:"market"`
	DemandUnits   decimal.Decimal `json:"demand_units"`
	RealizedUnits decimal.Decimal `json:"realized_units"`
	UnfilledUnits decimal.Decimal `json:"unfilled_units"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// DiagnosticItem is a non-fatal condition raised while closing the period.
type DiagnosticItem struct {
	Code     string          `json:"code"`
	Severity string          `json:"severity"`
	Message  string          `json:"message"`
	Amount   decimal.Decimal `json:"amount"`
}

// BundleFromDomain converts a domain statement bundle to a response.
func BundleFromDomain(b domain.StatementBundle) *StatementBundleResponse {
	markets := make([]MarketResultItem, len(b.MarketResults))
	for i, m := range b.MarketResults {
		markets[i] = MarketResultItem{
			Market:        m.Market,
			DemandUnits:   m.DemandUnits,
			RealizedUnits: m.RealizedUnits,
			UnfilledUnits: m.UnfilledUnits,
			Revenue:       m.Revenue,
		}
	}

	diags := make([]DiagnosticItem, len(b.Diagnostics))
	for i, d := range b.Diagnostics {
		diags[i] = DiagnosticItem{
			Code:     d.Code,
			Severity: d.Severity,
			Message:  d.Message,
			Amount:   d.Amount,
		}
	}

	return &StatementBundleResponse{
		Period:          b.Period,
		RunID:           b.RunID,
		IncomeStatement: b.IncomeStatement,
		BalanceSheet:    b.BalanceSheet,
		CashFlow:        b.CashFlow,
		MarketResults:   markets,
		NetIncome:       b.NetIncome,
		EndingCash:      b.EndingCash,
		EndingEquity:    b.EndingEquity,
		Diagnostics:     diags,
	}
}
