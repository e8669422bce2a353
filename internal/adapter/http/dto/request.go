package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
	"github.com/ronesego-ui/captop/internal/usecase"
)

// CreateCompanyRequest registers a company with its seeded opening ledger.
type CreateCompanyRequest struct {
	Name    string               `json:"name"`
	Opening domain.CompanyLedger `json:"opening"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCompanyRequest) ToUseCaseInput() usecase.CreateCompanyInput {
	return usecase.CreateCompanyInput{
		Name:    r.Name,
		Opening: r.Opening,
	}
}

// AdvancePeriodRequest carries the decision set for the next period.
type AdvancePeriodRequest struct {
	RawMaterialPrice  decimal.Decimal `json:"raw_material_price"`
	RawMaterialQty    decimal.Decimal `json:"raw_material_qty"`
	ProductionQty     decimal.Decimal `json:"production_qty"`
	Markets           []MarketItem    `json:"markets"`
	AdvertisingBudget decimal.Decimal `json:"advertising_budget"`
	ResearchBudget    decimal.Decimal `json:"research_budget"`
	Loans             []LoanItem      `json:"loans"`
	PayoutRatio       decimal.Decimal `json:"payout_ratio"`
}

// MarketItem is one market's price and projection.
type MarketItem struct {
	Market         string          `json:"market"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ProjectedUnits decimal.Decimal `json:"projected_units"`
}

// LoanItem requests borrowing and/or repayment on one loan class.
type LoanItem struct {
	Class  string          `json:"class"`
	Borrow decimal.Decimal `json:"borrow"`
	Repay  decimal.Decimal `json:"repay"`
}

// ToDecisionSet converts to the domain decision set.
func (r *AdvancePeriodRequest) ToDecisionSet() domain.DecisionSet {
	markets := make([]domain.MarketDecision, len(r.Markets))
	for i, m := range r.Markets {
		markets[i] = domain.MarketDecision{
			Market:         m.Market,
			UnitPrice:      m.UnitPrice,
			ProjectedUnits: m.ProjectedUnits,
		}
	}

	loans := make([]domain.LoanDecision, len(r.Loans))
	for i, l := range r.Loans {
		loans[i] = domain.LoanDecision{
			Class:  domain.LoanClass(l.Class),
			Borrow: l.Borrow,
			Repay:  l.Repay,
		}
	}

	return domain.DecisionSet{
		RawMaterialPrice:  r.RawMaterialPrice,
		RawMaterialQty:    r.RawMaterialQty,
		ProductionQty:     r.ProductionQty,
		Markets:           markets,
		AdvertisingBudget: r.AdvertisingBudget,
		ResearchBudget:    r.ResearchBudget,
		Loans:             loans,
		PayoutRatio:       r.PayoutRatio,
	}
}
