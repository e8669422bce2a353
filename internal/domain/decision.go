package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LoanClass distinguishes short- and long-term debt.
type LoanClass string

const (
	LoanShortTerm LoanClass = "short_term"
	LoanLongTerm  LoanClass = "long_term"
)

// MarketDecision is the per-market slice of a decision set: the sale price
// and the units the player projects to sell in that market.
type MarketDecision struct {
	Market         string          `json:"market"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ProjectedUnits decimal.Decimal `json:"projected_units"`
}

// LoanDecision requests new borrowing and/or repayment on one loan class.
type LoanDecision struct {
	Class  LoanClass       `json:"class"`
	Borrow decimal.Decimal `json:"borrow"`
	Repay  decimal.Decimal `json:"repay"`
}

// DecisionSet is the validated managerial decision record for one period.
// It is owned by the intake boundary and read-only to the engine.
type DecisionSet struct {
	RawMaterialPrice  decimal.Decimal  `json:"raw_material_price"`
	RawMaterialQty    decimal.Decimal  `json:"raw_material_qty"`
	ProductionQty     decimal.Decimal  `json:"production_qty"`
	Markets           []MarketDecision `json:"markets"`
	AdvertisingBudget decimal.Decimal  `json:"advertising_budget"`
	ResearchBudget    decimal.Decimal  `json:"research_budget"`
	Loans             []LoanDecision   `json:"loans"`
	PayoutRatio       decimal.Decimal  `json:"payout_ratio"`
}

// Validate fails fast with an InvalidDecisionError when a field violates its
// declared domain. The intake is expected to have range-checked already;
// this is the engine's last line of defense before touching the ledger.
func (d *DecisionSet) Validate() error {
	one := decimal.NewFromInt(1)

	checks := []struct {
		field string
		value decimal.Decimal
	}{
		{"raw_material_price", d.RawMaterialPrice},
		{"raw_material_qty", d.RawMaterialQty},
		{"production_qty", d.ProductionQty},
		{"advertising_budget", d.AdvertisingBudget},
		{"research_budget", d.ResearchBudget},
	}
	for _, c := range checks {
		if c.value.IsNegative() {
			return &InvalidDecisionError{Field: c.field, Reason: "must not be negative"}
		}
	}

	if d.PayoutRatio.IsNegative() || d.PayoutRatio.GreaterThan(one) {
		return &InvalidDecisionError{Field: "payout_ratio", Reason: "must be in [0, 1]"}
	}

	seen := make(map[string]bool, len(d.Markets))
	for i, m := range d.Markets {
		if m.Market == "" {
			return &InvalidDecisionError{
				Field:  fmt.Sprintf("markets[%d].market", i),
				Reason: "must not be empty",
			}
		}
		if seen[m.Market] {
			return &InvalidDecisionError{
				Field:  fmt.Sprintf("markets[%d].market", i),
				Reason: "duplicate market " + m.Market,
			}
		}
		seen[m.Market] = true

		if m.UnitPrice.IsNegative() {
			return &InvalidDecisionError{
				Field:  fmt.Sprintf("markets[%d].unit_price", i),
				Reason: "must not be negative",
			}
		}
		if m.ProjectedUnits.IsNegative() {
			return &InvalidDecisionError{
				Field:  fmt.Sprintf("markets[%d].projected_units", i),
				Reason: "must not be negative",
			}
		}
	}

	for i, loan := range d.Loans {
		if loan.Class != LoanShortTerm && loan.Class != LoanLongTerm {
			return &InvalidDecisionError{
				Field:  fmt.Sprintf("loans[%d].class", i),
				Reason: "unknown loan class " + string(loan.Class),
			}
		}
		if loan.Borrow.IsNegative() || loan.Repay.IsNegative() {
			return &InvalidDecisionError{
				Field:  fmt.Sprintf("loans[%d]", i),
				Reason: "borrow and repay must not be negative",
			}
		}
	}

	return nil
}
