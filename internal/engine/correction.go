package engine

import (
	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
)

// CorrectionEngine restates non-monetary balance-sheet items for the
// period's UF movement. Monetary items (cash, receivables, payables, loan
// principals) are never touched; that is the defining rule of the method.
type CorrectionEngine struct{}

// NewCorrectionEngine creates a CorrectionEngine.
func NewCorrectionEngine() CorrectionEngine {
	return CorrectionEngine{}
}

// CorrectionResult holds the restatement delta per non-monetary item plus
// the net gain/loss posted to the income statement. Restating an asset
// credits the result, restating a liability/equity item debits it; the net
// is the single price-level correction line.
type CorrectionResult struct {
	RawMaterial   decimal.Decimal
	WorkInProcess decimal.Decimal
	FinishedGoods decimal.Decimal
	Land          decimal.Decimal
	Plant         decimal.Decimal
	AdminBuilding decimal.Decimal
	Equipment     decimal.Decimal
	AccumDep      decimal.Decimal // contra-asset: restating it reduces net assets

	PaidInCapital    decimal.Decimal
	RetainedEarnings decimal.Decimal
	PriorNetIncome   decimal.Decimal

	Net decimal.Decimal // positive is a correction gain, negative a loss
}

// Restate computes restatement deltas from the opening non-monetary
// balances and the UF variation factor f. Each delta equals the opening
// value times f, rounded to the peso.
func (e CorrectionEngine) Restate(opening domain.CompanyLedger, f decimal.Decimal) CorrectionResult {
	delta := func(v decimal.Decimal) decimal.Decimal {
		return roundPeso(v.Mul(f))
	}

	r := CorrectionResult{
		RawMaterial:   delta(opening.RawMaterialInventory),
		WorkInProcess: delta(opening.WorkInProcess),
		FinishedGoods: delta(opening.FinishedGoods),
		Land:          delta(opening.Land),
		Plant:         delta(opening.Plant),
		AdminBuilding: delta(opening.AdminBuilding),
		Equipment:     delta(opening.Equipment),
		AccumDep:      delta(opening.AccumulatedDepreciation),

		PaidInCapital:    delta(opening.PaidInCapital),
		RetainedEarnings: delta(opening.RetainedEarnings),
		PriorNetIncome:   delta(opening.PriorNetIncome),
	}

	assetSide := r.RawMaterial.
		Add(r.WorkInProcess).
		Add(r.FinishedGoods).
		Add(r.Land).
		Add(r.Plant).
		Add(r.AdminBuilding).
		Add(r.Equipment).
		Sub(r.AccumDep)

	equitySide := r.PaidInCapital.
		Add(r.RetainedEarnings).
		Add(r.PriorNetIncome)

	r.Net = assetSide.Sub(equitySide)

	return r
}
