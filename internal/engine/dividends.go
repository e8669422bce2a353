package engine

import (
	"github.com/shopspring/decimal"
)

// DividendDistributor accrues the period's dividend from the prior period's
// net income and the chosen payout ratio.
type DividendDistributor struct{}

// NewDividendDistributor creates a DividendDistributor.
func NewDividendDistributor() DividendDistributor {
	return DividendDistributor{}
}

// Accrue returns max(0, prior net income) * payout ratio, rounded to the
// peso. A loss period accrues nothing.
func (d DividendDistributor) Accrue(priorNetIncome, payoutRatio decimal.Decimal) decimal.Decimal {
	return roundPeso(decimal.Max(decimal.Zero, priorNetIncome).Mul(payoutRatio))
}
