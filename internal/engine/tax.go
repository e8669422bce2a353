package engine

import (
	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
)

// TaxCalculator computes the period's VAT position and income-tax expense
// from UTM-denominated thresholds and statutory rates.
type TaxCalculator struct{}

// NewTaxCalculator creates a TaxCalculator.
func NewTaxCalculator() TaxCalculator {
	return TaxCalculator{}
}

// TaxInput is what the calculator may read: amounts produced by earlier
// pipeline stages only.
type TaxInput struct {
	Revenue              decimal.Decimal
	RawMaterialPurchases decimal.Decimal
	DeductibleServices   decimal.Decimal // advertising and market research
	TaxableIncome        decimal.Decimal // pre-financing accounting income
	VATCreditCarried     decimal.Decimal // non-positive carryforward from the opening ledger
}

// TaxOutcome is the computed tax position. The VAT credit is broken out by
// source so the payable postings stay rounding-exact.
type TaxOutcome struct {
	VATDebit           decimal.Decimal
	VATCreditMaterials decimal.Decimal
	VATCreditServices  decimal.Decimal
	NetVAT             decimal.Decimal // signed: negative is a credit carried forward
	IncomeTax          decimal.Decimal
}

// VATCredit is the total input VAT for the period.
func (o TaxOutcome) VATCredit() decimal.Decimal {
	return o.VATCreditMaterials.Add(o.VATCreditServices)
}

// Compute derives the VAT net position and income-tax expense. A negative
// net VAT is a credit asset carried forward, not a cash outflow. Income tax
// applies the progressive UTM bracket table when configured, otherwise the
// flat statutory rate, always on max(0, taxable income).
func (t TaxCalculator) Compute(in TaxInput, macro domain.MacroSnapshot) TaxOutcome {
	out := TaxOutcome{
		VATDebit:           roundPeso(in.Revenue.Mul(macro.VATRate)),
		VATCreditMaterials: roundPeso(in.RawMaterialPurchases.Mul(macro.VATRate)),
		VATCreditServices:  roundPeso(in.DeductibleServices.Mul(macro.VATRate)),
	}
	out.NetVAT = out.VATDebit.Sub(out.VATCredit()).Add(in.VATCreditCarried)

	taxable := decimal.Max(decimal.Zero, in.TaxableIncome)
	if len(macro.Brackets) > 0 {
		out.IncomeTax = t.progressiveTax(taxable, macro)
	} else {
		out.IncomeTax = roundPeso(taxable.Mul(macro.IncomeTaxRate))
	}

	return out
}

// progressiveTax applies bracket rates to income expressed in UTM units and
// converts the result back to pesos. Brackets are expected in ascending
// order; an UpperUTM of zero marks the open-ended top bracket.
func (t TaxCalculator) progressiveTax(taxable decimal.Decimal, macro domain.MacroSnapshot) decimal.Decimal {
	incomeUTM := taxable.Div(macro.UTM)

	taxUTM := decimal.Zero
	lower := decimal.Zero

	for _, b := range macro.Brackets {
		upper := b.UpperUTM
		if upper.IsZero() || upper.GreaterThan(incomeUTM) {
			upper = incomeUTM
		}
		if upper.LessThanOrEqual(lower) {
			continue
		}

		taxUTM = taxUTM.Add(upper.Sub(lower).Mul(b.Rate))
		lower = upper

		if lower.GreaterThanOrEqual(incomeUTM) {
			break
		}
	}

	return roundPeso(taxUTM.Mul(macro.UTM))
}
