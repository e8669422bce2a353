package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBracket is one row of a progressive income-tax table denominated in
// UTM. UpperUTM zero means the bracket is open-ended.
type TaxBracket struct {
	UpperUTM decimal.Decimal `json:"upper_utm"`
	Rate     decimal.Decimal `json:"rate"`
}

// MacroSnapshot carries the external macroeconomic indices for one period.
// Stale marks values served from cache because the index feed was down.
type MacroSnapshot struct {
	UFStart       decimal.Decimal `json:"uf_start"`
	UFEnd         decimal.Decimal `json:"uf_end"`
	UTM           decimal.Decimal `json:"utm"`
	VATRate       decimal.Decimal `json:"vat_rate"`
	IncomeTaxRate decimal.Decimal `json:"income_tax_rate"`
	Brackets      []TaxBracket    `json:"brackets,omitempty"`
	Stale         bool            `json:"stale,omitempty"`
}

// UFVariation returns the period's inflation factor f = UF_end/UF_start - 1.
func (m MacroSnapshot) UFVariation() decimal.Decimal {
	if m.UFStart.IsZero() {
		return decimal.Zero
	}

	return m.UFEnd.Div(m.UFStart).Sub(decimal.NewFromInt(1))
}

// Validate checks that the snapshot is usable by the engine.
func (m MacroSnapshot) Validate() error {
	if !m.UFStart.IsPositive() || !m.UFEnd.IsPositive() {
		return &InvalidDecisionError{Field: "macro.uf", Reason: "UF values must be positive"}
	}
	if !m.UTM.IsPositive() {
		return &InvalidDecisionError{Field: "macro.utm", Reason: "UTM must be positive"}
	}
	if m.VATRate.IsNegative() || m.IncomeTaxRate.IsNegative() {
		return &InvalidDecisionError{Field: "macro.rates", Reason: "tax rates must not be negative"}
	}

	return nil
}
