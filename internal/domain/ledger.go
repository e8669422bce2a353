package domain

import (
	"github.com/shopspring/decimal"
)

// CompanyLedger is the full financial position of a company at a period
// boundary. The engine receives an opening ledger, never mutates it, and
// produces a new closing ledger that becomes the next period's opening.
//
// Monetary accounts are never restated by the monetary correction engine;
// non-monetary accounts are. AccumulatedDepreciation is a contra-asset
// stored positive. VATPayable is signed: a negative balance is a VAT credit
// carried forward.
type CompanyLedger struct {
	Period int `json:"period"`

	// Monetary accounts.
	Cash               decimal.Decimal `json:"cash"`
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	AccountsPayable    decimal.Decimal `json:"accounts_payable"`
	ShortTermLoan      decimal.Decimal `json:"short_term_loan"`
	LongTermLoan       decimal.Decimal `json:"long_term_loan"`
	VATPayable         decimal.Decimal `json:"vat_payable"`
	IncomeTaxPayable   decimal.Decimal `json:"income_tax_payable"`
	DividendsPayable   decimal.Decimal `json:"dividends_payable"`
	CreditNotesPayable decimal.Decimal `json:"credit_notes_payable"`

	// Non-monetary accounts, subject to price-level correction.
	RawMaterialInventory    decimal.Decimal `json:"raw_material_inventory"`
	WorkInProcess           decimal.Decimal `json:"work_in_process"`
	FinishedGoods           decimal.Decimal `json:"finished_goods"`
	Land                    decimal.Decimal `json:"land"`
	Plant                   decimal.Decimal `json:"plant"`
	AdminBuilding           decimal.Decimal `json:"admin_building"`
	Equipment               decimal.Decimal `json:"equipment"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	PaidInCapital           decimal.Decimal `json:"paid_in_capital"`
	RetainedEarnings        decimal.Decimal `json:"retained_earnings"`
	PriorNetIncome          decimal.Decimal `json:"prior_net_income"`

	// Physical stock backing the inventory valuations.
	RawMaterialQty   decimal.Decimal `json:"raw_material_qty"`
	FinishedGoodsQty decimal.Decimal `json:"finished_goods_qty"`
}

// TotalAssets sums all asset accounts net of accumulated depreciation.
// A negative VATPayable is a VAT credit and counts as an asset here.
func (l CompanyLedger) TotalAssets() decimal.Decimal {
	total := l.Cash.
		Add(l.AccountsReceivable).
		Add(l.RawMaterialInventory).
		Add(l.WorkInProcess).
		Add(l.FinishedGoods).
		Add(l.Land).
		Add(l.Plant).
		Add(l.AdminBuilding).
		Add(l.Equipment).
		Sub(l.AccumulatedDepreciation)

	if l.VATPayable.IsNegative() {
		total = total.Add(l.VATPayable.Neg())
	}

	return total
}

// TotalLiabilities sums all liability accounts.
func (l CompanyLedger) TotalLiabilities() decimal.Decimal {
	total := l.AccountsPayable.
		Add(l.ShortTermLoan).
		Add(l.LongTermLoan).
		Add(l.IncomeTaxPayable).
		Add(l.DividendsPayable).
		Add(l.CreditNotesPayable)

	if l.VATPayable.IsPositive() {
		total = total.Add(l.VATPayable)
	}

	return total
}

// TotalEquity sums the equity accounts.
func (l CompanyLedger) TotalEquity() decimal.Decimal {
	return l.PaidInCapital.
		Add(l.RetainedEarnings).
		Add(l.PriorNetIncome)
}

// ImbalanceGap returns assets - (liabilities + equity).
func (l CompanyLedger) ImbalanceGap() decimal.Decimal {
	return l.TotalAssets().Sub(l.TotalLiabilities()).Sub(l.TotalEquity())
}

// Balanced reports whether the accounting identity holds within tolerance.
func (l CompanyLedger) Balanced(tolerance decimal.Decimal) bool {
	return l.ImbalanceGap().Abs().LessThanOrEqual(tolerance)
}

// RawMaterialAvgCost returns the weighted-average unit cost of raw material
// on hand, or zero when the stock is empty.
func (l CompanyLedger) RawMaterialAvgCost() decimal.Decimal {
	if l.RawMaterialQty.IsZero() {
		return decimal.Zero
	}

	return l.RawMaterialInventory.Div(l.RawMaterialQty)
}

// FinishedGoodsAvgCost returns the weighted-average unit cost of finished
// goods on hand, or zero when the stock is empty.
func (l CompanyLedger) FinishedGoodsAvgCost() decimal.Decimal {
	if l.FinishedGoodsQty.IsZero() {
		return decimal.Zero
	}

	return l.FinishedGoods.Div(l.FinishedGoodsQty)
}
