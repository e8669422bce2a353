package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCompanyLedger_TotalsAndIdentity(t *testing.T) {
	l := CompanyLedger{
		Cash:                    decimal.NewFromInt(50_000_000),
		AccountsReceivable:      decimal.NewFromInt(10_000_000),
		RawMaterialInventory:    decimal.NewFromInt(5_000_000),
		FinishedGoods:           decimal.NewFromInt(15_000_000),
		Plant:                   decimal.NewFromInt(40_000_000),
		AccumulatedDepreciation: decimal.NewFromInt(8_000_000),
		AccountsPayable:         decimal.NewFromInt(12_000_000),
		LongTermLoan:            decimal.NewFromInt(30_000_000),
		PaidInCapital:           decimal.NewFromInt(60_000_000),
		RetainedEarnings:        decimal.NewFromInt(10_000_000),
	}

	if !l.TotalAssets().Equal(decimal.NewFromInt(112_000_000)) {
		t.Errorf("total assets: got %s", l.TotalAssets())
	}
	if !l.TotalLiabilities().Equal(decimal.NewFromInt(42_000_000)) {
		t.Errorf("total liabilities: got %s", l.TotalLiabilities())
	}
	if !l.TotalEquity().Equal(decimal.NewFromInt(70_000_000)) {
		t.Errorf("total equity: got %s", l.TotalEquity())
	}
	if !l.Balanced(decimal.Zero) {
		t.Errorf("identity should hold exactly, gap %s", l.ImbalanceGap())
	}
}

func TestCompanyLedger_SignedVATPosition(t *testing.T) {
	tests := []struct {
		name            string
		vat             int64
		wantAssets      int64
		wantLiabilities int64
	}{
		{"payable is a liability", 2_000_000, 0, 2_000_000},
		{"credit carried is an asset", -1_500_000, 1_500_000, 0},
		{"zero appears nowhere", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := CompanyLedger{VATPayable: decimal.NewFromInt(tt.vat)}
			if !l.TotalAssets().Equal(decimal.NewFromInt(tt.wantAssets)) {
				t.Errorf("assets: expected %d, got %s", tt.wantAssets, l.TotalAssets())
			}
			if !l.TotalLiabilities().Equal(decimal.NewFromInt(tt.wantLiabilities)) {
				t.Errorf("liabilities: expected %d, got %s", tt.wantLiabilities, l.TotalLiabilities())
			}
		})
	}
}

func TestCompanyLedger_BalancedTolerance(t *testing.T) {
	l := CompanyLedger{
		Cash:          decimal.NewFromInt(1_000_001),
		PaidInCapital: decimal.NewFromInt(1_000_000),
	}

	if !l.Balanced(decimal.NewFromInt(1)) {
		t.Error("one peso of rounding drift must pass")
	}
	if l.Balanced(decimal.Zero) {
		t.Error("zero tolerance must reject a one-peso gap")
	}
}

func TestCompanyLedger_AverageCosts(t *testing.T) {
	l := CompanyLedger{
		RawMaterialInventory: decimal.NewFromInt(12_000_000),
		RawMaterialQty:       decimal.NewFromInt(3000),
	}

	if !l.RawMaterialAvgCost().Equal(decimal.NewFromInt(4000)) {
		t.Errorf("raw material average: got %s", l.RawMaterialAvgCost())
	}

	// Empty stock never divides by zero.
	if !(CompanyLedger{}).FinishedGoodsAvgCost().IsZero() {
		t.Error("empty finished-goods stock should cost zero")
	}
	if !(CompanyLedger{}).RawMaterialAvgCost().IsZero() {
		t.Error("empty raw-material stock should cost zero")
	}
}
