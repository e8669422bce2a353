package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
)

func testMacro() domain.MacroSnapshot {
	return domain.MacroSnapshot{
		UFStart:       decimal.NewFromInt(36000),
		UFEnd:         decimal.NewFromInt(36000),
		UTM:           decimal.NewFromInt(68000),
		VATRate:       decimal.NewFromFloat(0.19),
		IncomeTaxRate: decimal.NewFromFloat(0.27),
	}
}

func TestTaxCalculator_NetVATPayable(t *testing.T) {
	calc := NewTaxCalculator()

	out := calc.Compute(TaxInput{
		Revenue:              decimal.NewFromInt(60_000_000),
		RawMaterialPurchases: decimal.NewFromInt(50_000_000),
	}, testMacro())

	if !out.VATDebit.Equal(decimal.NewFromInt(11_400_000)) {
		t.Errorf("VAT debit: got %s", out.VATDebit)
	}
	if !out.VATCreditMaterials.Equal(decimal.NewFromInt(9_500_000)) {
		t.Errorf("VAT credit: got %s", out.VATCreditMaterials)
	}
	if !out.NetVAT.Equal(decimal.NewFromInt(1_900_000)) {
		t.Errorf("net VAT: got %s", out.NetVAT)
	}
}

func TestTaxCalculator_VATCreditCarriedForward(t *testing.T) {
	calc := NewTaxCalculator()

	// Credits exceed debits: the net position is negative and becomes a
	// carryforward asset, never a cash outflow.
	out := calc.Compute(TaxInput{
		Revenue:              decimal.NewFromInt(10_000_000),
		RawMaterialPurchases: decimal.NewFromInt(30_000_000),
		VATCreditCarried:     decimal.NewFromInt(-500_000),
	}, testMacro())

	want := decimal.NewFromInt(1_900_000 - 5_700_000 - 500_000)
	if !out.NetVAT.Equal(want) {
		t.Errorf("net VAT: expected %s, got %s", want, out.NetVAT)
	}
}

func TestTaxCalculator_FlatIncomeTax(t *testing.T) {
	calc := NewTaxCalculator()

	tests := []struct {
		name    string
		taxable int64
		want    int64
	}{
		{"positive income", 18_000_000, 4_860_000},
		{"loss pays nothing", -5_000_000, 0},
		{"zero income", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := calc.Compute(TaxInput{TaxableIncome: decimal.NewFromInt(tt.taxable)}, testMacro())
			if !out.IncomeTax.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("income tax: expected %d, got %s", tt.want, out.IncomeTax)
			}
		})
	}
}

func TestTaxCalculator_ProgressiveBrackets(t *testing.T) {
	calc := NewTaxCalculator()

	macro := testMacro()
	macro.UTM = decimal.NewFromInt(1000)
	macro.Brackets = []domain.TaxBracket{
		{UpperUTM: decimal.NewFromInt(100), Rate: decimal.Zero},
		{UpperUTM: decimal.NewFromInt(500), Rate: decimal.NewFromFloat(0.10)},
		{Rate: decimal.NewFromFloat(0.25)},
	}

	// Income of 800 UTM: 100 exempt, 400 at 10%, 300 at 25%.
	out := calc.Compute(TaxInput{TaxableIncome: decimal.NewFromInt(800_000)}, macro)

	want := decimal.NewFromInt(40_000 + 75_000)
	if !out.IncomeTax.Equal(want) {
		t.Errorf("progressive tax: expected %s, got %s", want, out.IncomeTax)
	}
}

func TestTaxCalculator_ProgressiveBelowFirstBracket(t *testing.T) {
	calc := NewTaxCalculator()

	macro := testMacro()
	macro.UTM = decimal.NewFromInt(1000)
	macro.Brackets = []domain.TaxBracket{
		{UpperUTM: decimal.NewFromInt(100), Rate: decimal.Zero},
		{Rate: decimal.NewFromFloat(0.25)},
	}

	out := calc.Compute(TaxInput{TaxableIncome: decimal.NewFromInt(50_000)}, macro)
	if !out.IncomeTax.IsZero() {
		t.Errorf("expected zero tax below the exempt bracket, got %s", out.IncomeTax)
	}
}
