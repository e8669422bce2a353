package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecisionSet_Validate(t *testing.T) {
	valid := func() DecisionSet {
		return DecisionSet{
			RawMaterialPrice: decimal.NewFromInt(5000),
			RawMaterialQty:   decimal.NewFromInt(1000),
			ProductionQty:    decimal.NewFromInt(1000),
			Markets: []MarketDecision{
				{Market: "Chile", UnitPrice: decimal.NewFromInt(10000), ProjectedUnits: decimal.NewFromInt(500)},
			},
			Loans: []LoanDecision{
				{Class: LoanShortTerm, Borrow: decimal.NewFromInt(1_000_000)},
			},
			PayoutRatio: decimal.NewFromFloat(0.5),
		}
	}

	tests := []struct {
		name      string
		mutate    func(*DecisionSet)
		wantField string
	}{
		{"valid set", func(d *DecisionSet) {}, ""},
		{"empty set", func(d *DecisionSet) { *d = DecisionSet{} }, ""},
		{"negative purchase price", func(d *DecisionSet) {
			d.RawMaterialPrice = decimal.NewFromInt(-1)
		}, "raw_material_price"},
		{"negative production", func(d *DecisionSet) {
			d.ProductionQty = decimal.NewFromInt(-500)
		}, "production_qty"},
		{"negative advertising", func(d *DecisionSet) {
			d.AdvertisingBudget = decimal.NewFromInt(-1)
		}, "advertising_budget"},
		{"payout above one", func(d *DecisionSet) {
			d.PayoutRatio = decimal.NewFromFloat(1.01)
		}, "payout_ratio"},
		{"negative payout", func(d *DecisionSet) {
			d.PayoutRatio = decimal.NewFromFloat(-0.1)
		}, "payout_ratio"},
		{"unnamed market", func(d *DecisionSet) {
			d.Markets[0].Market = ""
		}, "markets[0].market"},
		{"duplicate market", func(d *DecisionSet) {
			d.Markets = append(d.Markets, MarketDecision{
				Market:    "Chile",
				UnitPrice: decimal.NewFromInt(9000),
			})
		}, "markets[1].market"},
		{"negative unit price", func(d *DecisionSet) {
			d.Markets[0].UnitPrice = decimal.NewFromInt(-1)
		}, "markets[0].unit_price"},
		{"unknown loan class", func(d *DecisionSet) {
			d.Loans[0].Class = "revolving"
		}, "loans[0].class"},
		{"negative repayment", func(d *DecisionSet) {
			d.Loans[0].Repay = decimal.NewFromInt(-1)
		}, "loans[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(&d)

			err := d.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var invalid *InvalidDecisionError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidDecisionError, got %v", err)
			}
			if invalid.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, invalid.Field)
			}
		})
	}
}
