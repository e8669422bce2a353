package engine

import (
	"github.com/shopspring/decimal"
)

// Params are the configured constants of the simulation: technical input
// ratios, unit conversion costs, demand-model coefficients, credit terms,
// loan rates and depreciation rates. One Params value is shared by all
// pipeline components and never mutated during a period.
type Params struct {
	// Production.
	InputRatio       decimal.Decimal // raw-material units consumed per finished unit
	UnitLaborCost    decimal.Decimal // direct labor per finished unit
	UnitOverheadCost decimal.Decimal // allocated overhead per finished unit

	// Demand model.
	AdLiftMax        decimal.Decimal // maximum multiplicative demand lift from advertising
	AdHalfSaturation decimal.Decimal // spend at which half of AdLiftMax is reached
	ResearchHalfGain decimal.Decimal // research spend at which projection accuracy reaches 0.5
	CycleAmplitude   decimal.Decimal // bound of the per-market cyclical factor

	// Credit terms.
	CollectionRate decimal.Decimal // fraction of billed sales collected within the period
	PaymentRate    decimal.Decimal // fraction of billed purchases paid within the period

	// Financing.
	ShortTermRate     decimal.Decimal // period interest rate on short-term debt
	LongTermRate      decimal.Decimal // period interest rate on long-term debt
	RolloverShortTerm bool            // auto-roll maturing short-term debt instead of forcing repayment

	// Depreciation (per period, straight line on restated values).
	PlantDepRate     decimal.Decimal
	BuildingDepRate  decimal.Decimal
	EquipmentDepRate decimal.Decimal
}

// DefaultParams returns the baseline game configuration.
func DefaultParams() Params {
	return Params{
		InputRatio:       decimal.NewFromInt(1),
		UnitLaborCost:    decimal.NewFromInt(1200),
		UnitOverheadCost: decimal.NewFromInt(800),

		AdLiftMax:        decimal.NewFromFloat(0.25),
		AdHalfSaturation: decimal.NewFromInt(5_000_000),
		ResearchHalfGain: decimal.NewFromInt(2_000_000),
		CycleAmplitude:   decimal.NewFromFloat(0.10),

		CollectionRate: decimal.NewFromFloat(0.6),
		PaymentRate:    decimal.NewFromFloat(0.5),

		ShortTermRate:     decimal.NewFromFloat(0.08),
		LongTermRate:      decimal.NewFromFloat(0.05),
		RolloverShortTerm: true,

		PlantDepRate:     decimal.NewFromFloat(0.05),
		BuildingDepRate:  decimal.NewFromFloat(0.025),
		EquipmentDepRate: decimal.NewFromFloat(0.10),
	}
}

// roundPeso rounds to the smallest currency unit. CLP has no decimals, so
// every posted amount is a whole peso.
func roundPeso(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
