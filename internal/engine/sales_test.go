package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
)

func TestSalesResolver_MatchingDemand(t *testing.T) {
	r := NewSalesResolver(DefaultParams())

	markets := []domain.MarketDecision{
		{Market: "Chile", UnitPrice: decimal.NewFromInt(10000), ProjectedUnits: decimal.NewFromInt(6000)},
	}

	// No advertising and no research leaves demand at the projection.
	out := r.Resolve(1, markets, decimal.Zero, decimal.Zero, decimal.NewFromInt(10000))

	if !out.TotalUnits.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("expected 6000 units sold, got %s", out.TotalUnits)
	}
	if !out.TotalRevenue.Equal(decimal.NewFromInt(60_000_000)) {
		t.Errorf("expected revenue 60000000, got %s", out.TotalRevenue)
	}
	if out.Stockout {
		t.Error("unexpected stockout")
	}
}

func TestSalesResolver_StockoutAllocatesProportionally(t *testing.T) {
	r := NewSalesResolver(DefaultParams())

	markets := []domain.MarketDecision{
		{Market: "Argentina", UnitPrice: decimal.NewFromInt(9000), ProjectedUnits: decimal.NewFromInt(3000)},
		{Market: "Brasil", UnitPrice: decimal.NewFromInt(9500), ProjectedUnits: decimal.NewFromInt(2000)},
	}

	out := r.Resolve(2, markets, decimal.Zero, decimal.Zero, decimal.NewFromInt(1000))

	if !out.Stockout {
		t.Fatal("expected stockout")
	}
	if !out.TotalUnits.LessThanOrEqual(decimal.NewFromInt(1000)) {
		t.Errorf("oversold: %s units realized with 1000 available", out.TotalUnits)
	}
	if !out.Results[0].RealizedUnits.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected 600 units for Argentina, got %s", out.Results[0].RealizedUnits)
	}
	if !out.Results[1].RealizedUnits.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected 400 units for Brasil, got %s", out.Results[1].RealizedUnits)
	}
	if !out.UnfilledUnits.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("expected 4000 unfilled units, got %s", out.UnfilledUnits)
	}
}

func TestSalesResolver_AdvertisingSaturates(t *testing.T) {
	r := NewSalesResolver(DefaultParams())

	markets := []domain.MarketDecision{
		{Market: "Mexico", UnitPrice: decimal.NewFromInt(8000), ProjectedUnits: decimal.NewFromInt(10000)},
	}
	available := decimal.NewFromInt(1_000_000)

	base := r.Resolve(1, markets, decimal.Zero, decimal.Zero, available)
	spend := r.Resolve(1, markets, decimal.NewFromInt(5_000_000), decimal.Zero, available)
	double := r.Resolve(1, markets, decimal.NewFromInt(10_000_000), decimal.Zero, available)

	if !spend.TotalUnits.GreaterThan(base.TotalUnits) {
		t.Error("advertising should lift demand")
	}

	firstLift := spend.TotalUnits.Sub(base.TotalUnits)
	secondLift := double.TotalUnits.Sub(spend.TotalUnits)
	if !secondLift.LessThan(firstLift) {
		t.Errorf("diminishing returns violated: first lift %s, second lift %s", firstLift, secondLift)
	}
}

func TestSalesResolver_ResearchMovesTowardTrueDemand(t *testing.T) {
	r := NewSalesResolver(DefaultParams())

	markets := []domain.MarketDecision{
		{Market: "Colombia", UnitPrice: decimal.NewFromInt(7000), ProjectedUnits: decimal.NewFromInt(5000)},
	}
	available := decimal.NewFromInt(1_000_000)

	none := r.Resolve(3, markets, decimal.Zero, decimal.Zero, available)
	heavy := r.Resolve(3, markets, decimal.Zero, decimal.NewFromInt(50_000_000), available)

	// Without research the demand is exactly the projection.
	if !none.TotalUnits.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected projection 5000 with no research, got %s", none.TotalUnits)
	}

	// Heavy research pulls demand toward true demand, bounded by the
	// cyclical amplitude of ten percent.
	diff := heavy.TotalUnits.Sub(decimal.NewFromInt(5000)).Abs()
	if diff.GreaterThan(decimal.NewFromInt(500)) {
		t.Errorf("research moved demand by %s, beyond the cyclical bound", diff)
	}
}

func TestSalesResolver_Deterministic(t *testing.T) {
	r := NewSalesResolver(DefaultParams())

	markets := []domain.MarketDecision{
		{Market: "Chile", UnitPrice: decimal.NewFromInt(10000), ProjectedUnits: decimal.NewFromInt(4000)},
		{Market: "Brasil", UnitPrice: decimal.NewFromInt(9500), ProjectedUnits: decimal.NewFromInt(2500)},
	}

	a := r.Resolve(7, markets, decimal.NewFromInt(3_000_000), decimal.NewFromInt(1_000_000), decimal.NewFromInt(5000))
	b := r.Resolve(7, markets, decimal.NewFromInt(3_000_000), decimal.NewFromInt(1_000_000), decimal.NewFromInt(5000))

	for i := range a.Results {
		if !a.Results[i].RealizedUnits.Equal(b.Results[i].RealizedUnits) {
			t.Errorf("market %s not deterministic: %s vs %s",
				a.Results[i].Market, a.Results[i].RealizedUnits, b.Results[i].RealizedUnits)
		}
	}
}
