package engine

import (
	"hash/fnv"

	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
)

// SalesResolver turns prices, advertising spend, market-research spend and
// per-market projections into realized unit sales. Demand is deterministic:
// the market factor is a bounded cyclical function of the period number and
// the market name, so replaying a period yields identical results.
type SalesResolver struct {
	params Params
}

// NewSalesResolver creates a SalesResolver.
func NewSalesResolver(params Params) SalesResolver {
	return SalesResolver{params: params}
}

// SalesOutcome is the resolved demand for one period.
type SalesOutcome struct {
	Results       []domain.MarketResult
	TotalUnits    decimal.Decimal
	TotalRevenue  decimal.Decimal
	UnfilledUnits decimal.Decimal
	Stockout      bool
}

// Resolve computes realized sales per market given the available supply
// (opening finished goods plus feasible production). Realized units never
// exceed supply: when demand is higher, stock is allocated across markets in
// proportion to each market's demand share and the shortfall is reported as
// a stockout, not an error.
func (r SalesResolver) Resolve(
	period int,
	markets []domain.MarketDecision,
	adBudget, researchBudget, availableUnits decimal.Decimal,
) SalesOutcome {
	one := decimal.NewFromInt(1)

	totalProjected := decimal.Zero
	for _, m := range markets {
		totalProjected = totalProjected.Add(m.ProjectedUnits)
	}

	// Research narrows the gap between the projection and true demand; it
	// does not create demand. Zero research leaves demand at the projection.
	accuracy := decimal.Zero
	if researchBudget.IsPositive() {
		accuracy = researchBudget.Div(researchBudget.Add(r.params.ResearchHalfGain))
	}

	demands := make([]decimal.Decimal, len(markets))
	totalDemand := decimal.Zero

	for i, m := range markets {
		trueDemand := m.ProjectedUnits.Mul(one.Add(r.cycleFactor(period, m.Market)))
		demand := m.ProjectedUnits.Add(accuracy.Mul(trueDemand.Sub(m.ProjectedUnits)))

		// Advertising budget is split across markets by projected share,
		// with a saturating lift: doubling spend never doubles demand.
		if adBudget.IsPositive() && totalProjected.IsPositive() {
			spend := adBudget.Mul(m.ProjectedUnits).Div(totalProjected)
			lift := one.Add(r.params.AdLiftMax.Mul(spend).Div(spend.Add(r.params.AdHalfSaturation)))
			demand = demand.Mul(lift)
		}

		demand = demand.Round(0)
		if demand.IsNegative() {
			demand = decimal.Zero
		}

		demands[i] = demand
		totalDemand = totalDemand.Add(demand)
	}

	out := SalesOutcome{Results: make([]domain.MarketResult, len(markets))}
	out.Stockout = totalDemand.GreaterThan(availableUnits)

	for i, m := range markets {
		realized := demands[i]
		if out.Stockout && totalDemand.IsPositive() {
			realized = availableUnits.Mul(demands[i]).Div(totalDemand).Floor()
		}

		revenue := roundPeso(realized.Mul(m.UnitPrice))
		unfilled := demands[i].Sub(realized)

		out.Results[i] = domain.MarketResult{
			Market:        m.Market,
			DemandUnits:   demands[i],
			RealizedUnits: realized,
			UnfilledUnits: unfilled,
			Revenue:       revenue,
		}
		out.TotalUnits = out.TotalUnits.Add(realized)
		out.TotalRevenue = out.TotalRevenue.Add(revenue)
		out.UnfilledUnits = out.UnfilledUnits.Add(unfilled)
	}

	return out
}

// cycleFactor returns a deterministic factor in [-CycleAmplitude,
// +CycleAmplitude] representing conditions in one market for one period.
func (r SalesResolver) cycleFactor(period int, market string) decimal.Decimal {
	h := fnv.New32a()
	h.Write([]byte(market))

	phase := (int64(h.Sum32()%9) + int64(period)) % 9
	// phase 0..8 maps to -1, -0.75, ... , +1 in quarter steps.
	step := decimal.NewFromInt(phase - 4).Div(decimal.NewFromInt(4))

	return r.params.CycleAmplitude.Mul(step)
}
