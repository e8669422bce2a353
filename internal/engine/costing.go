package engine

import (
	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
)

// InventoryCosting values raw-material, work-in-process and finished-goods
// stock at weighted-average cost and derives COGS for realized sales.
type InventoryCosting struct {
	params Params
}

// NewInventoryCosting creates an InventoryCosting.
func NewInventoryCosting(params Params) InventoryCosting {
	return InventoryCosting{params: params}
}

// CostingOutcome carries the period's inventory movements.
type CostingOutcome struct {
	PurchaseCost decimal.Decimal // raw material bought this period

	ProducedUnits      decimal.Decimal
	ProductionShortage decimal.Decimal // requested minus feasible units
	ConversionCost     decimal.Decimal // labor plus overhead on produced units
	COGS               decimal.Decimal

	RawMaterialValue decimal.Decimal
	RawMaterialQty   decimal.Decimal
	FinishedValue    decimal.Decimal
	FinishedQty      decimal.Decimal
}

// FeasibleProduction caps the requested production quantity by the raw
// material that will be on hand after this period's purchase.
func (c InventoryCosting) FeasibleProduction(opening domain.CompanyLedger, dec domain.DecisionSet) decimal.Decimal {
	if !c.params.InputRatio.IsPositive() {
		return dec.ProductionQty
	}

	stock := opening.RawMaterialQty.Add(dec.RawMaterialQty)
	feasible := stock.Div(c.params.InputRatio).Floor()

	return decimal.Min(dec.ProductionQty, feasible)
}

// Apply blends the period's purchase into the raw-material average, converts
// the feasible production quantity into finished goods at per-unit cost, and
// draws COGS for soldUnits at the finished-goods weighted average.
func (c InventoryCosting) Apply(
	opening domain.CompanyLedger,
	dec domain.DecisionSet,
	soldUnits decimal.Decimal,
) CostingOutcome {
	out := CostingOutcome{}

	// Blend the purchase into the running raw-material average.
	out.PurchaseCost = roundPeso(dec.RawMaterialQty.Mul(dec.RawMaterialPrice))
	rmQty := opening.RawMaterialQty.Add(dec.RawMaterialQty)
	rmValue := opening.RawMaterialInventory.Add(out.PurchaseCost)

	out.ProducedUnits = c.FeasibleProduction(opening, dec)
	out.ProductionShortage = dec.ProductionQty.Sub(out.ProducedUnits)

	// Consume raw material at the technical input ratio.
	consumedQty := out.ProducedUnits.Mul(c.params.InputRatio)

	var consumedValue decimal.Decimal
	if consumedQty.Equal(rmQty) {
		// Draining the stock takes the full value, leaving no rounding residue.
		consumedValue = rmValue
	} else if rmQty.IsPositive() {
		consumedValue = roundPeso(rmValue.Div(rmQty).Mul(consumedQty))
	}

	out.RawMaterialQty = rmQty.Sub(consumedQty)
	out.RawMaterialValue = rmValue.Sub(consumedValue)

	// Produced units pass through WIP within the period and land in finished
	// goods at raw material plus conversion cost, blended into the running
	// finished-goods average.
	unitConversion := c.params.UnitLaborCost.Add(c.params.UnitOverheadCost)
	out.ConversionCost = roundPeso(out.ProducedUnits.Mul(unitConversion))

	fgQty := opening.FinishedGoodsQty.Add(out.ProducedUnits)
	fgValue := opening.FinishedGoods.Add(consumedValue).Add(out.ConversionCost)

	// COGS at the blended weighted average.
	if soldUnits.Equal(fgQty) {
		out.COGS = fgValue
	} else if fgQty.IsPositive() {
		out.COGS = roundPeso(fgValue.Div(fgQty).Mul(soldUnits))
	}

	out.FinishedQty = fgQty.Sub(soldUnits)
	out.FinishedValue = fgValue.Sub(out.COGS)

	return out
}
