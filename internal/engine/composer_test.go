package engine_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronesego-ui/captop/internal/domain"
	"github.com/ronesego-ui/captop/internal/engine"
)

func steadyMacro() domain.MacroSnapshot {
	return domain.MacroSnapshot{
		UFStart:       decimal.NewFromInt(36000),
		UFEnd:         decimal.NewFromInt(36000),
		UTM:           decimal.NewFromInt(68000),
		VATRate:       decimal.NewFromFloat(0.19),
		IncomeTaxRate: decimal.NewFromFloat(0.27),
	}
}

func TestComposer_FullProductionAndSalesPeriod(t *testing.T) {
	c := engine.NewComposer(engine.DefaultParams())

	opening := domain.CompanyLedger{
		Cash:          decimal.NewFromInt(100_000_000),
		PaidInCapital: decimal.NewFromInt(100_000_000),
	}
	dec := domain.DecisionSet{
		RawMaterialPrice: decimal.NewFromInt(5000),
		RawMaterialQty:   decimal.NewFromInt(10000),
		ProductionQty:    decimal.NewFromInt(10000),
		Markets: []domain.MarketDecision{
			{Market: "Chile", UnitPrice: decimal.NewFromInt(10000), ProjectedUnits: decimal.NewFromInt(6000)},
		},
	}

	bundle, closing, err := c.AdvancePeriod(opening, dec, steadyMacro())
	require.NoError(t, err)

	is := bundle.IncomeStatement
	assert.True(t, is[domain.LineRevenue].Equal(decimal.NewFromInt(60_000_000)), "revenue %s", is[domain.LineRevenue])
	assert.True(t, is[domain.LineCOGS].Equal(decimal.NewFromInt(-42_000_000)), "COGS %s", is[domain.LineCOGS])
	assert.True(t, is[domain.LineIncomeTax].Equal(decimal.NewFromInt(-4_860_000)), "income tax %s", is[domain.LineIncomeTax])
	assert.True(t, bundle.NetIncome.Equal(decimal.NewFromInt(13_140_000)), "net income %s", bundle.NetIncome)

	// VAT: 19% on 60M of sales against 19% on 50M of purchases.
	assert.True(t, closing.VATPayable.Equal(decimal.NewFromInt(1_900_000)), "VAT payable %s", closing.VATPayable)

	// 60% of the gross invoice collected, the rest receivable.
	assert.True(t, closing.AccountsReceivable.Equal(decimal.NewFromInt(28_560_000)), "AR %s", closing.AccountsReceivable)
	assert.True(t, closing.AccountsPayable.Equal(decimal.NewFromInt(29_750_000)), "AP %s", closing.AccountsPayable)
	assert.True(t, closing.Cash.Equal(decimal.NewFromInt(93_090_000)), "cash %s", closing.Cash)

	// 4000 unsold units remain at the 7000 weighted average.
	assert.True(t, closing.FinishedGoods.Equal(decimal.NewFromInt(28_000_000)), "finished goods %s", closing.FinishedGoods)
	assert.True(t, closing.FinishedGoodsQty.Equal(decimal.NewFromInt(4000)))

	assert.True(t, closing.Balanced(decimal.NewFromInt(1)), "identity gap %s", closing.ImbalanceGap())
	assert.Equal(t, 1, closing.Period)
}

func TestComposer_MonetaryCorrectionScenario(t *testing.T) {
	c := engine.NewComposer(engine.DefaultParams())

	opening := domain.CompanyLedger{
		Land:               decimal.NewFromInt(40_500_000),
		CreditNotesPayable: decimal.NewFromInt(40_500_000),
	}
	macro := domain.MacroSnapshot{
		UFStart: decimal.NewFromInt(36000),
		UFEnd:   decimal.NewFromInt(36360),
		UTM:     decimal.NewFromInt(68000),
	}

	bundle, closing, err := c.AdvancePeriod(opening, domain.DecisionSet{}, macro)
	require.NoError(t, err)

	assert.True(t, closing.Land.Equal(decimal.NewFromInt(40_905_000)), "land %s", closing.Land)
	correction := bundle.IncomeStatement[domain.LineCorrection]
	assert.True(t, correction.Abs().Equal(decimal.NewFromInt(405_000)), "correction %s", correction)

	// Monetary items are bit-identical across the correction.
	assert.True(t, closing.Cash.Equal(opening.Cash))
	assert.True(t, closing.CreditNotesPayable.Equal(opening.CreditNotesPayable))

	assert.True(t, closing.Balanced(decimal.NewFromInt(1)), "identity gap %s", closing.ImbalanceGap())
}

func TestComposer_DividendAccrual(t *testing.T) {
	c := engine.NewComposer(engine.DefaultParams())

	opening := domain.CompanyLedger{
		Cash:           decimal.NewFromInt(60_000_000),
		PaidInCapital:  decimal.NewFromInt(10_000_000),
		PriorNetIncome: decimal.NewFromInt(50_000_000),
	}
	macro := domain.MacroSnapshot{
		UFStart: decimal.NewFromInt(36000),
		UFEnd:   decimal.NewFromInt(36000),
		UTM:     decimal.NewFromInt(68000),
	}
	dec := domain.DecisionSet{PayoutRatio: decimal.NewFromFloat(0.3)}

	_, closing, err := c.AdvancePeriod(opening, dec, macro)
	require.NoError(t, err)

	assert.True(t, closing.DividendsPayable.Equal(decimal.NewFromInt(15_000_000)), "dividends payable %s", closing.DividendsPayable)

	// Prior net income rolls into retained earnings net of the accrual.
	assert.True(t, closing.RetainedEarnings.Equal(decimal.NewFromInt(35_000_000)), "retained earnings %s", closing.RetainedEarnings)
	assert.True(t, closing.Balanced(decimal.NewFromInt(1)))
}

func TestComposer_RejectsInvalidDecisions(t *testing.T) {
	c := engine.NewComposer(engine.DefaultParams())

	dec := domain.DecisionSet{PayoutRatio: decimal.NewFromFloat(1.5)}

	_, _, err := c.AdvancePeriod(domain.CompanyLedger{}, dec, steadyMacro())

	var invalid *domain.InvalidDecisionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "payout_ratio", invalid.Field)
}

func TestComposer_StockoutIsReportedNotFatal(t *testing.T) {
	c := engine.NewComposer(engine.DefaultParams())

	opening := domain.CompanyLedger{
		Cash:             decimal.NewFromInt(10_000_000),
		FinishedGoods:    decimal.NewFromInt(7_000_000),
		FinishedGoodsQty: decimal.NewFromInt(1000),
		PaidInCapital:    decimal.NewFromInt(17_000_000),
	}
	dec := domain.DecisionSet{
		Markets: []domain.MarketDecision{
			{Market: "Argentina", UnitPrice: decimal.NewFromInt(9000), ProjectedUnits: decimal.NewFromInt(3000)},
			{Market: "Brasil", UnitPrice: decimal.NewFromInt(9500), ProjectedUnits: decimal.NewFromInt(2000)},
		},
	}

	bundle, closing, err := c.AdvancePeriod(opening, dec, steadyMacro())
	require.NoError(t, err)

	var sold decimal.Decimal
	for _, mr := range bundle.MarketResults {
		sold = sold.Add(mr.RealizedUnits)
	}
	assert.True(t, sold.LessThanOrEqual(decimal.NewFromInt(1000)), "oversold %s units", sold)

	found := false
	for _, d := range bundle.Diagnostics {
		if d.Code == domain.DiagStockout {
			found = true
		}
	}
	assert.True(t, found, "missing stockout diagnostic")
	assert.True(t, closing.Balanced(decimal.NewFromInt(1)))
}

func TestComposer_StaleMacroProceedsWithWarning(t *testing.T) {
	c := engine.NewComposer(engine.DefaultParams())

	macro := steadyMacro()
	macro.Stale = true

	bundle, _, err := c.AdvancePeriod(domain.CompanyLedger{}, domain.DecisionSet{}, macro)
	require.NoError(t, err)

	found := false
	for _, d := range bundle.Diagnostics {
		if d.Code == domain.DiagMacroDataStale {
			found = true
			assert.Equal(t, domain.SeverityWarning, d.Severity)
		}
	}
	assert.True(t, found, "missing stale-macro diagnostic")
}

func TestComposer_Idempotent(t *testing.T) {
	c := engine.NewComposer(engine.DefaultParams())

	opening := seedLedger()
	dec := richDecisions()
	macro := inflationMacro()

	b1, l1, err1 := c.AdvancePeriod(opening, dec, macro)
	b2, l2, err2 := c.AdvancePeriod(opening, dec, macro)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, l1, l2)
}

func TestComposer_IdentityHoldsAcrossPeriods(t *testing.T) {
	c := engine.NewComposer(engine.DefaultParams())

	ledger := seedLedger()
	macro := inflationMacro()

	for period := 1; period <= 4; period++ {
		bundle, closing, err := c.AdvancePeriod(ledger, richDecisions(), macro)
		require.NoError(t, err, "period %d", period)
		require.True(t, closing.Balanced(decimal.NewFromInt(1)),
			"period %d identity gap %s", period, closing.ImbalanceGap())
		require.Equal(t, period, closing.Period)

		// The cash flow statement reconciles to the cash delta.
		change := bundle.CashFlow[domain.LineNetCashChange]
		require.True(t, closing.Cash.Sub(ledger.Cash).Equal(change),
			"period %d cash flow mismatch: delta %s vs statement %s",
			period, closing.Cash.Sub(ledger.Cash), change)

		ledger = closing
	}
}

func TestComposer_LedgerImbalanceDetected(t *testing.T) {
	c := engine.NewComposer(engine.DefaultParams())

	// An unbalanced seed stays unbalanced through a quiet period and must
	// be rejected rather than committed.
	opening := domain.CompanyLedger{Cash: decimal.NewFromInt(1_000_000)}
	macro := domain.MacroSnapshot{
		UFStart: decimal.NewFromInt(36000),
		UFEnd:   decimal.NewFromInt(36000),
		UTM:     decimal.NewFromInt(68000),
	}

	_, _, err := c.AdvancePeriod(opening, domain.DecisionSet{}, macro)

	var imbalance *domain.LedgerImbalanceError
	require.True(t, errors.As(err, &imbalance))
	assert.True(t, imbalance.Gap.Equal(decimal.NewFromInt(1_000_000)))
}

func seedLedger() domain.CompanyLedger {
	return domain.CompanyLedger{
		Cash:                 decimal.NewFromInt(80_000_000),
		RawMaterialInventory: decimal.NewFromInt(10_000_000),
		RawMaterialQty:       decimal.NewFromInt(2000),
		FinishedGoods:        decimal.NewFromInt(14_000_000),
		FinishedGoodsQty:     decimal.NewFromInt(2000),
		Land:                 decimal.NewFromInt(30_000_000),
		Plant:                decimal.NewFromInt(50_000_000),
		AdminBuilding:        decimal.NewFromInt(20_000_000),
		Equipment:            decimal.NewFromInt(10_000_000),
		LongTermLoan:         decimal.NewFromInt(40_000_000),
		PaidInCapital:        decimal.NewFromInt(150_000_000),
		RetainedEarnings:     decimal.NewFromInt(24_000_000),
	}
}

func richDecisions() domain.DecisionSet {
	return domain.DecisionSet{
		RawMaterialPrice: decimal.NewFromInt(5200),
		RawMaterialQty:   decimal.NewFromInt(8000),
		ProductionQty:    decimal.NewFromInt(8000),
		Markets: []domain.MarketDecision{
			{Market: "Chile", UnitPrice: decimal.NewFromInt(12000), ProjectedUnits: decimal.NewFromInt(4000)},
			{Market: "Brasil", UnitPrice: decimal.NewFromInt(11000), ProjectedUnits: decimal.NewFromInt(3000)},
			{Market: "Mexico", UnitPrice: decimal.NewFromInt(11500), ProjectedUnits: decimal.NewFromInt(2000)},
		},
		AdvertisingBudget: decimal.NewFromInt(2_000_000),
		ResearchBudget:    decimal.NewFromInt(1_000_000),
		Loans: []domain.LoanDecision{
			{Class: domain.LoanLongTerm, Repay: decimal.NewFromInt(5_000_000)},
			{Class: domain.LoanShortTerm, Borrow: decimal.NewFromInt(3_000_000)},
		},
		PayoutRatio: decimal.NewFromFloat(0.2),
	}
}

func inflationMacro() domain.MacroSnapshot {
	return domain.MacroSnapshot{
		UFStart:       decimal.NewFromInt(36000),
		UFEnd:         decimal.NewFromInt(36360),
		UTM:           decimal.NewFromInt(68000),
		VATRate:       decimal.NewFromFloat(0.19),
		IncomeTaxRate: decimal.NewFromFloat(0.27),
	}
}
