package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
)

// Composer runs the pipeline components in their fixed order, threads one
// working ledger through them, assembles the three statements and verifies
// the accounting identity before closing the period.
//
// One period is a pure function of (opening ledger, decisions, macro
// snapshot): no clock, no RNG, no shared state. Reordering the pipeline
// changes numeric results and is a breaking change.
type Composer struct {
	params    Params
	sales     SalesResolver
	costing   InventoryCosting
	correct   CorrectionEngine
	tax       TaxCalculator
	loans     LoanLedger
	dividends DividendDistributor
	tolerance decimal.Decimal
}

// NewComposer creates a Composer with the given simulation parameters.
func NewComposer(params Params) *Composer {
	return &Composer{
		params:    params,
		sales:     NewSalesResolver(params),
		costing:   NewInventoryCosting(params),
		correct:   NewCorrectionEngine(),
		tax:       NewTaxCalculator(),
		loans:     NewLoanLedger(params),
		dividends: NewDividendDistributor(),
		tolerance: decimal.NewFromInt(1),
	}
}

// AdvancePeriod computes the next period's statements and closing ledger.
// The opening ledger is never mutated; on any error the caller's prior
// closing ledger remains authoritative.
func (c *Composer) AdvancePeriod(
	opening domain.CompanyLedger,
	dec domain.DecisionSet,
	macro domain.MacroSnapshot,
) (domain.StatementBundle, domain.CompanyLedger, error) {
	if err := dec.Validate(); err != nil {
		return domain.StatementBundle{}, domain.CompanyLedger{}, err
	}
	if err := macro.Validate(); err != nil {
		return domain.StatementBundle{}, domain.CompanyLedger{}, err
	}

	work := opening
	work.Period = opening.Period + 1

	var diags []domain.Diagnostic
	if macro.Stale {
		diags = append(diags, domain.Diagnostic{
			Code:     domain.DiagMacroDataStale,
			Severity: domain.SeverityWarning,
			Message:  "macro indices served from cache; period advanced with stale values",
		})
	}

	// 4.1 Demand & sales. Supply is opening finished goods plus the
	// production that the raw-material position can actually sustain.
	feasible := c.costing.FeasibleProduction(opening, dec)
	available := opening.FinishedGoodsQty.Add(feasible)
	so := c.sales.Resolve(work.Period, dec.Markets, dec.AdvertisingBudget, dec.ResearchBudget, available)

	if so.Stockout {
		diags = append(diags, domain.Diagnostic{
			Code:     domain.DiagStockout,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("demand exceeded supply; %s units unfilled", so.UnfilledUnits),
			Amount:   so.UnfilledUnits,
		})
	}

	// 4.2 Production & inventory costing.
	co := c.costing.Apply(opening, dec, so.TotalUnits)
	if co.ProductionShortage.IsPositive() {
		shortErr := &domain.InsufficientInventoryError{
			Requested: dec.ProductionQty,
			Feasible:  co.ProducedUnits,
		}
		diags = append(diags, domain.Diagnostic{
			Code:     domain.DiagProductionShortfall,
			Severity: domain.SeverityWarning,
			Message:  shortErr.Error(),
			Amount:   co.ProductionShortage,
		})
	}

	work.RawMaterialInventory = co.RawMaterialValue
	work.RawMaterialQty = co.RawMaterialQty
	work.FinishedGoods = co.FinishedValue
	work.FinishedGoodsQty = co.FinishedQty

	// 4.3 Monetary correction on opening non-monetary balances.
	cr := c.correct.Restate(opening, macro.UFVariation())
	work.RawMaterialInventory = work.RawMaterialInventory.Add(cr.RawMaterial)
	work.WorkInProcess = work.WorkInProcess.Add(cr.WorkInProcess)
	work.FinishedGoods = work.FinishedGoods.Add(cr.FinishedGoods)
	work.Land = work.Land.Add(cr.Land)
	work.Plant = work.Plant.Add(cr.Plant)
	work.AdminBuilding = work.AdminBuilding.Add(cr.AdminBuilding)
	work.Equipment = work.Equipment.Add(cr.Equipment)
	work.AccumulatedDepreciation = work.AccumulatedDepreciation.Add(cr.AccumDep)
	work.PaidInCapital = work.PaidInCapital.Add(cr.PaidInCapital)

	// Period depreciation, straight line on restated values.
	dep := roundPeso(work.Plant.Mul(c.params.PlantDepRate)).
		Add(roundPeso(work.AdminBuilding.Mul(c.params.BuildingDepRate))).
		Add(roundPeso(work.Equipment.Mul(c.params.EquipmentDepRate)))
	work.AccumulatedDepreciation = work.AccumulatedDepreciation.Add(dep)

	// 4.4 Taxes. The taxable base is the pre-financing result: interest is
	// a non-deductible adjustment because financing runs after this stage.
	services := dec.AdvertisingBudget.Add(dec.ResearchBudget)
	taxable := so.TotalRevenue.Sub(co.COGS).Sub(services).Sub(dep).Add(cr.Net)
	to := c.tax.Compute(TaxInput{
		Revenue:              so.TotalRevenue,
		RawMaterialPurchases: co.PurchaseCost,
		DeductibleServices:   services,
		TaxableIncome:        taxable,
		VATCreditCarried:     decimal.Min(opening.VATPayable, decimal.Zero),
	}, macro)

	// 4.5 Financing.
	fo := c.loans.Service(opening.ShortTermLoan, opening.LongTermLoan, dec.Loans)
	if fo.RolledShort.IsPositive() {
		diags = append(diags, domain.Diagnostic{
			Code:     domain.DiagLoanRollover,
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("maturing short-term principal of %s rolled into next period", fo.RolledShort),
			Amount:   fo.RolledShort,
		})
	}

	// 4.6 Dividend accrual from the prior period's result.
	div := c.dividends.Accrue(opening.PriorNetIncome, dec.PayoutRatio)

	// Cash, receivable and payable postings. Sales are billed gross of VAT
	// debit; a configured fraction is collected within the period and the
	// opening receivable balance settles in full.
	billed := so.TotalRevenue.Add(to.VATDebit)
	collectedNow := roundPeso(c.params.CollectionRate.Mul(billed))
	collections := opening.AccountsReceivable.Add(collectedNow)
	work.Cash = work.Cash.Add(collections)
	work.AccountsReceivable = billed.Sub(collectedNow)

	// Purchases are billed gross of their VAT credit; symmetric treatment.
	billedPurchases := co.PurchaseCost.Add(to.VATCreditMaterials)
	paidNow := roundPeso(c.params.PaymentRate.Mul(billedPurchases))
	supplierPayments := opening.AccountsPayable.Add(paidNow)
	work.Cash = work.Cash.Sub(supplierPayments)
	work.AccountsPayable = billedPurchases.Sub(paidNow)

	// Conversion costs and services (plus their VAT) are paid in cash.
	operatingPaid := co.ConversionCost.Add(services).Add(to.VATCreditServices)
	work.Cash = work.Cash.Sub(operatingPaid)

	// Settle the opening tax payables; accrue the new positions.
	vatPaid := decimal.Max(opening.VATPayable, decimal.Zero)
	work.Cash = work.Cash.Sub(vatPaid)
	work.VATPayable = to.NetVAT

	incomeTaxPaid := opening.IncomeTaxPayable
	work.Cash = work.Cash.Sub(incomeTaxPaid)
	work.IncomeTaxPayable = to.IncomeTax

	// Loan proceeds, repayments and interest.
	work.Cash = work.Cash.Add(fo.CashEffect())
	work.ShortTermLoan = fo.ClosingShort
	work.LongTermLoan = fo.ClosingLong

	// Previously accrued dividends are paid out; the new accrual replaces
	// them on the payable.
	dividendsPaid := opening.DividendsPayable
	work.Cash = work.Cash.Sub(dividendsPaid)
	work.DividendsPayable = div

	// Result of the exercise and equity roll-forward.
	netIncome := so.TotalRevenue.
		Sub(co.COGS).
		Sub(dec.AdvertisingBudget).
		Sub(dec.ResearchBudget).
		Sub(dep).
		Sub(fo.InterestExpense).
		Add(cr.Net).
		Sub(to.IncomeTax)

	work.RetainedEarnings = opening.RetainedEarnings.Add(cr.RetainedEarnings).
		Add(opening.PriorNetIncome).Add(cr.PriorNetIncome).
		Sub(div)
	work.PriorNetIncome = netIncome

	if !work.Balanced(c.tolerance) {
		return domain.StatementBundle{}, domain.CompanyLedger{}, &domain.LedgerImbalanceError{
			Assets:      work.TotalAssets(),
			Liabilities: work.TotalLiabilities(),
			Equity:      work.TotalEquity(),
			Gap:         work.ImbalanceGap(),
		}
	}

	bundle := domain.StatementBundle{
		Period:        work.Period,
		MarketResults: so.Results,
		NetIncome:     netIncome,
		EndingCash:    work.Cash,
		EndingEquity:  work.TotalEquity(),
		Diagnostics:   diags,
	}

	grossMargin := so.TotalRevenue.Sub(co.COGS)
	operatingIncome := grossMargin.Sub(dec.AdvertisingBudget).Sub(dec.ResearchBudget).Sub(dep)
	pretax := operatingIncome.Sub(fo.InterestExpense).Add(cr.Net)

	bundle.IncomeStatement = domain.Statement{
		domain.LineRevenue:         so.TotalRevenue,
		domain.LineCOGS:            co.COGS.Neg(),
		domain.LineGrossMargin:     grossMargin,
		domain.LineAdvertising:     dec.AdvertisingBudget.Neg(),
		domain.LineMarketResearch:  dec.ResearchBudget.Neg(),
		domain.LineDepreciation:    dep.Neg(),
		domain.LineOperatingIncome: operatingIncome,
		domain.LineInterestExpense: fo.InterestExpense.Neg(),
		domain.LineCorrection:      cr.Net,
		domain.LinePretaxIncome:    pretax,
		domain.LineIncomeTax:       to.IncomeTax.Neg(),
		domain.LineNetIncome:       netIncome,
	}

	bundle.BalanceSheet = balanceSheet(work)

	operatingCash := collections.
		Sub(supplierPayments).
		Sub(operatingPaid).
		Sub(vatPaid).
		Sub(incomeTaxPaid)
	financingCash := fo.CashEffect().Sub(dividendsPaid)

	bundle.CashFlow = domain.Statement{
		domain.LineCollections:      collections,
		domain.LineSupplierPayments: supplierPayments.Neg(),
		domain.LineOperatingPaid:    operatingPaid.Neg(),
		domain.LineVATPaid:          vatPaid.Neg(),
		domain.LineIncomeTaxPaid:    incomeTaxPaid.Neg(),
		domain.LineOperatingCash:    operatingCash,
		domain.LineBorrowings:       fo.BorrowedShort.Add(fo.BorrowedLong),
		domain.LineRepayments:       fo.RepaidShort.Add(fo.RepaidLong).Neg(),
		domain.LineInterestPaid:     fo.InterestExpense.Neg(),
		domain.LineDividendsPaid:    dividendsPaid.Neg(),
		domain.LineFinancingCash:    financingCash,
		domain.LineNetCashChange:    operatingCash.Add(financingCash),
	}

	return bundle, work, nil
}

func balanceSheet(l domain.CompanyLedger) domain.Statement {
	return domain.Statement{
		"cash":                     l.Cash,
		"accounts_receivable":      l.AccountsReceivable,
		"raw_material_inventory":   l.RawMaterialInventory,
		"work_in_process":          l.WorkInProcess,
		"finished_goods":           l.FinishedGoods,
		"land":                     l.Land,
		"plant":                    l.Plant,
		"admin_building":           l.AdminBuilding,
		"equipment":                l.Equipment,
		"accumulated_depreciation": l.AccumulatedDepreciation.Neg(),
		"accounts_payable":         l.AccountsPayable,
		"short_term_loan":          l.ShortTermLoan,
		"long_term_loan":           l.LongTermLoan,
		"vat_payable":              l.VATPayable,
		"income_tax_payable":       l.IncomeTaxPayable,
		"dividends_payable":        l.DividendsPayable,
		"credit_notes_payable":     l.CreditNotesPayable,
		"paid_in_capital":          l.PaidInCapital,
		"retained_earnings":        l.RetainedEarnings,
		"prior_net_income":         l.PriorNetIncome,
		"total_assets":             l.TotalAssets(),
		"total_liabilities":        l.TotalLiabilities(),
		"total_equity":             l.TotalEquity(),
	}
}
