package engine

import (
	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
)

// LoanLedger accrues interest on opening principals and applies the
// period's borrowing and repayment decisions.
type LoanLedger struct {
	params Params
}

// NewLoanLedger creates a LoanLedger.
func NewLoanLedger(params Params) LoanLedger {
	return LoanLedger{params: params}
}

// FinancingOutcome is the serviced loan position for the period.
type FinancingOutcome struct {
	InterestExpense decimal.Decimal

	BorrowedShort decimal.Decimal
	BorrowedLong  decimal.Decimal
	RepaidShort   decimal.Decimal
	RepaidLong    decimal.Decimal

	ClosingShort decimal.Decimal
	ClosingLong  decimal.Decimal

	RolledShort decimal.Decimal // maturing short-term principal carried into the next period
}

// CashEffect is the net cash impact of financing: proceeds minus
// repayments minus interest paid.
func (o FinancingOutcome) CashEffect() decimal.Decimal {
	return o.BorrowedShort.Add(o.BorrowedLong).
		Sub(o.RepaidShort).Sub(o.RepaidLong).
		Sub(o.InterestExpense)
}

// Service accrues interest on the opening principals, then applies borrow
// and repay decisions. Repayments are clamped to the outstanding principal;
// a balance can never go negative. Short-term debt matures every period:
// whatever is not explicitly repaid either rolls over at unchanged
// principal (the default policy) or is force-repaid from cash.
func (l LoanLedger) Service(openingShort, openingLong decimal.Decimal, loans []domain.LoanDecision) FinancingOutcome {
	out := FinancingOutcome{
		InterestExpense: roundPeso(openingShort.Mul(l.params.ShortTermRate)).
			Add(roundPeso(openingLong.Mul(l.params.LongTermRate))),
		ClosingShort: openingShort,
		ClosingLong:  openingLong,
	}

	for _, loan := range loans {
		switch loan.Class {
		case domain.LoanShortTerm:
			out.ClosingShort = out.ClosingShort.Add(loan.Borrow)
			out.BorrowedShort = out.BorrowedShort.Add(loan.Borrow)

			repay := decimal.Min(loan.Repay, out.ClosingShort)
			out.ClosingShort = out.ClosingShort.Sub(repay)
			out.RepaidShort = out.RepaidShort.Add(repay)

		case domain.LoanLongTerm:
			out.ClosingLong = out.ClosingLong.Add(loan.Borrow)
			out.BorrowedLong = out.BorrowedLong.Add(loan.Borrow)

			repay := decimal.Min(loan.Repay, out.ClosingLong)
			out.ClosingLong = out.ClosingLong.Sub(repay)
			out.RepaidLong = out.RepaidLong.Add(repay)
		}
	}

	if out.ClosingShort.IsPositive() {
		if l.params.RolloverShortTerm {
			out.RolledShort = out.ClosingShort
		} else {
			out.RepaidShort = out.RepaidShort.Add(out.ClosingShort)
			out.ClosingShort = decimal.Zero
		}
	}

	return out
}
