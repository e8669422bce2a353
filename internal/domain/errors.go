package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrCompanyNotFound is returned when a company does not exist.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrPeriodNotFound is returned when no ledger exists for a period.
	ErrPeriodNotFound = errors.New("period not found")
	// ErrMacroUnavailable is returned when no macro index value can be
	// obtained, not even a cached one.
	ErrMacroUnavailable = errors.New("macro index unavailable")
)

// InvalidDecisionError rejects a decision set before any ledger mutation.
// The period is not advanced.
type InvalidDecisionError struct {
	Field  string
	Reason string
}

func (e *InvalidDecisionError) Error() string {
	return fmt.Sprintf("invalid decision: %s: %s", e.Field, e.Reason)
}

// LedgerImbalanceError means the accounting identity does not hold after
// composition. Fatal: the period is not committed and the prior closing
// ledger remains authoritative.
type LedgerImbalanceError struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	Equity      decimal.Decimal
	Gap         decimal.Decimal
}

func (e *LedgerImbalanceError) Error() string {
	return fmt.Sprintf(
		"ledger imbalance: assets %s != liabilities %s + equity %s (gap %s)",
		e.Assets, e.Liabilities, e.Equity, e.Gap,
	)
}

// InsufficientInventoryError describes a production or sales request that
// exceeds feasible stock. It degrades to a capped, reported shortfall rather
// than aborting the period.
type InsufficientInventoryError struct {
	Requested decimal.Decimal
	Feasible  decimal.Decimal
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf(
		"insufficient inventory: requested %s, feasible %s",
		e.Requested, e.Feasible,
	)
}

// MacroDataStaleError means the index provider served a cached, possibly
// expired value. Warning level: the period proceeds using the stale value.
type MacroDataStaleError struct {
	Series string
	Cause  error
}

func (e *MacroDataStaleError) Error() string {
	return fmt.Sprintf("macro series %s is stale: %v", e.Series, e.Cause)
}

func (e *MacroDataStaleError) Unwrap() error { return e.Cause }
