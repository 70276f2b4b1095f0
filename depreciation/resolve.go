/*
resolve.go - Calculation preview and net-book-value resolver

PURPOSE:
  Orchestrates the unit converter and calculators. Calculate() is the
  stateless preview used by the calculation endpoint; CurrentNBV() is the
  resolver invoked whenever an asset's financial fields are derived.

INVARIANTS:
  - NBV never drops below the residual value, regardless of calculator
    output.
  - A NoDepreciation asset always reports NBV equal to its total amount.
  - If total amount <= residual value there is nothing to depreciate and
    NBV equals the residual value.
  - Identical inputs with an unchanged "today" produce identical results.
*/
package depreciation

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CALCULATE - Stateless preview
// =============================================================================

// Input carries the financial attributes for an ad-hoc calculation.
type Input struct {
	Method             Method
	TotalAmount        decimal.Decimal
	ResidualValue      decimal.Decimal
	UsefulLife         int
	Period             Unit
	Computation        Unit
	CapitalizationDate time.Time // zero value means not yet capitalized
}

// Result is the outcome of a calculation run. Monetary fields are
// quantized to 2 decimals.
type Result struct {
	Method                  Method
	TotalUnits              int
	ElapsedUnits            int
	AccumulatedDepreciation decimal.Decimal
	CurrentNBV              decimal.Decimal
}

// Calculate derives total and elapsed units, clamps elapsed, dispatches to
// the calculator for the method, and floors the resulting NBV at the
// residual value. Pure function of the input and today.
func Calculate(in Input, today time.Time) (Result, error) {
	totalUnits := TotalUnits(in.UsefulLife, in.Period, in.Computation)
	elapsed := ElapsedUnits(in.CapitalizationDate, in.Computation, today)
	if elapsed > totalUnits {
		elapsed = totalUnits
	}

	accumulated, err := accumulatedFor(in, totalUnits, elapsed)
	if err != nil {
		return Result{}, err
	}

	nbv := in.TotalAmount.Sub(accumulated)
	if nbv.LessThan(in.ResidualValue) {
		nbv = in.ResidualValue
	}

	return Result{
		Method:                  in.Method,
		TotalUnits:              totalUnits,
		ElapsedUnits:            elapsed,
		AccumulatedDepreciation: accumulated,
		CurrentNBV:              money(nbv),
	}, nil
}

func accumulatedFor(in Input, totalUnits, elapsed int) (decimal.Decimal, error) {
	switch in.Method {
	case MethodStraightLine:
		return StraightLine(in.TotalAmount, in.ResidualValue, totalUnits, elapsed), nil
	case MethodDoubleDeclining:
		return DoubleDeclining(in.TotalAmount, in.ResidualValue, in.UsefulLife, elapsed, in.Computation)
	default:
		return ReducingBalance(in.TotalAmount, in.ResidualValue, in.UsefulLife, elapsed, in.Computation)
	}
}

// =============================================================================
// CURRENT NBV - Resolver for a full asset snapshot
// =============================================================================

// CurrentNBV resolves the net book value for an asset snapshot.
func CurrentNBV(snap Snapshot, today time.Time) (decimal.Decimal, error) {
	// Suppressed depreciation: NBV stays at cost basis.
	if snap.Status.Is(StatusNoDepreciation) {
		return money(snap.TotalAmount), nil
	}

	// Nothing left to depreciate.
	if snap.TotalAmount.LessThanOrEqual(snap.ResidualValue) {
		return money(snap.ResidualValue), nil
	}

	result, err := Calculate(Input{
		Method:             snap.Method,
		TotalAmount:        snap.TotalAmount,
		ResidualValue:      snap.ResidualValue,
		UsefulLife:         snap.UsefulLife,
		Period:             snap.Period,
		Computation:        snap.Computation,
		CapitalizationDate: snap.CapitalizationDate,
	}, today)
	if err != nil {
		return decimal.Zero, err
	}

	return result.CurrentNBV, nil
}
