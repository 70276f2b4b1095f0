/*
calc.go - The three depreciation calculators

PURPOSE:
  Computes accumulated depreciation under straight-line, reducing-balance
  and double-declining conventions. This is the single shared
  implementation: the preview endpoint and the asset recompute path both
  dispatch here, so the two call sites can never drift apart.

METHODS:
  Straight-line:     linear split of (cost - residual) across total units.
  Reducing-balance:  geometric rate to residual, 1 - (residual/cost)^(1/life),
                     then period-by-period balance simulation.
  Double-declining:  same simulation with rate 2/life (double the
                     straight-line annual rate).

RATE RESCALING:
  Annual rates are rescaled to sub-year computation periods by flat
  division (/12 for MONTH, /365 for DAY). This is not a
  compounding-equivalent conversion; it matches the established figures
  and must stay that way.

GUARDS:
  Both declining methods return zero accumulated for useful_life <= 0 or
  elapsed <= 0. An undefined geometric rate (cost <= 0) is reported as an
  ArithmeticError rather than propagating a NaN.
*/
package depreciation

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	two       = decimal.NewFromInt(2)
	twelve    = decimal.NewFromInt(12)
	daysPerYr = decimal.NewFromInt(daysPerYear)
)

// StraightLine returns accumulated depreciation spread linearly across the
// total units. elapsedUnits must already be clamped to totalUnits.
func StraightLine(cost, residual decimal.Decimal, totalUnits, elapsedUnits int) decimal.Decimal {
	if totalUnits == 0 {
		return money(decimal.Zero)
	}
	depreciable := cost.Sub(residual)
	perUnit := depreciable.Div(decimal.NewFromInt(int64(totalUnits)))
	return money(perUnit.Mul(decimal.NewFromInt(int64(elapsedUnits))))
}

// ReducingBalance returns accumulated depreciation under a geometric rate
// derived from the residual: the rate that would depreciate cost down to
// residual over the useful life, applied to the declining balance each
// period.
func ReducingBalance(cost, residual decimal.Decimal, usefulLife, elapsedUnits int, computation Unit) (decimal.Decimal, error) {
	if usefulLife <= 0 || elapsedUnits <= 0 {
		return money(decimal.Zero), nil
	}

	annual, err := geometricRate(cost, residual, usefulLife)
	if err != nil {
		return decimal.Zero, err
	}

	acc := declineBalance(cost, residual, periodRate(annual, computation), elapsedUnits)
	return money(acc), nil
}

// DoubleDeclining returns accumulated depreciation at double the
// straight-line annual rate applied to the declining balance.
func DoubleDeclining(cost, residual decimal.Decimal, usefulLife, elapsedUnits int, computation Unit) (decimal.Decimal, error) {
	if usefulLife <= 0 || elapsedUnits <= 0 {
		return money(decimal.Zero), nil
	}

	annual := two.Div(decimal.NewFromInt(int64(usefulLife)))
	acc := declineBalance(cost, residual, periodRate(annual, computation), elapsedUnits)
	return money(acc), nil
}

// geometricRate derives the annual rate 1 - (residual/cost)^(1/usefulLife).
// The fractional root goes through float64; the result is only a rate, and
// the balance simulation itself stays in decimals.
func geometricRate(cost, residual decimal.Decimal, usefulLife int) (decimal.Decimal, error) {
	costF, _ := cost.Float64()
	residualF, _ := residual.Float64()
	if costF <= 0 {
		return decimal.Zero, &ArithmeticError{Op: "reducing balance rate", Detail: "cost must be positive"}
	}

	rate := 1 - math.Pow(residualF/costF, 1/float64(usefulLife))
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return decimal.Zero, &ArithmeticError{Op: "reducing balance rate", Detail: "rate is not finite"}
	}
	return decimal.NewFromFloat(rate), nil
}

// periodRate rescales an annual rate to the computation period by flat
// division. Not compounding-equivalent; see the package comment.
func periodRate(annual decimal.Decimal, computation Unit) decimal.Decimal {
	switch computation {
	case UnitMonth:
		return annual.Div(twelve)
	case UnitDay:
		return annual.Div(daysPerYr)
	default:
		return annual
	}
}

// declineBalance simulates period-by-period depreciation of the balance at
// the given rate, clamping at the residual floor, and returns the
// accumulated depreciation (cost minus final balance).
func declineBalance(cost, residual, rate decimal.Decimal, elapsedUnits int) decimal.Decimal {
	nbv := cost
	for i := 0; i < elapsedUnits; i++ {
		nbv = nbv.Sub(nbv.Mul(rate))
		if nbv.LessThanOrEqual(residual) {
			nbv = residual
			break
		}
	}
	return cost.Sub(nbv)
}
