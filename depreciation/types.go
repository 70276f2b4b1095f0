/*
Package depreciation provides the core depreciation computation engine.

PURPOSE:
  This package contains the pure calculation logic for fixed-asset
  depreciation: unit conversion between useful-life periods and
  computation periods, three interchangeable depreciation methods, and
  the net-book-value resolver that ties them together.

KEY CONCEPTS IN THIS FILE (types.go):
  - Unit: The time granularity a duration is expressed in (day/month/year)
  - Method: The depreciation strategy (straight-line, reducing-balance,
    double-declining)
  - Status: Asset lifecycle status, which gates whether depreciation
    accrues at all
  - Snapshot: Immutable financial view of an asset at calculation time

DESIGN PRINCIPLES:
  1. Purity: Nothing in this package performs I/O. "Today" is always an
     explicit argument so results are reproducible.
  2. Precision: Uses decimal.Decimal for all monetary values. Floats only
     appear transiently for the fractional root in the geometric rate.
  3. One implementation: Both the preview endpoint and the entity
     recompute path call the same calculators. There is no second copy.

USAGE:
  snap := depreciation.Snapshot{
      TotalAmount:        decimal.NewFromInt(1200),
      ResidualValue:      decimal.Zero,
      UsefulLife:         1,
      Period:             depreciation.UnitYear,
      Computation:        depreciation.UnitMonth,
      CapitalizationDate: capDate,
      Method:             depreciation.MethodStraightLine,
      Status:             depreciation.StatusReadyToUse,
  }
  nbv, err := depreciation.CurrentNBV(snap, time.Now())

SEE ALSO:
  - units.go: Duration conversion between units
  - calc.go: The three depreciation calculators
  - resolve.go: Calculate preview and CurrentNBV resolver
*/
package depreciation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// UNIT - Time granularity for useful life and computation
// =============================================================================

type Unit string

const (
	UnitDay   Unit = "DAY"
	UnitMonth Unit = "MONTH"
	UnitYear  Unit = "YEAR"
)

// Fixed conversion factors. Months and years are NOT variable-length here;
// the drift for long-lived assets is an accepted approximation.
const (
	daysPerYear  = 365
	daysPerMonth = 30
)

// ParseUnit normalizes a unit string. Unknown values are reported so
// malformed input surfaces as a validation error, not a silent YEAR.
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToUpper(strings.TrimSpace(s))) {
	case UnitDay:
		return UnitDay, nil
	case UnitMonth:
		return UnitMonth, nil
	case UnitYear:
		return UnitYear, nil
	}
	return "", &InputError{Field: "unit", Message: "must be DAY, MONTH or YEAR: " + s}
}

// =============================================================================
// METHOD - Depreciation strategy
// =============================================================================

type Method string

const (
	MethodStraightLine    Method = "Straight Line"
	MethodReducingBalance Method = "Reducing Balance"
	MethodDoubleDeclining Method = "Double Declining"
)

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "straight line":
		return MethodStraightLine, nil
	case "reducing balance":
		return MethodReducingBalance, nil
	case "double declining":
		return MethodDoubleDeclining, nil
	}
	return "", &InputError{Field: "depreciation_method", Message: "unknown method: " + s}
}

// =============================================================================
// STATUS - Asset lifecycle status
// =============================================================================

type Status string

const (
	StatusReadyToUse     Status = "Ready to Use"
	StatusFinished       Status = "Finished"
	StatusNoDepreciation Status = "No Depreciation"
	StatusDisposal       Status = "Disposal"
)

// Is compares statuses case-insensitively. Stored statuses come from
// free-form upstream data, so "ready to use" and "Ready to Use" match.
func (s Status) Is(other Status) bool {
	return strings.EqualFold(string(s), string(other))
}

// =============================================================================
// SNAPSHOT - Immutable financial view of an asset at calculation time
// =============================================================================

type Snapshot struct {
	TotalAmount        decimal.Decimal // cost basis: acquisition + fees
	ResidualValue      decimal.Decimal
	UsefulLife         int  // count of Period units; must be > 0 to depreciate
	Period             Unit // unit UsefulLife is expressed in
	Computation        Unit // unit depreciation is computed per
	CapitalizationDate time.Time
	Method             Method
	Status             Status
}

// =============================================================================
// MONEY HELPERS
// =============================================================================

// money quantizes to the 2-decimal currency convention used everywhere in
// this package.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MustParseDecimal parses a decimal string, returning zero on failure.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
