package depreciation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/asset-register/depreciation"
)

func fixedToday() time.Time {
	return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
}

func snapshot(method depreciation.Method, status depreciation.Status) depreciation.Snapshot {
	return depreciation.Snapshot{
		TotalAmount:        dec("12000"),
		ResidualValue:      dec("2000"),
		UsefulLife:         5,
		Period:             depreciation.UnitYear,
		Computation:        depreciation.UnitMonth,
		CapitalizationDate: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
		Method:             method,
		Status:             status,
	}
}

// =============================================================================
// CALCULATE
// =============================================================================

func TestCalculate_StraightLine_HalfLife(t *testing.T) {
	// GIVEN: 1 year life computed monthly, capitalized 6 months ago
	// THEN: total 12 units, elapsed 6, half the depreciable amount accrued
	result, err := depreciation.Calculate(depreciation.Input{
		Method:             depreciation.MethodStraightLine,
		TotalAmount:        dec("1200"),
		ResidualValue:      decimal.Zero,
		UsefulLife:         1,
		Period:             depreciation.UnitYear,
		Computation:        depreciation.UnitMonth,
		CapitalizationDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}, fixedToday())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalUnits != 12 {
		t.Errorf("total units = %d, want 12", result.TotalUnits)
	}
	if result.ElapsedUnits != 6 {
		t.Errorf("elapsed units = %d, want 6", result.ElapsedUnits)
	}
	if !result.AccumulatedDepreciation.Equal(dec("600.00")) {
		t.Errorf("accumulated = %s, want 600.00", result.AccumulatedDepreciation)
	}
	if !result.CurrentNBV.Equal(dec("600.00")) {
		t.Errorf("nbv = %s, want 600.00", result.CurrentNBV)
	}
}

func TestCalculate_ClampsElapsedToTotal(t *testing.T) {
	// Capitalized far beyond the useful life: elapsed caps at total units.
	result, err := depreciation.Calculate(depreciation.Input{
		Method:             depreciation.MethodStraightLine,
		TotalAmount:        dec("1000"),
		ResidualValue:      dec("100"),
		UsefulLife:         2,
		Period:             depreciation.UnitYear,
		Computation:        depreciation.UnitYear,
		CapitalizationDate: time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC),
	}, fixedToday())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ElapsedUnits != 2 {
		t.Errorf("elapsed units = %d, want 2 (clamped)", result.ElapsedUnits)
	}
	if !result.CurrentNBV.Equal(dec("100.00")) {
		t.Errorf("nbv = %s, want 100.00", result.CurrentNBV)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	// Pure function of inputs + today: two runs agree exactly.
	in := depreciation.Input{
		Method:             depreciation.MethodReducingBalance,
		TotalAmount:        dec("50000"),
		ResidualValue:      dec("5000"),
		UsefulLife:         4,
		Period:             depreciation.UnitYear,
		Computation:        depreciation.UnitMonth,
		CapitalizationDate: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
	}

	first, err := depreciation.Calculate(in, fixedToday())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := depreciation.Calculate(in, fixedToday())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.AccumulatedDepreciation.Equal(second.AccumulatedDepreciation) ||
		!first.CurrentNBV.Equal(second.CurrentNBV) ||
		first.ElapsedUnits != second.ElapsedUnits {
		t.Errorf("calculation not idempotent: %+v vs %+v", first, second)
	}
}

// =============================================================================
// CURRENT NBV
// =============================================================================

func TestCurrentNBV_NoDepreciationStatus_ReturnsTotalAmount(t *testing.T) {
	for _, method := range []depreciation.Method{
		depreciation.MethodStraightLine,
		depreciation.MethodReducingBalance,
		depreciation.MethodDoubleDeclining,
	} {
		snap := snapshot(method, depreciation.StatusNoDepreciation)
		nbv, err := depreciation.CurrentNBV(snap, fixedToday())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		if !nbv.Equal(dec("12000.00")) {
			t.Errorf("%s: nbv = %s, want 12000.00", method, nbv)
		}
	}
}

func TestCurrentNBV_TotalAtOrBelowResidual_ReturnsResidual(t *testing.T) {
	snap := snapshot(depreciation.MethodStraightLine, depreciation.StatusReadyToUse)
	snap.TotalAmount = dec("1500")
	snap.ResidualValue = dec("2000")

	nbv, err := depreciation.CurrentNBV(snap, fixedToday())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nbv.Equal(dec("2000.00")) {
		t.Errorf("nbv = %s, want 2000.00", nbv)
	}
}

func TestCurrentNBV_NeverBelowResidual(t *testing.T) {
	// Double-declining front-loads heavily; the floor still holds.
	for _, method := range []depreciation.Method{
		depreciation.MethodStraightLine,
		depreciation.MethodReducingBalance,
		depreciation.MethodDoubleDeclining,
	} {
		snap := snapshot(method, depreciation.StatusReadyToUse)
		snap.CapitalizationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

		nbv, err := depreciation.CurrentNBV(snap, fixedToday())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		if nbv.LessThan(snap.ResidualValue) {
			t.Errorf("%s: nbv %s below residual %s", method, nbv, snap.ResidualValue)
		}
	}
}

func TestStatusIs_CaseInsensitive(t *testing.T) {
	if !depreciation.Status("ready to use").Is(depreciation.StatusReadyToUse) {
		t.Error("lowercase status should match")
	}
	if depreciation.Status("Finished").Is(depreciation.StatusReadyToUse) {
		t.Error("different statuses must not match")
	}
}
