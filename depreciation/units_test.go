package depreciation_test

import (
	"testing"
	"time"

	"github.com/warp/asset-register/depreciation"
)

// =============================================================================
// TOTAL UNITS
// =============================================================================

func TestTotalUnits_ZeroOrNegativeLife_IsZero(t *testing.T) {
	units := []depreciation.Unit{depreciation.UnitDay, depreciation.UnitMonth, depreciation.UnitYear}
	for _, period := range units {
		for _, computation := range units {
			if got := depreciation.TotalUnits(0, period, computation); got != 0 {
				t.Errorf("TotalUnits(0, %s, %s) = %d, want 0", period, computation, got)
			}
			if got := depreciation.TotalUnits(-3, period, computation); got != 0 {
				t.Errorf("TotalUnits(-3, %s, %s) = %d, want 0", period, computation, got)
			}
		}
	}
}

func TestTotalUnits_SameUnit_Identity(t *testing.T) {
	if got := depreciation.TotalUnits(12, depreciation.UnitMonth, depreciation.UnitMonth); got != 12 {
		t.Errorf("identity conversion = %d, want 12", got)
	}
	if got := depreciation.TotalUnits(7, depreciation.UnitYear, depreciation.UnitYear); got != 7 {
		t.Errorf("identity conversion = %d, want 7", got)
	}
}

func TestTotalUnits_FixedFactorConversion(t *testing.T) {
	cases := []struct {
		life        int
		period      depreciation.Unit
		computation depreciation.Unit
		want        int
	}{
		{1, depreciation.UnitYear, depreciation.UnitMonth, 12},  // 365/30 floored
		{1, depreciation.UnitYear, depreciation.UnitDay, 365},
		{12, depreciation.UnitMonth, depreciation.UnitDay, 360},
		{18, depreciation.UnitMonth, depreciation.UnitYear, 1}, // 540/365 floored
		{400, depreciation.UnitDay, depreciation.UnitYear, 1},
		{65, depreciation.UnitDay, depreciation.UnitMonth, 2},
	}
	for _, c := range cases {
		if got := depreciation.TotalUnits(c.life, c.period, c.computation); got != c.want {
			t.Errorf("TotalUnits(%d, %s, %s) = %d, want %d", c.life, c.period, c.computation, got, c.want)
		}
	}
}

// =============================================================================
// ELAPSED UNITS
// =============================================================================

func TestElapsedUnits_NoAccrualOnOrBeforeCapitalization(t *testing.T) {
	// GIVEN: An asset capitalized today
	// THEN: No depreciation accrues on the capitalization day itself
	cap := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	if got := depreciation.ElapsedUnits(cap, depreciation.UnitDay, cap); got != 0 {
		t.Errorf("elapsed on capitalization day = %d, want 0", got)
	}

	before := cap.AddDate(0, 0, -5)
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitDay, before); got != 0 {
		t.Errorf("elapsed before capitalization = %d, want 0", got)
	}

	if got := depreciation.ElapsedUnits(time.Time{}, depreciation.UnitMonth, cap); got != 0 {
		t.Errorf("elapsed with absent capitalization date = %d, want 0", got)
	}
}

func TestElapsedUnits_CalendarDelta(t *testing.T) {
	cap := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

	if got := depreciation.ElapsedUnits(cap, depreciation.UnitDay, today); got != 64 {
		t.Errorf("day delta = %d, want 64", got)
	}
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitMonth, today); got != 2 {
		t.Errorf("month delta = %d, want 2", got)
	}
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitYear, today); got != 0 {
		t.Errorf("year delta = %d, want 0", got)
	}

	threeYearsOn := time.Date(2028, time.June, 1, 0, 0, 0, 0, time.UTC)
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitYear, threeYearsOn); got != 3 {
		t.Errorf("year delta = %d, want 3", got)
	}
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitMonth, threeYearsOn); got != 40 {
		t.Errorf("month delta = %d, want 40", got)
	}
}

func TestElapsedUnits_MonthEndClamping(t *testing.T) {
	// GIVEN: Capitalized on the 31st
	// THEN: Jan 31 + 1 month clamps to Feb 28, so a full month has elapsed
	// by Feb 28 even though day 31 never arrives in February. Two months
	// have not elapsed until Mar 31.
	cap := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	feb27 := time.Date(2025, time.February, 27, 0, 0, 0, 0, time.UTC)
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitMonth, feb27); got != 0 {
		t.Errorf("Jan 31 -> Feb 27 = %d months, want 0", got)
	}

	feb28 := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitMonth, feb28); got != 1 {
		t.Errorf("Jan 31 -> Feb 28 = %d months, want 1", got)
	}

	mar1 := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitMonth, mar1); got != 1 {
		t.Errorf("Jan 31 -> Mar 1 = %d months, want 1", got)
	}

	mar30 := time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitMonth, mar30); got != 1 {
		t.Errorf("Jan 31 -> Mar 30 = %d months, want 1", got)
	}

	mar31 := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitMonth, mar31); got != 2 {
		t.Errorf("Jan 31 -> Mar 31 = %d months, want 2", got)
	}
}

func TestElapsedUnits_LeapDayCapitalization(t *testing.T) {
	// Feb 29 + 12 months clamps to Feb 28 of the following year, so a
	// whole year has elapsed by then.
	cap := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)

	feb28 := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitYear, feb28); got != 1 {
		t.Errorf("Feb 29 2024 -> Feb 28 2025 = %d years, want 1", got)
	}
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitMonth, feb28); got != 12 {
		t.Errorf("Feb 29 2024 -> Feb 28 2025 = %d months, want 12", got)
	}

	feb27 := time.Date(2025, time.February, 27, 0, 0, 0, 0, time.UTC)
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitYear, feb27); got != 0 {
		t.Errorf("Feb 29 2024 -> Feb 27 2025 = %d years, want 0", got)
	}
	if got := depreciation.ElapsedUnits(cap, depreciation.UnitMonth, feb27); got != 11 {
		t.Errorf("Feb 29 2024 -> Feb 27 2025 = %d months, want 11", got)
	}
}

func TestElapsedUnits_IgnoresTimeOfDay(t *testing.T) {
	cap := time.Date(2025, time.May, 1, 23, 45, 0, 0, time.UTC)
	nextMorning := time.Date(2025, time.May, 2, 0, 15, 0, 0, time.UTC)

	if got := depreciation.ElapsedUnits(cap, depreciation.UnitDay, nextMorning); got != 1 {
		t.Errorf("day delta across midnight = %d, want 1", got)
	}
}
