/*
units.go - Duration conversion between time units

PURPOSE:
  Converts a useful-life duration from its declared unit into the unit
  depreciation is computed per, and measures the elapsed calendar span
  since capitalization in that same unit.

THE ASYMMETRY (intentional):
  TotalUnits uses fixed day-length factors (YEAR=365, MONTH=30) with
  floor division. ElapsedUnits uses true calendar deltas (whole years,
  whole months, exact days). The two disagree for long spans; both are
  kept exactly as-is for result parity with the established figures.
  Do not "fix" this.

CLAMPING CONTRACT:
  Callers must clamp elapsed to min(elapsed, totalUnits) before handing
  it to a calculator. Calculators never re-clamp.
*/
package depreciation

import "time"

// TotalUnits converts a useful life expressed in period units into a count
// of computation units.
func TotalUnits(usefulLife int, period, computation Unit) int {
	if usefulLife <= 0 {
		return 0
	}
	if period == computation {
		return usefulLife
	}

	var totalDays int
	switch period {
	case UnitYear:
		totalDays = usefulLife * daysPerYear
	case UnitMonth:
		totalDays = usefulLife * daysPerMonth
	default: // DAY
		totalDays = usefulLife
	}

	switch computation {
	case UnitYear:
		return totalDays / daysPerYear
	case UnitMonth:
		return totalDays / daysPerMonth
	default: // DAY
		return totalDays
	}
}

// ElapsedUnits measures the calendar span between the capitalization date
// and today, in computation units. Depreciation begins accruing the day
// after capitalization, so a span of zero or less yields 0.
func ElapsedUnits(capitalization time.Time, computation Unit, today time.Time) int {
	if capitalization.IsZero() {
		return 0
	}

	start := dateOf(capitalization)
	now := dateOf(today)
	if !now.After(start) {
		return 0
	}

	switch computation {
	case UnitYear:
		years, _ := calendarDelta(start, now)
		return years
	case UnitMonth:
		years, months := calendarDelta(start, now)
		return years*12 + months
	default: // DAY
		return int(now.Sub(start).Hours() / 24)
	}
}

// dateOf truncates to a UTC calendar date. Capitalization timestamps carry
// a time-of-day upstream; only the date matters here.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// calendarDelta returns the whole years and remaining whole months between
// two dates. A month is whole once adding it to the start date lands on or
// before the end date, with the day-of-month clamped to the target month's
// last day: Jan 31 + 1 month is Feb 28, so Jan 31 -> Feb 28 is one whole
// month even though day 31 never arrives in February.
func calendarDelta(start, end time.Time) (years, months int) {
	total := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if total > 0 && addMonthsClamped(start, total).After(end) {
		total--
	}
	return total / 12, total % 12
}

// addMonthsClamped advances n calendar months, clamping the day to the
// target month's last day. time.AddDate would normalize Jan 31 + 1 month
// into March; month-end capitalization dates need the clamp.
func addMonthsClamped(t time.Time, n int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}
