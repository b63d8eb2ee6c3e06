package holiday_test

import (
	"testing"
	"time"

	"go-leave/internal/holiday"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEasterSunday(t *testing.T) {
	cases := map[int]time.Time{
		2000: date(2000, time.April, 23),
		2024: date(2024, time.March, 31),
		2025: date(2025, time.April, 20),
		2026: date(2026, time.April, 5),
		2030: date(2030, time.April, 21),
	}

	for year, want := range cases {
		assert.Equal(t, want, holiday.EasterSunday(year), "easter %d", year)
	}
}

func TestCalendar_HolidaysForYear(t *testing.T) {
	cal := holiday.NewCalendar()

	t.Run("contains fixed holidays", func(t *testing.T) {
		holidays := cal.HolidaysForYear(2026)

		assert.Contains(t, holidays, date(2026, time.January, 1))
		assert.Contains(t, holidays, date(2026, time.May, 1))
		assert.Contains(t, holidays, date(2026, time.June, 1))
		assert.Contains(t, holidays, date(2026, time.October, 20))
		assert.Contains(t, holidays, date(2026, time.December, 12))
		assert.Contains(t, holidays, date(2026, time.December, 25))
		assert.Contains(t, holidays, date(2026, time.December, 26))
	})

	t.Run("contains easter-derived holidays", func(t *testing.T) {
		holidays := cal.HolidaysForYear(2026)

		// Easter 2026 is April 5.
		assert.Contains(t, holidays, date(2026, time.April, 3), "good friday")
		assert.Contains(t, holidays, date(2026, time.April, 6), "easter monday")
		assert.Len(t, holidays, 9)
	})

	t.Run("weekend holidays do not shift", func(t *testing.T) {
		// Christmas 2027 falls on a Saturday.
		holidays := cal.HolidaysForYear(2027)

		assert.Contains(t, holidays, date(2027, time.December, 25))
		assert.NotContains(t, holidays, date(2027, time.December, 27))
	})

	t.Run("custom fixed set", func(t *testing.T) {
		custom := holiday.NewCalendar(holiday.FixedHoliday{Month: time.July, Day: 4})
		holidays := custom.HolidaysForYear(2026)

		assert.Contains(t, holidays, date(2026, time.July, 4))
		assert.NotContains(t, holidays, date(2026, time.December, 25))
		// Two easter holidays are always present.
		assert.Len(t, holidays, 3)
	})
}

func TestCalendar_CountWorkingDays(t *testing.T) {
	cal := holiday.NewCalendar()

	t.Run("plain working week", func(t *testing.T) {
		// Mon 2026-03-02 .. Fri 2026-03-06, no holidays in range.
		got := cal.CountWorkingDays(date(2026, time.March, 2), date(2026, time.March, 6), true)
		assert.Equal(t, 5, got)
	})

	t.Run("full span equals calendar days when nothing is excluded", func(t *testing.T) {
		got := cal.CountWorkingDays(date(2026, time.March, 2), date(2026, time.March, 6), false)
		assert.Equal(t, 5, got)
	})

	t.Run("weekend-only range with weekend exclusion", func(t *testing.T) {
		// Sat 2026-03-07 .. Sun 2026-03-08.
		got := cal.CountWorkingDays(date(2026, time.March, 7), date(2026, time.March, 8), true)
		assert.Equal(t, 0, got)
	})

	t.Run("weekend counts when weekends are included", func(t *testing.T) {
		got := cal.CountWorkingDays(date(2026, time.March, 7), date(2026, time.March, 8), false)
		assert.Equal(t, 2, got)
	})

	t.Run("holiday excluded regardless of weekend policy", func(t *testing.T) {
		// Mon 2026-04-27 .. Fri 2026-05-01; Labour Day lands on the Friday.
		got := cal.CountWorkingDays(date(2026, time.April, 27), date(2026, time.May, 1), true)
		assert.Equal(t, 4, got)

		got = cal.CountWorkingDays(date(2026, time.April, 27), date(2026, time.May, 1), false)
		assert.Equal(t, 4, got)
	})

	t.Run("spans year boundary", func(t *testing.T) {
		// Mon 2026-12-28 .. Mon 2027-01-04. New Year's Day 2027 is a Friday.
		got := cal.CountWorkingDays(date(2026, time.December, 28), date(2027, time.January, 4), true)
		assert.Equal(t, 5, got)
	})

	t.Run("inverted range", func(t *testing.T) {
		got := cal.CountWorkingDays(date(2026, time.March, 6), date(2026, time.March, 2), true)
		assert.Equal(t, 0, got)
	})

	t.Run("easter week", func(t *testing.T) {
		// Fri 2026-04-03 (Good Friday) .. Mon 2026-04-06 (Easter Monday).
		got := cal.CountWorkingDays(date(2026, time.April, 3), date(2026, time.April, 6), true)
		assert.Equal(t, 0, got)
	})
}
