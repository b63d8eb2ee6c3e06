package holiday

import "time"

// FixedHoliday is a public holiday that falls on the same month/day every year.
type FixedHoliday struct {
	Month time.Month
	Day   int
}

// DefaultFixedHolidays is the Kenyan gazetted set.
var DefaultFixedHolidays = []FixedHoliday{
	{time.January, 1},   // New Year's Day
	{time.May, 1},       // Labour Day
	{time.June, 1},      // Madaraka Day
	{time.October, 20},  // Mashujaa Day
	{time.December, 12}, // Jamhuri Day
	{time.December, 25}, // Christmas Day
	{time.December, 26}, // Boxing Day
}

// Calendar computes the non-working public-holiday dates of a year. Holidays
// falling on a weekend are NOT shifted to the next weekday; whether they are
// observed later is a gazettement decision outside this system.
type Calendar struct {
	fixed []FixedHoliday
}

func NewCalendar(fixed ...FixedHoliday) *Calendar {
	if len(fixed) == 0 {
		fixed = DefaultFixedHolidays
	}
	return &Calendar{fixed: fixed}
}

// HolidaysForYear returns the public holidays of a year, keyed by midnight UTC.
// Deterministic and allocation-only; safe for concurrent use.
func (c *Calendar) HolidaysForYear(year int) map[time.Time]struct{} {
	holidays := make(map[time.Time]struct{}, len(c.fixed)+2)
	for _, f := range c.fixed {
		holidays[time.Date(year, f.Month, f.Day, 0, 0, 0, 0, time.UTC)] = struct{}{}
	}

	easter := EasterSunday(year)
	holidays[easter.AddDate(0, 0, -2)] = struct{}{} // Good Friday
	holidays[easter.AddDate(0, 0, 1)] = struct{}{}  // Easter Monday

	return holidays
}
