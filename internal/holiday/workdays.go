package holiday

import "time"

// CountWorkingDays counts the billable leave days in [start, end] inclusive.
// Public holidays never count. Saturdays and Sundays are excluded only when
// excludeWeekends is set. Returns 0 when start is after end.
//
// Ranges may span year boundaries; the holiday set is resolved once per
// distinct year touched by the range.
func (c *Calendar) CountWorkingDays(start, end time.Time, excludeWeekends bool) int {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if start.After(end) {
		return 0
	}

	holidays := c.HolidaysForYear(start.Year())
	for year := start.Year() + 1; year <= end.Year(); year++ {
		for d := range c.HolidaysForYear(year) {
			holidays[d] = struct{}{}
		}
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if excludeWeekends && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) {
			continue
		}
		if _, ok := holidays[d]; ok {
			continue
		}
		days++
	}

	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
