package application

import "time"

// DateRange is an inclusive day span. Ranges that share even a single day
// overlap; an employee cannot be on two leaves the same day, and a duty cover
// cannot be away on any day they are covering.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !r.End.Before(o.Start)
}

func AnyOverlap(r DateRange, ranges []DateRange) bool {
	for _, o := range ranges {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}
