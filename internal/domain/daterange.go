package domain

import (
	"fmt"
	"time"
)

// DateRange is an inclusive window between two instants.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange validates that start does not follow end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, fmt.Errorf("date range start must be before or equal to end")
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether the date falls inside the range, inclusive
// on both ends.
func (r DateRange) Contains(date time.Time) bool {
	return !date.Before(r.Start) && !date.After(r.End)
}

// Overlaps reports whether two ranges share at least one instant.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// DurationDays is the number of whole days spanned by the range.
func (r DateRange) DurationDays() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// ThisMonth returns the range covering the current calendar month.
func ThisMonth() DateRange {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return DateRange{Start: start, End: end}
}

// ThisYear returns the range covering the current calendar year.
func ThisYear() DateRange {
	now := time.Now()
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	return DateRange{Start: start, End: end}
}
