package domain

import (
	"errors"
	"time"
)

// ErrInvalidTimeRange is returned when a range does not end after it starts
var ErrInvalidTimeRange = errors.New("domain: end time must be after start time")

// TimeRange is an immutable half-open UTC interval [start, end)
type TimeRange struct {
	start time.Time
	end   time.Time
}

// NewTimeRange normalizes both bounds to UTC and validates end > start
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	s, e := start.UTC(), end.UTC()
	if !e.After(s) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{start: s, end: e}, nil
}

// DayRange returns the [00:00, 24:00) UTC window of the calendar day containing t
func DayRange(t time.Time) TimeRange {
	start := StartOfDayUTC(t)
	return TimeRange{start: start, end: start.Add(24 * time.Hour)}
}

// StartOfDayUTC truncates t to midnight of its UTC calendar day
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (r TimeRange) Start() time.Time { return r.start }
func (r TimeRange) End() time.Time   { return r.end }

// IsZero reports whether the range was never initialized
func (r TimeRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

// Duration returns end - start
func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// Hours returns the length of the range in hours
func (r TimeRange) Hours() float64 {
	return r.Duration().Hours()
}

// Overlaps is the strict half-open intersection test.
// Adjacent ranges ([10:00,11:00) and [11:00,12:00)) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

// OverlapDuration clamps the range to [windowStart, windowEnd) and returns the
// length of the intersection, or zero when they are disjoint
func (r TimeRange) OverlapDuration(windowStart, windowEnd time.Time) time.Duration {
	start := r.start
	if windowStart.After(start) {
		start = windowStart
	}
	end := r.end
	if windowEnd.Before(end) {
		end = windowEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// Equal reports whether both bounds are the same instants
func (r TimeRange) Equal(other TimeRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}
