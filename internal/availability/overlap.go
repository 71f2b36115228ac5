package availability

import (
	"time"

	"github.com/julnac/salon-manager/backend/internal/domain"
)

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps treats both intervals as half-open, so touching endpoints do not overlap.
func Overlaps(start, end, otherStart, otherEnd time.Time) bool {
	return start.Before(otherEnd) && end.After(otherStart)
}

// BusyIntervals converts the non-cancelled bookings into wall-clock intervals.
func BusyIntervals(bookings []*domain.Booking) []Interval {
	busy := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		busy = append(busy, Interval{Start: wallClock(b.StartTime), End: wallClock(b.EndTime)})
	}
	return busy
}

// IsFree reports whether [start, start+neededMinutes) collides with none of the busy intervals.
func IsFree(start time.Time, neededMinutes int, busy []Interval) bool {
	end := start.Add(time.Duration(neededMinutes) * time.Minute)
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return false
		}
	}
	return true
}

// wallClock keeps the calendar fields of t and drops its zone. Schedules and bookings
// are wall-clock values in the salon's single timezone.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func wallDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
