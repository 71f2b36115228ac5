package availability

import (
	"fmt"
	"time"

	"github.com/julnac/salon-manager/backend/internal/domain"
)

type WorkWindow struct {
	Start time.Time
	End   time.Time
}

// ResolveWorkWindow anchors a weekly schedule entry on date. ok is false when the staff
// member does not work that day: no entry, a non-working entry, or an entry for another weekday.
func ResolveWorkWindow(ws *domain.WorkSchedule, date time.Time) (WorkWindow, bool, error) {
	if ws == nil || !ws.IsWorkingDay {
		return WorkWindow{}, false, nil
	}
	if ws.DayOfWeek != domain.ISODay(date.Weekday()) {
		return WorkWindow{}, false, nil
	}

	start, err := ClockOn(date, ws.StartTime)
	if err != nil {
		return WorkWindow{}, false, fmt.Errorf("schedule %d start time: %w", ws.ID, err)
	}
	end, err := ClockOn(date, ws.EndTime)
	if err != nil {
		return WorkWindow{}, false, fmt.Errorf("schedule %d end time: %w", ws.ID, err)
	}
	if !end.After(start) {
		return WorkWindow{}, false, fmt.Errorf("schedule %d ends at %s, not after %s", ws.ID, ws.EndTime, ws.StartTime)
	}

	return WorkWindow{Start: start, End: end}, true, nil
}

// ClockOn places a "15:04:05" wall-clock time on the calendar day of date.
func ClockOn(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(domain.TimeLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}
