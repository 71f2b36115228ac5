package domain

import "time"

// TimeLayout is the wall-clock format schedules are stored and exchanged in.
const TimeLayout = "15:04:05"

// WorkSchedule is a staff member's working hours for one day of the week.
// DayOfWeek follows ISO numbering: 1 is Monday, 7 is Sunday.
type WorkSchedule struct {
	ID           int64  `json:"id"`
	StaffID      int64  `json:"staffId"`
	DayOfWeek    int32  `json:"dayOfWeek"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	IsWorkingDay bool   `json:"isWorkingDay"`
}

func ISODay(wd time.Weekday) int32 {
	if wd == time.Sunday {
		return 7
	}
	return int32(wd)
}
