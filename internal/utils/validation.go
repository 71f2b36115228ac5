package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julnac/salon-manager/backend/internal/domain"
)

// ValidateWorkSchedule checks the day number and, for working days, that the hours form a
// non-empty window. Non-working days only need well-formed times.
func ValidateWorkSchedule(ws *domain.WorkSchedule) error {
	if ws.DayOfWeek < 1 || ws.DayOfWeek > 7 {
		return fmt.Errorf("day of week %d is out of range 1-7", ws.DayOfWeek)
	}

	startTime, err := time.Parse(domain.TimeLayout, ws.StartTime)
	if err != nil {
		return errors.New("start time must use the HH:MM:SS format")
	}
	endTime, err := time.Parse(domain.TimeLayout, ws.EndTime)
	if err != nil {
		return errors.New("end time must use the HH:MM:SS format")
	}

	if ws.IsWorkingDay && !endTime.After(startTime) {
		return errors.New("end time must be after start time on a working day")
	}

	return nil
}

const passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

// IsStrongPassword requires at least one uppercase letter and one special character.
func IsStrongPassword(password string) bool {
	return strings.ToLower(password) != password && strings.ContainsAny(password, passwordSpecialChars)
}
