package availability

import (
	"context"
	"slices"
	"time"

	"github.com/julnac/salon-manager/backend/internal/domain"
)

// Snapshot is an in-memory Store over a fixed set of records. It is safe for concurrent
// reads as long as nobody modifies its slices while a query runs.
type Snapshot struct {
	Services       []*domain.ServiceOffer
	Staff          []*domain.Staff
	Qualifications []domain.Qualification
	Schedules      []*domain.WorkSchedule
	Bookings       []*domain.Booking
}

func (s *Snapshot) ResolveServices(ctx context.Context, ids []int64) ([]*domain.ServiceOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	services := make([]*domain.ServiceOffer, 0, len(ids))
	for _, svc := range s.Services {
		if slices.Contains(ids, svc.ID) {
			services = append(services, svc)
		}
	}
	return services, nil
}

// FindStaffQualifiedForAll keeps the order of the Staff slice.
func (s *Snapshot) FindStaffQualifiedForAll(ctx context.Context, ids []int64) ([]*domain.Staff, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	qualified := QualifiedForAll(s.Qualifications, ids)
	staff := make([]*domain.Staff, 0, len(qualified))
	for _, member := range s.Staff {
		if slices.Contains(qualified, member.ID) {
			staff = append(staff, member)
		}
	}
	return staff, nil
}

func (s *Snapshot) GetWorkSchedule(ctx context.Context, staffID int64, day time.Weekday) (*domain.WorkSchedule, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	isoDay := domain.ISODay(day)
	for _, ws := range s.Schedules {
		if ws.StaffID == staffID && ws.DayOfWeek == isoDay {
			return ws, true, nil
		}
	}
	return nil, false, nil
}

func (s *Snapshot) GetActiveBookings(ctx context.Context, staffID int64, date time.Time) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	day := wallDate(date)
	bookings := make([]*domain.Booking, 0)
	for _, b := range s.Bookings {
		if b.StaffID != staffID || !b.IsActive() {
			continue
		}
		if wallDate(b.StartTime).Equal(day) {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}
