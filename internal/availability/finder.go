package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/julnac/salon-manager/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidRequest  = errors.New("invalid availability request")
	ErrServiceNotFound = errors.New("one or more services not found")
)

// Store is the read-only data the finder works on. Implementations must return
// bookings and schedules as salon wall-clock values.
type Store interface {
	// ResolveServices returns the existing services among ids; unknown ids are simply absent.
	ResolveServices(ctx context.Context, ids []int64) ([]*domain.ServiceOffer, error)
	// FindStaffQualifiedForAll returns staff members qualified for every id.
	FindStaffQualifiedForAll(ctx context.Context, ids []int64) ([]*domain.Staff, error)
	// GetWorkSchedule reports found=false when no entry exists for the weekday.
	GetWorkSchedule(ctx context.Context, staffID int64, day time.Weekday) (ws *domain.WorkSchedule, found bool, err error)
	// GetActiveBookings returns the non-cancelled bookings starting on date.
	GetActiveBookings(ctx context.Context, staffID int64, date time.Time) ([]*domain.Booking, error)
}

type StaffAvailability struct {
	StaffID   int64       `json:"staffId"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Slots     []time.Time `json:"availableSlots"`
}

type Result struct {
	Date                 time.Time           `json:"date"`
	TotalDurationMinutes int                 `json:"totalDurationMinutes"`
	Staff                []StaffAvailability `json:"staff"`
}

type Options struct {
	SlotGranularityMinutes int
	// Concurrency bounds how many staff members are evaluated at once.
	Concurrency int
	// Location decides what "today" is when rejecting past dates.
	Location *time.Location
	Now      func() time.Time
	Logger   *slog.Logger
}

type Finder struct {
	store       Store
	granularity int
	concurrency int
	location    *time.Location
	now         func() time.Time
	logger      *slog.Logger
}

func NewFinder(store Store, opts Options) (*Finder, error) {
	if store == nil {
		return nil, errors.New("availability: store is required")
	}
	if opts.SlotGranularityMinutes <= 0 {
		return nil, fmt.Errorf("availability: slot granularity must be positive, got %d", opts.SlotGranularityMinutes)
	}

	f := &Finder{
		store:       store,
		granularity: opts.SlotGranularityMinutes,
		concurrency: opts.Concurrency,
		location:    opts.Location,
		now:         opts.Now,
		logger:      opts.Logger,
	}
	if f.concurrency <= 0 {
		f.concurrency = 1
	}
	if f.location == nil {
		f.location = time.UTC
	}
	if f.now == nil {
		f.now = time.Now
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f, nil
}

// FindAvailableSlots computes, for every staff member qualified for all serviceIDs, the start
// times on date at which the whole bundle fits into their working hours without touching an
// existing booking. Staff members without a single candidate are left out.
func (f *Finder) FindAvailableSlots(ctx context.Context, date time.Time, serviceIDs []int64) (*Result, error) {
	day, ids, err := f.validate(date, serviceIDs)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("finding available slots", "date", day.Format(time.DateOnly), "serviceIDs", ids)

	services, err := f.store.ResolveServices(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve services: %w", err)
	}
	if len(services) != len(ids) {
		return nil, fmt.Errorf("%w: requested %d, found %d", ErrServiceNotFound, len(ids), len(services))
	}

	total := TotalDuration(services)
	needed := NeededMinutes(total, f.granularity)

	staff, err := f.store.FindStaffQualifiedForAll(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find qualified staff: %w", err)
	}
	f.logger.Debug("qualified staff found", "count", len(staff), "totalMinutes", total, "neededMinutes", needed)

	result := &Result{
		Date:                 day,
		TotalDurationMinutes: total,
		Staff:                make([]StaffAvailability, 0, len(staff)),
	}
	if len(staff) == 0 {
		return result, nil
	}

	// each goroutine owns one index, so the output keeps the qualification order
	entries := make([]*StaffAvailability, len(staff))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, member := range staff {
		g.Go(func() error {
			entry, err := f.staffAvailability(gctx, member, day, needed)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry != nil {
			result.Staff = append(result.Staff, *entry)
		}
	}

	f.logger.Debug("availability computed", "date", day.Format(time.DateOnly), "staffWithSlots", len(result.Staff))

	return result, nil
}

func (f *Finder) validate(date time.Time, serviceIDs []int64) (time.Time, []int64, error) {
	if date.IsZero() {
		return time.Time{}, nil, fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}

	day := wallDate(date)
	today := wallDate(f.now().In(f.location))
	if day.Before(today) {
		return time.Time{}, nil, fmt.Errorf("%w: cannot search for dates in the past", ErrInvalidRequest)
	}

	if len(serviceIDs) == 0 {
		return time.Time{}, nil, fmt.Errorf("%w: service ids cannot be empty", ErrInvalidRequest)
	}

	// the ids form a set; repeated ids do not add duration
	ids := make([]int64, 0, len(serviceIDs))
	seen := make(map[int64]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		if id <= 0 {
			return time.Time{}, nil, fmt.Errorf("%w: invalid service id %d", ErrInvalidRequest, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return day, ids, nil
}

// staffAvailability evaluates one staff member. needed is the bundle length already rounded
// up to the grid.
func (f *Finder) staffAvailability(ctx context.Context, member *domain.Staff, day time.Time, needed int) (*StaffAvailability, error) {
	ws, found, err := f.store.GetWorkSchedule(ctx, member.ID, day.Weekday())
	if err != nil {
		return nil, fmt.Errorf("get work schedule of staff %d: %w", member.ID, err)
	}
	if !found {
		f.logger.Debug("staff has no schedule for the day", "staffID", member.ID, "day", day.Weekday())
		return nil, nil
	}

	window, ok, err := ResolveWorkWindow(ws, day)
	if err != nil {
		f.logger.Warn("ignoring malformed work schedule", "staffID", member.ID, "error", err)
		return nil, nil
	}
	if !ok {
		f.logger.Debug("staff does not work on the day", "staffID", member.ID, "day", day.Weekday())
		return nil, nil
	}

	candidates := slotGrid(window.Start, window.End, needed, f.granularity)
	if len(candidates) == 0 {
		return nil, nil
	}

	bookings, err := f.store.GetActiveBookings(ctx, member.ID, day)
	if err != nil {
		return nil, fmt.Errorf("get bookings of staff %d: %w", member.ID, err)
	}
	busy := BusyIntervals(bookings)

	free := make([]time.Time, 0, len(candidates))
	for _, start := range candidates {
		if IsFree(start, needed, busy) {
			free = append(free, start)
		}
	}
	if len(free) == 0 {
		f.logger.Debug("no free slots left", "staffID", member.ID, "bookings", len(busy))
		return nil, nil
	}

	return &StaffAvailability{
		StaffID:   member.ID,
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Email:     member.Email,
		Slots:     free,
	}, nil
}
