package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/julnac/salon-manager/backend/internal/domain"
)

// The methods below make *Repository an availability.Store.

func (r *Repository) ResolveServices(ctx context.Context, ids []int64) ([]*domain.ServiceOffer, error) {
	query := `
		SELECT id, name, price, duration_minutes, created_at, version
		FROM service_offers WHERE id = ANY($1)
		ORDER BY id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanServiceOffers(rows)
}

func (r *Repository) FindStaffQualifiedForAll(ctx context.Context, ids []int64) ([]*domain.Staff, error) {
	query := `
		SELECT s.id, s.first_name, s.last_name, s.email, s.created_at, s.version
		FROM staff s
		JOIN staff_qualifications sq ON sq.staff_id = s.id
		WHERE sq.service_offer_id = ANY($1)
		GROUP BY s.id
		HAVING COUNT(DISTINCT sq.service_offer_id) = $2
		ORDER BY s.id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ids, len(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStaff(rows)
}

func (r *Repository) GetWorkSchedule(ctx context.Context, staffID int64, day time.Weekday) (*domain.WorkSchedule, bool, error) {
	ws, err := r.GetWorkScheduleByDay(ctx, staffID, domain.ISODay(day))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return ws, true, nil
}

func (r *Repository) GetActiveBookings(ctx context.Context, staffID int64, date time.Time) ([]*domain.Booking, error) {
	query := `
		SELECT id, staff_id, user_id, start_time, end_time, status, total_price, created_at
		FROM bookings
		WHERE staff_id = $1
			AND status <> 'CANCELLED'
			AND start_time >= $2::date
			AND start_time < $2::date + INTERVAL '1 day'
		ORDER BY start_time
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID, date.Format(time.DateOnly))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b := &domain.Booking{}
		dst := []any{&b.ID, &b.StaffID, &b.UserID, &b.StartTime, &b.EndTime, &b.Status, &b.TotalPrice, &b.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
