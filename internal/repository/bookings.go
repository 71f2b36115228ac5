package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/julnac/salon-manager/backend/internal/domain"
)

// BookingFilter narrows GetBookings; zero values mean "any".
type BookingFilter struct {
	StaffID int64
	Date    time.Time
}

func (r *Repository) GetBookings(ctx context.Context, filter BookingFilter) ([]*domain.Booking, error) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.StaffID != 0 {
		args = append(args, filter.StaffID)
		conditions = append(conditions, fmt.Sprintf("b.staff_id = $%d", len(args)))
	}
	if !filter.Date.IsZero() {
		args = append(args, filter.Date.Format(time.DateOnly))
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("b.start_time >= $%d::date AND b.start_time < $%d::date + INTERVAL '1 day'", n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			b.id,
			b.staff_id,
			b.user_id,
			b.start_time,
			b.end_time,
			b.status,
			b.total_price,
			b.created_at,
			COALESCE(array_agg(bs.service_offer_id ORDER BY bs.service_offer_id) FILTER (WHERE bs.service_offer_id IS NOT NULL), '{}')
		FROM bookings b
		LEFT JOIN booking_services bs ON bs.booking_id = b.id
		%s
		GROUP BY b.id
		ORDER BY b.start_time, b.id
	`, where)

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := pgtype.NewMap()
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b := &domain.Booking{}
		dst := []any{&b.ID, &b.StaffID, &b.UserID, &b.StartTime, &b.EndTime, &b.Status, &b.TotalPrice, &b.CreatedAt, m.SQLScanner(&b.ServiceIDs)}
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

// CreateBooking stores a booking together with its services in one transaction.
// Only the seed command writes bookings.
func (r *Repository) CreateBooking(ctx context.Context, b *domain.Booking) error {
	ctx, cancel := r.transactionContext(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO bookings (staff_id, user_id, start_time, end_time, status, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	args := []any{b.StaffID, b.UserID, b.StartTime, b.EndTime, b.Status, b.TotalPrice}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return err
	}

	query = `
		INSERT INTO booking_services (booking_id, service_offer_id)
		VALUES ($1, $2)
	`
	for _, serviceID := range b.ServiceIDs {
		if _, err := tx.ExecContext(ctx, query, b.ID, serviceID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
