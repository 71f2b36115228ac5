package repository

import (
	"context"
	"database/sql"

	"github.com/julnac/salon-manager/backend/internal/domain"
)

// times are read through to_char so they come back in domain.TimeLayout
const workScheduleColumns = `
	id,
	staff_id,
	day_of_week,
	to_char(start_time, 'HH24:MI:SS'),
	to_char(end_time, 'HH24:MI:SS'),
	is_working_day
`

func (r *Repository) GetWorkSchedulesByStaffID(ctx context.Context, staffID int64) ([]*domain.WorkSchedule, error) {
	query := `SELECT` + workScheduleColumns + `FROM work_schedules WHERE staff_id = $1 ORDER BY day_of_week`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.WorkSchedule, 0, 7)
	for rows.Next() {
		ws := &domain.WorkSchedule{}
		if err := rows.Scan(workScheduleDst(ws)...); err != nil {
			return nil, err
		}
		schedules = append(schedules, ws)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *Repository) GetWorkScheduleByDay(ctx context.Context, staffID int64, day int32) (*domain.WorkSchedule, error) {
	query := `SELECT` + workScheduleColumns + `FROM work_schedules WHERE staff_id = $1 AND day_of_week = $2`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	ws := &domain.WorkSchedule{}
	if err := r.dbpool.QueryRowContext(ctx, query, staffID, day).Scan(workScheduleDst(ws)...); err != nil {
		return nil, err
	}

	return ws, nil
}

// UpsertWorkSchedule keeps at most one entry per staff member and day.
func (r *Repository) UpsertWorkSchedule(ctx context.Context, ws *domain.WorkSchedule) error {
	query := `
		INSERT INTO work_schedules (staff_id, day_of_week, start_time, end_time, is_working_day)
		VALUES ($1, $2, $3::time, $4::time, $5)
		ON CONFLICT ON CONSTRAINT work_schedules_staff_day_key DO UPDATE
		SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_working_day = EXCLUDED.is_working_day
		RETURNING id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{ws.StaffID, ws.DayOfWeek, ws.StartTime, ws.EndTime, ws.IsWorkingDay}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ws.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWorkSchedule(ctx context.Context, staffID int64, day int32) error {
	query := `
		DELETE FROM work_schedules WHERE staff_id = $1 AND day_of_week = $2
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, staffID, day)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func workScheduleDst(ws *domain.WorkSchedule) []any {
	return []any{&ws.ID, &ws.StaffID, &ws.DayOfWeek, &ws.StartTime, &ws.EndTime, &ws.IsWorkingDay}
}
