package repository

import (
	"context"
	"database/sql"

	"github.com/julnac/salon-manager/backend/internal/domain"
)

func (r *Repository) GetQualificationsByStaffID(ctx context.Context, staffID int64) ([]*domain.Qualification, error) {
	query := `
		SELECT
			sq.id,
			sq.staff_id,
			s.first_name || ' ' || s.last_name,
			sq.service_offer_id,
			so.name,
			sq.experience_years
		FROM staff_qualifications sq
		JOIN staff s ON s.id = sq.staff_id
		JOIN service_offers so ON so.id = sq.service_offer_id
		WHERE sq.staff_id = $1
		ORDER BY sq.service_offer_id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quals := make([]*domain.Qualification, 0)
	for rows.Next() {
		q := &domain.Qualification{}
		dst := []any{&q.ID, &q.StaffID, &q.StaffName, &q.ServiceID, &q.ServiceName, &q.ExperienceYears}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		quals = append(quals, q)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return quals, nil
}

func (r *Repository) CreateQualification(ctx context.Context, q *domain.Qualification) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO staff_qualifications (staff_id, service_offer_id, experience_years)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.dbpool.QueryRowContext(ctx, query, q.StaffID, q.ServiceID, q.ExperienceYears).Scan(&q.ID); err != nil {
		return err
	}

	return nil
}

// DeleteQualification returns sql.ErrNoRows when the staff member had no such qualification.
func (r *Repository) DeleteQualification(ctx context.Context, staffID, serviceID int64) error {
	query := `
		DELETE FROM staff_qualifications WHERE staff_id = $1 AND service_offer_id = $2
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, staffID, serviceID)
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
