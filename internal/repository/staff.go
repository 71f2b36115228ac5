package repository

import (
	"context"
	"database/sql"

	"github.com/julnac/salon-manager/backend/internal/domain"
)

func (r *Repository) GetAllStaff(ctx context.Context) ([]*domain.Staff, error) {
	query := `
		SELECT id, first_name, last_name, email, created_at, version
		FROM staff ORDER BY id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStaff(rows)
}

func (r *Repository) GetStaffByID(ctx context.Context, id int64) (*domain.Staff, error) {
	query := `
		SELECT first_name, last_name, email, created_at, version
		FROM staff WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	member := &domain.Staff{
		ID: id,
	}

	dst := []any{&member.FirstName, &member.LastName, &member.Email, &member.CreatedAt, &member.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return member, nil
}

func (r *Repository) CreateStaff(ctx context.Context, member *domain.Staff) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO staff (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	args := []any{member.FirstName, member.LastName, member.Email}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&member.ID, &member.CreatedAt, &member.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateStaff(ctx context.Context, member *domain.Staff) error {
	query := `
		UPDATE staff
		SET
			first_name = $1,
			last_name = $2,
			email = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{member.FirstName, member.LastName, member.Email, member.ID, member.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&member.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteStaff(ctx context.Context, id int64) error {
	query := `
		DELETE FROM staff WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func scanStaff(rows *sql.Rows) ([]*domain.Staff, error) {
	staff := make([]*domain.Staff, 0)
	for rows.Next() {
		member := &domain.Staff{}
		dst := []any{&member.ID, &member.FirstName, &member.LastName, &member.Email, &member.CreatedAt, &member.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		staff = append(staff, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return staff, nil
}
