package repository

import (
	"context"
	"database/sql"

	"github.com/julnac/salon-manager/backend/internal/domain"
)

func (r *Repository) GetAllServiceOffers(ctx context.Context) ([]*domain.ServiceOffer, error) {
	query := `
		SELECT id, name, price, duration_minutes, created_at, version
		FROM service_offers ORDER BY id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanServiceOffers(rows)
}

func (r *Repository) GetServiceOfferByID(ctx context.Context, id int64) (*domain.ServiceOffer, error) {
	query := `
		SELECT name, price, duration_minutes, created_at, version
		FROM service_offers WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	svc := &domain.ServiceOffer{
		ID: id,
	}

	dst := []any{&svc.Name, &svc.Price, &svc.DurationMinutes, &svc.CreatedAt, &svc.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return svc, nil
}

func (r *Repository) CreateServiceOffer(ctx context.Context, svc *domain.ServiceOffer) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO service_offers (name, price, duration_minutes)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	args := []any{svc.Name, svc.Price, svc.DurationMinutes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&svc.ID, &svc.CreatedAt, &svc.Version); err != nil {
		return err
	}

	return nil
}

// UpdateServiceOffer returns sql.ErrNoRows when the version has moved on since svc was read.
func (r *Repository) UpdateServiceOffer(ctx context.Context, svc *domain.ServiceOffer) error {
	query := `
		UPDATE service_offers
		SET
			name = $1,
			price = $2,
			duration_minutes = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{svc.Name, svc.Price, svc.DurationMinutes, svc.ID, svc.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&svc.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteServiceOffer(ctx context.Context, id int64) error {
	query := `
		DELETE FROM service_offers WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func scanServiceOffers(rows *sql.Rows) ([]*domain.ServiceOffer, error) {
	services := make([]*domain.ServiceOffer, 0)
	for rows.Next() {
		svc := &domain.ServiceOffer{}
		dst := []any{&svc.ID, &svc.Name, &svc.Price, &svc.DurationMinutes, &svc.CreatedAt, &svc.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}
