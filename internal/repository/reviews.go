package repository

import (
	"context"
	"database/sql"

	"github.com/julnac/salon-manager/backend/internal/domain"
)

// GetAllReviews lists the newest reviews first.
func (r *Repository) GetAllReviews(ctx context.Context) ([]*domain.Review, error) {
	query := `
		SELECT r.id, r.content, r.created_at, r.user_id, u.first_name || ' ' || u.last_name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC, r.id DESC
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReviews(rows)
}

func (r *Repository) GetReviewByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `
		SELECT r.content, r.created_at, r.user_id, u.first_name || ' ' || u.last_name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	review := &domain.Review{
		ID: id,
	}

	dst := []any{&review.Content, &review.CreatedAt, &review.UserID, &review.UserName}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return review, nil
}

// CreateReview fails on reviews_user_id_fkey when the author does not exist.
func (r *Repository) CreateReview(ctx context.Context, review *domain.Review) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		WITH inserted AS (
			INSERT INTO reviews (user_id, content)
			VALUES ($1, $2)
			RETURNING id, created_at, user_id
		)
		SELECT i.id, i.created_at, u.first_name || ' ' || u.last_name
		FROM inserted i
		JOIN users u ON u.id = i.user_id
	`

	dst := []any{&review.ID, &review.CreatedAt, &review.UserName}
	if err := r.dbpool.QueryRowContext(ctx, query, review.UserID, review.Content).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// DeleteReview returns sql.ErrNoRows when there is nothing to delete.
func (r *Repository) DeleteReview(ctx context.Context, id int64) error {
	query := `
		DELETE FROM reviews WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
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

func scanReviews(rows *sql.Rows) ([]*domain.Review, error) {
	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review := &domain.Review{}
		dst := []any{&review.ID, &review.Content, &review.CreatedAt, &review.UserID, &review.UserName}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}
