package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/domain/repository"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *entity.Review) error {
	// The unique (user_id, place_id) constraint backs the one-review-per-place
	// invariant against concurrent inserts.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reviews (id, text, rating, user_id, place_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rev.ID, rev.Text, rev.Rating, rev.UserID, rev.PlaceID, rev.CreatedAt, rev.UpdatedAt)
	return mapError(err)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, text, rating, user_id, place_id, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`, id))
}

func (r *ReviewRepository) GetByUserAndPlace(ctx context.Context, userID, placeID string) (*entity.Review, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, text, rating, user_id, place_id, created_at, updated_at
		FROM reviews
		WHERE user_id = $1 AND place_id = $2
	`, userID, placeID))
}

func (r *ReviewRepository) List(ctx context.Context) ([]*entity.Review, error) {
	return r.query(ctx, `
		SELECT id, text, rating, user_id, place_id, created_at, updated_at
		FROM reviews
		ORDER BY created_at
	`)
}

func (r *ReviewRepository) ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error) {
	return r.query(ctx, `
		SELECT id, text, rating, user_id, place_id, created_at, updated_at
		FROM reviews
		WHERE place_id = $1
		ORDER BY created_at
	`, placeID)
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Review, error) {
	return r.query(ctx, `
		SELECT id, text, rating, user_id, place_id, created_at, updated_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
}

func (r *ReviewRepository) Update(ctx context.Context, rev *entity.Review) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE reviews SET text = $1, rating = $2, updated_at = $3 WHERE id = $4
	`, rev.Text, rev.Rating, rev.UpdatedAt, rev.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) query(ctx context.Context, sql string, args ...any) ([]*entity.Review, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		rev := &entity.Review{}
		if err := rows.Scan(&rev.ID, &rev.Text, &rev.Rating, &rev.UserID, &rev.PlaceID,
			&rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) scanOne(row pgx.Row) (*entity.Review, error) {
	rev := &entity.Review{}
	if err := row.Scan(&rev.ID, &rev.Text, &rev.Rating, &rev.UserID, &rev.PlaceID,
		&rev.CreatedAt, &rev.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return rev, nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
