package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/domain/repository"
)

type AmenityRepository struct {
	pool *pgxpool.Pool
}

func NewAmenityRepository(pool *pgxpool.Pool) *AmenityRepository {
	return &AmenityRepository{pool: pool}
}

func (r *AmenityRepository) Create(ctx context.Context, a *entity.Amenity) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO amenities (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, a.ID, a.Name, a.CreatedAt, a.UpdatedAt)
	return mapError(err)
}

func (r *AmenityRepository) GetByID(ctx context.Context, id string) (*entity.Amenity, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at FROM amenities WHERE id = $1
	`, id))
}

func (r *AmenityRepository) List(ctx context.Context) ([]*entity.Amenity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at FROM amenities ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var amenities []*entity.Amenity
	for rows.Next() {
		a := &entity.Amenity{}
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		amenities = append(amenities, a)
	}
	return amenities, rows.Err()
}

func (r *AmenityRepository) Update(ctx context.Context, a *entity.Amenity) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE amenities SET name = $1, updated_at = $2 WHERE id = $3
	`, a.Name, a.UpdatedAt, a.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AmenityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM amenities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AmenityRepository) scanOne(row pgx.Row) (*entity.Amenity, error) {
	a := &entity.Amenity{}
	if err := row.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

var _ repository.AmenityRepository = (*AmenityRepository)(nil)
