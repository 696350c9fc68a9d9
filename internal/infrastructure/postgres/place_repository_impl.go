package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/domain/repository"
)

type PlaceRepository struct {
	pool *pgxpool.Pool
}

func NewPlaceRepository(pool *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{pool: pool}
}

func (r *PlaceRepository) Create(ctx context.Context, p *entity.Place) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO places (id, title, description, price, latitude, longitude, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.OwnerID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	if err := insertAmenityLinks(ctx, tx, p.ID, p.AmenityIDs); err != nil {
		return mapError(err)
	}
	return tx.Commit(ctx)
}

func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	p, err := r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, title, description, price, latitude, longitude, owner_id, created_at, updated_at
		FROM places
		WHERE id = $1
	`, id))
	if err != nil {
		return nil, err
	}
	ids, err := r.amenityIDs(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.SetAmenityIDs(ids)
	return p, nil
}

func (r *PlaceRepository) GetByTitle(ctx context.Context, title string) (*entity.Place, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, title, description, price, latitude, longitude, owner_id, created_at, updated_at
		FROM places
		WHERE title = $1
	`, title))
}

func (r *PlaceRepository) List(ctx context.Context) ([]*entity.Place, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, price, latitude, longitude, owner_id, created_at, updated_at
		FROM places
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []*entity.Place
	for rows.Next() {
		p := &entity.Place{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude,
			&p.Longitude, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range places {
		ids, err := r.amenityIDs(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.SetAmenityIDs(ids)
	}
	return places, nil
}

func (r *PlaceRepository) Update(ctx context.Context, p *entity.Place) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE places
		SET title = $1, description = $2, price = $3, latitude = $4, longitude = $5, owner_id = $6, updated_at = $7
		WHERE id = $8
	`, p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.OwnerID, p.UpdatedAt, p.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM place_amenities WHERE place_id = $1`, p.ID); err != nil {
		return err
	}
	if err := insertAmenityLinks(ctx, tx, p.ID, p.AmenityIDs); err != nil {
		return mapError(err)
	}
	return tx.Commit(ctx)
}

// Delete removes the place; reviews and amenity links go via ON DELETE CASCADE.
func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlaceRepository) amenityIDs(ctx context.Context, placeID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT amenity_id FROM place_amenities WHERE place_id = $1
	`, placeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func insertAmenityLinks(ctx context.Context, tx pgx.Tx, placeID string, amenityIDs []string) error {
	for _, aid := range amenityIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO place_amenities (place_id, amenity_id) VALUES ($1, $2)
		`, placeID, aid); err != nil {
			return err
		}
	}
	return nil
}

func (r *PlaceRepository) scanOne(row pgx.Row) (*entity.Place, error) {
	p := &entity.Place{}
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude,
		&p.Longitude, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

var _ repository.PlaceRepository = (*PlaceRepository)(nil)
