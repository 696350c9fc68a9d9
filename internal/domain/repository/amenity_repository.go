package repository

import (
	"context"

	"github.com/hbnb/hbnb-api/internal/domain/entity"
)

// AmenityRepository defines the interface for amenity-related database operations.
type AmenityRepository interface {
	Create(ctx context.Context, a *entity.Amenity) error
	GetByID(ctx context.Context, id string) (*entity.Amenity, error)
	List(ctx context.Context) ([]*entity.Amenity, error)
	Update(ctx context.Context, a *entity.Amenity) error
	Delete(ctx context.Context, id string) error
}
