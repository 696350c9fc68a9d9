package repository

import (
	"context"

	"github.com/hbnb/hbnb-api/internal/domain/entity"
)

// PlaceRepository defines the interface for place-related database operations.
// Delete cascades to the place's reviews and detaches its amenity links.
type PlaceRepository interface {
	Create(ctx context.Context, p *entity.Place) error
	GetByID(ctx context.Context, id string) (*entity.Place, error)
	GetByTitle(ctx context.Context, title string) (*entity.Place, error)
	List(ctx context.Context) ([]*entity.Place, error)
	Update(ctx context.Context, p *entity.Place) error
	Delete(ctx context.Context, id string) error
}
