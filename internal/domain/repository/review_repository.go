package repository

import (
	"context"

	"github.com/hbnb/hbnb-api/internal/domain/entity"
)

// ReviewRepository defines the interface for review-related database operations.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByUserAndPlace(ctx context.Context, userID, placeID string) (*entity.Review, error)
	List(ctx context.Context) ([]*entity.Review, error)
	ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Review, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
}
