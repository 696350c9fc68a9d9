package repository

import (
	"context"

	"github.com/hbnb/hbnb-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Delete cascades to the user's places and reviews.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
