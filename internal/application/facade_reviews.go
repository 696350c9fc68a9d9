package application

import (
	"context"
	"errors"

	"github.com/hbnb/hbnb-api/internal/apperr"
	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/domain/repository"
)

type CreateReviewInput struct {
	Text    string
	Rating  int
	UserID  string
	PlaceID string
}

type UpdateReviewInput struct {
	Text   *string
	Rating *int
}

// CreateReview checks that author and place exist and that the author has not
// already reviewed the place. The own-place conflict-of-interest rule is
// authorization and is enforced by the handler before this is called.
func (f *Facade) CreateReview(ctx context.Context, in CreateReviewInput) (*entity.Review, error) {
	r, err := entity.NewReview(in.Text, in.Rating, in.UserID, in.PlaceID)
	if err != nil {
		return nil, err
	}
	if _, err := f.Users.GetByID(ctx, r.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	if _, err := f.Places.GetByID(ctx, r.PlaceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("place not found")
		}
		return nil, err
	}
	if existing, err := f.Reviews.GetByUserAndPlace(ctx, r.UserID, r.PlaceID); err == nil {
		return nil, apperr.Conflict("place already reviewed by this user (review %s)", existing.ID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err := f.Reviews.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("place already reviewed by this user")
		}
		return nil, err
	}
	return r, nil
}

func (f *Facade) GetReview(ctx context.Context, id string) (*entity.Review, error) {
	r, err := f.Reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, err
	}
	return r, nil
}

func (f *Facade) ListReviews(ctx context.Context) ([]*entity.Review, error) {
	return f.Reviews.List(ctx)
}

func (f *Facade) ListReviewsByPlace(ctx context.Context, placeID string) ([]*entity.Review, error) {
	if _, err := f.GetPlace(ctx, placeID); err != nil {
		return nil, err
	}
	return f.Reviews.ListByPlace(ctx, placeID)
}

func (f *Facade) ListReviewsByUser(ctx context.Context, userID string) ([]*entity.Review, error) {
	if _, err := f.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return f.Reviews.ListByUser(ctx, userID)
}

// UpdateReview accepts text and rating only; authorship and subject never
// change after creation.
func (f *Facade) UpdateReview(ctx context.Context, id string, in UpdateReviewInput) (*entity.Review, error) {
	r, err := f.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Text != nil {
		if err := r.SetText(*in.Text); err != nil {
			return nil, err
		}
	}
	if in.Rating != nil {
		if err := r.SetRating(*in.Rating); err != nil {
			return nil, err
		}
	}
	r.Touch()
	if err := f.Reviews.Update(ctx, r); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, err
	}
	return r, nil
}

func (f *Facade) DeleteReview(ctx context.Context, id string) error {
	if err := f.Reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("review not found")
		}
		return err
	}
	return nil
}
