package application

import (
	"context"
	"errors"

	"github.com/hbnb/hbnb-api/internal/apperr"
	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/domain/repository"
)

func (f *Facade) CreateAmenity(ctx context.Context, name string) (*entity.Amenity, error) {
	a, err := entity.NewAmenity(name)
	if err != nil {
		return nil, err
	}
	if err := f.Amenities.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (f *Facade) GetAmenity(ctx context.Context, id string) (*entity.Amenity, error) {
	a, err := f.Amenities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("amenity not found")
		}
		return nil, err
	}
	return a, nil
}

func (f *Facade) ListAmenities(ctx context.Context) ([]*entity.Amenity, error) {
	return f.Amenities.List(ctx)
}

func (f *Facade) UpdateAmenity(ctx context.Context, id, name string) (*entity.Amenity, error) {
	a, err := f.GetAmenity(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.SetName(name); err != nil {
		return nil, err
	}
	a.Touch()
	if err := f.Amenities.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("amenity not found")
		}
		return nil, err
	}
	return a, nil
}

func (f *Facade) DeleteAmenity(ctx context.Context, id string) error {
	if err := f.Amenities.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("amenity not found")
		}
		return err
	}
	return nil
}
