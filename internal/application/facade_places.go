package application

import (
	"context"
	"errors"

	"github.com/hbnb/hbnb-api/internal/apperr"
	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/domain/repository"
)

type CreatePlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
	AmenityIDs  []string
}

type UpdatePlaceInput struct {
	Title       *string
	Description *string
	Price       *float64
	Latitude    *float64
	Longitude   *float64
	OwnerID     *string
	AmenityIDs  *[]string
}

func (f *Facade) CreatePlace(ctx context.Context, in CreatePlaceInput) (*entity.Place, error) {
	p, err := entity.NewPlace(in.Title, in.Description, in.Price, in.Latitude, in.Longitude, in.OwnerID, in.AmenityIDs)
	if err != nil {
		return nil, err
	}
	if _, err := f.Users.GetByID(ctx, p.OwnerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("owner not found")
		}
		return nil, err
	}
	if err := f.checkAmenityIDs(ctx, p.AmenityIDs); err != nil {
		return nil, err
	}
	if _, err := f.Places.GetByTitle(ctx, p.Title); err == nil {
		return nil, apperr.Conflict("title already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err := f.Places.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (f *Facade) GetPlace(ctx context.Context, id string) (*entity.Place, error) {
	p, err := f.Places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("place not found")
		}
		return nil, err
	}
	return p, nil
}

func (f *Facade) ListPlaces(ctx context.Context) ([]*entity.Place, error) {
	return f.Places.List(ctx)
}

// UpdatePlace validates every submitted field against a copy before saving.
// Title uniqueness is a creation-time rule only; reassigning the owner
// requires the new owner to exist.
func (f *Facade) UpdatePlace(ctx context.Context, id string, in UpdatePlaceInput) (*entity.Place, error) {
	p, err := f.GetPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if err := p.SetTitle(*in.Title); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if err := p.SetDescription(*in.Description); err != nil {
			return nil, err
		}
	}
	if in.Price != nil {
		if err := p.SetPrice(*in.Price); err != nil {
			return nil, err
		}
	}
	if in.Latitude != nil {
		if err := p.SetLatitude(*in.Latitude); err != nil {
			return nil, err
		}
	}
	if in.Longitude != nil {
		if err := p.SetLongitude(*in.Longitude); err != nil {
			return nil, err
		}
	}
	if in.OwnerID != nil && *in.OwnerID != p.OwnerID {
		if _, err := f.Users.GetByID(ctx, *in.OwnerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperr.NotFound("owner not found")
			}
			return nil, err
		}
		if err := p.SetOwnerID(*in.OwnerID); err != nil {
			return nil, err
		}
	}
	if in.AmenityIDs != nil {
		p.SetAmenityIDs(*in.AmenityIDs)
		if err := f.checkAmenityIDs(ctx, p.AmenityIDs); err != nil {
			return nil, err
		}
	}
	p.Touch()
	if err := f.Places.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("place not found")
		}
		return nil, err
	}
	return p, nil
}

// DeletePlace removes the place; its reviews and amenity links cascade.
func (f *Facade) DeletePlace(ctx context.Context, id string) error {
	if err := f.Places.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("place not found")
		}
		return err
	}
	return nil
}

func (f *Facade) checkAmenityIDs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := f.Amenities.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.NotFound("amenity %s not found", id)
			}
			return err
		}
	}
	return nil
}
