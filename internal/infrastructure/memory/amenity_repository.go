package memory

import (
	"context"
	"sort"

	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/domain/repository"
)

type AmenityRepository struct {
	store *Store
}

func (r *AmenityRepository) Create(_ context.Context, a *entity.Amenity) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.amenities[a.ID] = copyAmenity(a)
	return nil
}

func (r *AmenityRepository) GetByID(_ context.Context, id string) (*entity.Amenity, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.amenities[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyAmenity(a), nil
}

func (r *AmenityRepository) List(_ context.Context) ([]*entity.Amenity, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	amenities := make([]*entity.Amenity, 0, len(s.amenities))
	for _, a := range s.amenities {
		amenities = append(amenities, copyAmenity(a))
	}
	sort.Slice(amenities, func(i, j int) bool { return amenities[i].Name < amenities[j].Name })
	return amenities, nil
}

func (r *AmenityRepository) Update(_ context.Context, a *entity.Amenity) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.amenities[a.ID]; !ok {
		return repository.ErrNotFound
	}
	s.amenities[a.ID] = copyAmenity(a)
	return nil
}

func (r *AmenityRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.amenities[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.amenities, id)
	s.detachAmenityLocked(id)
	return nil
}

var _ repository.AmenityRepository = (*AmenityRepository)(nil)
