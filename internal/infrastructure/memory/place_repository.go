package memory

import (
	"context"
	"sort"

	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/domain/repository"
)

type PlaceRepository struct {
	store *Store
}

func (r *PlaceRepository) Create(_ context.Context, p *entity.Place) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places[p.ID] = copyPlace(p)
	return nil
}

func (r *PlaceRepository) GetByID(_ context.Context, id string) (*entity.Place, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.places[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyPlace(p), nil
}

func (r *PlaceRepository) GetByTitle(_ context.Context, title string) (*entity.Place, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.places {
		if p.Title == title {
			return copyPlace(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PlaceRepository) List(_ context.Context) ([]*entity.Place, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	places := make([]*entity.Place, 0, len(s.places))
	for _, p := range s.places {
		places = append(places, copyPlace(p))
	}
	sort.Slice(places, func(i, j int) bool { return places[i].CreatedAt.Before(places[j].CreatedAt) })
	return places, nil
}

func (r *PlaceRepository) Update(_ context.Context, p *entity.Place) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.places[p.ID]; !ok {
		return repository.ErrNotFound
	}
	s.places[p.ID] = copyPlace(p)
	return nil
}

func (r *PlaceRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.places[id]; !ok {
		return repository.ErrNotFound
	}
	s.deletePlaceLocked(id)
	return nil
}

var _ repository.PlaceRepository = (*PlaceRepository)(nil)
