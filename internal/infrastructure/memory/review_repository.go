package memory

import (
	"context"
	"sort"

	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/domain/repository"
)

type ReviewRepository struct {
	store *Store
}

func (r *ReviewRepository) Create(_ context.Context, rev *entity.Review) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.reviews {
		if existing.UserID == rev.UserID && existing.PlaceID == rev.PlaceID {
			return repository.ErrDuplicate
		}
	}
	s.reviews[rev.ID] = copyReview(rev)
	return nil
}

func (r *ReviewRepository) GetByID(_ context.Context, id string) (*entity.Review, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	rev, ok := s.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyReview(rev), nil
}

func (r *ReviewRepository) GetByUserAndPlace(_ context.Context, userID, placeID string) (*entity.Review, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rev := range s.reviews {
		if rev.UserID == userID && rev.PlaceID == placeID {
			return copyReview(rev), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ReviewRepository) List(_ context.Context) ([]*entity.Review, error) {
	return r.collect(func(*entity.Review) bool { return true })
}

func (r *ReviewRepository) ListByPlace(_ context.Context, placeID string) ([]*entity.Review, error) {
	return r.collect(func(rev *entity.Review) bool { return rev.PlaceID == placeID })
}

func (r *ReviewRepository) ListByUser(_ context.Context, userID string) ([]*entity.Review, error) {
	return r.collect(func(rev *entity.Review) bool { return rev.UserID == userID })
}

func (r *ReviewRepository) Update(_ context.Context, rev *entity.Review) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[rev.ID]; !ok {
		return repository.ErrNotFound
	}
	s.reviews[rev.ID] = copyReview(rev)
	return nil
}

func (r *ReviewRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (r *ReviewRepository) collect(keep func(*entity.Review) bool) ([]*entity.Review, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reviews []*entity.Review
	for _, rev := range s.reviews {
		if keep(rev) {
			reviews = append(reviews, copyReview(rev))
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.Before(reviews[j].CreatedAt) })
	return reviews, nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
