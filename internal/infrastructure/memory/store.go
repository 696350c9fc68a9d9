// Package memory provides map-backed repository implementations. They mirror
// the postgres behavior, including unique keys and cascade deletes, and are
// the substrate for unit tests and the facade/handler test harness.
package memory

import (
	"sync"

	"github.com/hbnb/hbnb-api/internal/domain/entity"
)

type Store struct {
	mu        sync.RWMutex
	users     map[string]*entity.User
	places    map[string]*entity.Place
	amenities map[string]*entity.Amenity
	reviews   map[string]*entity.Review
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]*entity.User),
		places:    make(map[string]*entity.Place),
		amenities: make(map[string]*entity.Amenity),
		reviews:   make(map[string]*entity.Review),
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{store: s} }
func (s *Store) Places() *PlaceRepository     { return &PlaceRepository{store: s} }
func (s *Store) Amenities() *AmenityRepository { return &AmenityRepository{store: s} }
func (s *Store) Reviews() *ReviewRepository   { return &ReviewRepository{store: s} }

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func copyPlace(p *entity.Place) *entity.Place {
	c := *p
	c.AmenityIDs = append([]string(nil), p.AmenityIDs...)
	return &c
}

func copyAmenity(a *entity.Amenity) *entity.Amenity {
	c := *a
	return &c
}

func copyReview(r *entity.Review) *entity.Review {
	c := *r
	return &c
}

// deletePlaceLocked removes a place and its reviews. Caller holds the lock.
func (s *Store) deletePlaceLocked(placeID string) {
	delete(s.places, placeID)
	for id, r := range s.reviews {
		if r.PlaceID == placeID {
			delete(s.reviews, id)
		}
	}
}

// deleteUserLocked removes a user, their places and their reviews. Caller
// holds the lock.
func (s *Store) deleteUserLocked(userID string) {
	delete(s.users, userID)
	for id, p := range s.places {
		if p.OwnerID == userID {
			s.deletePlaceLocked(id)
		}
	}
	for id, r := range s.reviews {
		if r.UserID == userID {
			delete(s.reviews, id)
		}
	}
}

// detachAmenityLocked drops the amenity from every place referencing it.
func (s *Store) detachAmenityLocked(amenityID string) {
	for _, p := range s.places {
		if !p.HasAmenity(amenityID) {
			continue
		}
		kept := make([]string, 0, len(p.AmenityIDs))
		for _, id := range p.AmenityIDs {
			if id != amenityID {
				kept = append(kept, id)
			}
		}
		p.AmenityIDs = kept
	}
}
