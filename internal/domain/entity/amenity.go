package entity

import (
	"unicode/utf8"

	"github.com/hbnb/hbnb-api/internal/apperr"
)

const maxAmenityNameLen = 50

// Amenity is referenced by places many-to-many.
type Amenity struct {
	Base
	Name string
}

func NewAmenity(name string) (*Amenity, error) {
	a := &Amenity{Base: newBase()}
	if err := a.SetName(name); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Amenity) SetName(v string) error {
	if v == "" {
		return apperr.Validation("name", "must not be empty")
	}
	if utf8.RuneCountInString(v) > maxAmenityNameLen {
		return apperr.Validation("name", "must be at most %d characters", maxAmenityNameLen)
	}
	a.Name = v
	return nil
}
