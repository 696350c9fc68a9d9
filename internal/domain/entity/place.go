package entity

import (
	"sort"
	"unicode/utf8"

	"github.com/hbnb/hbnb-api/internal/apperr"
)

const (
	maxTitleLen       = 255
	maxDescriptionLen = 1024
)

// Place is a rental listing. AmenityIDs is an order-insensitive set;
// SetAmenityIDs deduplicates and sorts it so comparisons are stable.
type Place struct {
	Base
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
	AmenityIDs  []string
}

func NewPlace(title, description string, price, latitude, longitude float64, ownerID string, amenityIDs []string) (*Place, error) {
	p := &Place{Base: newBase()}
	if err := p.SetTitle(title); err != nil {
		return nil, err
	}
	if err := p.SetDescription(description); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	if err := p.SetLatitude(latitude); err != nil {
		return nil, err
	}
	if err := p.SetLongitude(longitude); err != nil {
		return nil, err
	}
	if err := p.SetOwnerID(ownerID); err != nil {
		return nil, err
	}
	p.SetAmenityIDs(amenityIDs)
	return p, nil
}

func (p *Place) SetTitle(v string) error {
	if v == "" {
		return apperr.Validation("title", "must not be empty")
	}
	if utf8.RuneCountInString(v) > maxTitleLen {
		return apperr.Validation("title", "must be at most %d characters", maxTitleLen)
	}
	p.Title = v
	return nil
}

func (p *Place) SetDescription(v string) error {
	if utf8.RuneCountInString(v) > maxDescriptionLen {
		return apperr.Validation("description", "must be at most %d characters", maxDescriptionLen)
	}
	p.Description = v
	return nil
}

func (p *Place) SetPrice(v float64) error {
	if v < 0 {
		return apperr.Validation("price", "must not be negative")
	}
	p.Price = v
	return nil
}

func (p *Place) SetLatitude(v float64) error {
	if v < -90 || v > 90 {
		return apperr.Validation("latitude", "must be between -90 and 90")
	}
	p.Latitude = v
	return nil
}

func (p *Place) SetLongitude(v float64) error {
	if v < -180 || v > 180 {
		return apperr.Validation("longitude", "must be between -180 and 180")
	}
	p.Longitude = v
	return nil
}

func (p *Place) SetOwnerID(v string) error {
	if v == "" {
		return apperr.Validation("owner_id", "must not be empty")
	}
	p.OwnerID = v
	return nil
}

func (p *Place) SetAmenityIDs(ids []string) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	p.AmenityIDs = out
}

// HasAmenity reports whether the place references the given amenity.
func (p *Place) HasAmenity(id string) bool {
	for _, a := range p.AmenityIDs {
		if a == id {
			return true
		}
	}
	return false
}
