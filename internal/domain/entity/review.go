package entity

import (
	"unicode/utf8"

	"github.com/hbnb/hbnb-api/internal/apperr"
)

const maxReviewTextLen = 2048

// Review is a third-party endorsement of a place. A user may author at most
// one review per place; that invariant needs a cross-entity lookup and is
// enforced by the facade and a storage unique constraint, not here.
type Review struct {
	Base
	Text    string
	Rating  int
	UserID  string
	PlaceID string
}

func NewReview(text string, rating int, userID, placeID string) (*Review, error) {
	r := &Review{Base: newBase()}
	if err := r.SetText(text); err != nil {
		return nil, err
	}
	if err := r.SetRating(rating); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, apperr.Validation("user_id", "must not be empty")
	}
	if placeID == "" {
		return nil, apperr.Validation("place_id", "must not be empty")
	}
	r.UserID = userID
	r.PlaceID = placeID
	return r, nil
}

func (r *Review) SetText(v string) error {
	if v == "" {
		return apperr.Validation("text", "must not be empty")
	}
	if utf8.RuneCountInString(v) > maxReviewTextLen {
		return apperr.Validation("text", "must be at most %d characters", maxReviewTextLen)
	}
	r.Text = v
	return nil
}

func (r *Review) SetRating(v int) error {
	if v < 1 || v > 5 {
		return apperr.Validation("rating", "must be between 1 and 5")
	}
	r.Rating = v
	return nil
}
