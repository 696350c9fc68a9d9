package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the identity and timestamps shared by every entity.
// UpdatedAt is bumped on every successful mutation.
type Base struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newBase() Base {
	now := time.Now().UTC()
	return Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// Touch bumps UpdatedAt after a mutation.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}
