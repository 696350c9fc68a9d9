package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("price", "must not be negative"), http.StatusBadRequest},
		{"not found", NotFound("place not found"), http.StatusNotFound},
		{"unauthorized", Unauthorized("invalid credentials"), http.StatusUnauthorized},
		{"forbidden", Forbidden("admin privileges required"), http.StatusForbidden},
		{"conflict", Conflict("email already registered"), http.StatusConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped typed error", fmt.Errorf("saving: %w", NotFound("user not found")), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestMessageMasksInternal(t *testing.T) {
	assert.Equal(t, "internal server error", Message(errors.New("pq: connection refused")))
	assert.Equal(t, "email already registered", Message(Conflict("email already registered")))
	assert.Equal(t, "price: must not be negative", Message(Validation("price", "must not be negative")))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("rating", "must be between 1 and 5")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("outer: %w", Conflict("dup"))))
}
