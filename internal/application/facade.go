// Package application holds the Facade, the single service-layer entry point
// between HTTP handlers and persistence. Cross-entity checks (referenced
// entities exist, uniqueness, duplicate reviews) live here; per-field
// invariants live on the entities; authorization lives in the handlers.
package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hbnb/hbnb-api/internal/apperr"
	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/domain/repository"
	"github.com/hbnb/hbnb-api/pkg/helpers"
	"github.com/hbnb/hbnb-api/pkg/mailer"
)

type Facade struct {
	Users     repository.UserRepository
	Places    repository.PlaceRepository
	Amenities repository.AmenityRepository
	Reviews   repository.ReviewRepository
	Logger    *logrus.Logger
	Publisher *helpers.RabbitPublisher // optional; welcome emails are best effort
}

func NewFacade(users repository.UserRepository, places repository.PlaceRepository,
	amenities repository.AmenityRepository, reviews repository.ReviewRepository,
	logger *logrus.Logger, pub *helpers.RabbitPublisher) *Facade {
	return &Facade{
		Users:     users,
		Places:    places,
		Amenities: amenities,
		Reviews:   reviews,
		Logger:    logger,
		Publisher: pub,
	}
}

// bcrypt truncates nothing: input over 72 bytes is an error, so the bound is
// enforced here as a validation failure rather than surfacing from hashing.
const maxPasswordBytes = 72

// normalizeEmail applies the same trim+lowercase as entity.SetEmail so
// lookups match regardless of the casing the caller used.
func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func validatePassword(v string) error {
	if v == "" {
		return apperr.Validation("password", "must not be empty")
	}
	if len(v) > maxPasswordBytes {
		return apperr.Validation("password", "must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// UpdateUserInput carries a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

func (f *Facade) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := entity.NewUser(in.FirstName, in.LastName, in.Email, hash, in.IsAdmin)
	if err != nil {
		return nil, err
	}
	if _, err := f.Users.GetByEmail(ctx, u.Email); err == nil {
		return nil, apperr.Conflict("email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err := f.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, err
	}
	f.sendWelcomeEmail(ctx, u)
	return u, nil
}

func (f *Facade) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := f.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}

func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := f.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}

func (f *Facade) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return f.Users.List(ctx)
}

// UpdateUser applies a partial update atomically: every submitted field is
// validated against a copy first, and the copy is persisted only if all of
// them pass. Submitting the current values is an accepted no-op.
func (f *Facade) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	u, err := f.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		if err := u.SetFirstName(*in.FirstName); err != nil {
			return nil, err
		}
	}
	if in.LastName != nil {
		if err := u.SetLastName(*in.LastName); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		prev := u.Email
		if err := u.SetEmail(*in.Email); err != nil {
			return nil, err
		}
		if u.Email != prev {
			if _, err := f.Users.GetByEmail(ctx, u.Email); err == nil {
				return nil, apperr.Conflict("email already registered")
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		if err := u.SetPasswordHash(hash); err != nil {
			return nil, err
		}
	}
	u.Touch()
	if err := f.Users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("user not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperr.Conflict("email already registered")
		}
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the user and, through the storage cascade, their places
// and reviews.
func (f *Facade) DeleteUser(ctx context.Context, id string) error {
	if err := f.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	return nil
}

// Authenticate validates email/password. The email is normalized the same
// way SetEmail stores it, so the casing used at registration keeps working.
// Every failure collapses into the same unauthorized error so callers cannot
// probe which part was wrong.
func (f *Facade) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := f.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return u, nil
}

func (f *Facade) sendWelcomeEmail(ctx context.Context, u *entity.User) {
	if f.Publisher == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data:     map[string]any{"FirstName": u.FirstName},
	}
	if err := f.Publisher.PublishJSON(ctx, job); err != nil && f.Logger != nil {
		f.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email publish failed")
	}
}
