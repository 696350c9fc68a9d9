package entity

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hbnb/hbnb-api/internal/apperr"
)

const (
	maxNameLen  = 50
	maxEmailLen = 120
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User is the aggregate root for the user domain.
// PasswordHash holds a bcrypt hash and is never serialized back to callers.
type User struct {
	Base
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

// NewUser builds a validated user. The password must already be hashed;
// hashing lives in pkg/helpers so the domain never sees plaintext.
func NewUser(firstName, lastName, email, passwordHash string, isAdmin bool) (*User, error) {
	u := &User{Base: newBase(), IsAdmin: isAdmin}
	if err := u.SetFirstName(firstName); err != nil {
		return nil, err
	}
	if err := u.SetLastName(lastName); err != nil {
		return nil, err
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	if err := u.SetPasswordHash(passwordHash); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) SetFirstName(v string) error {
	if err := validateName("first_name", v); err != nil {
		return err
	}
	u.FirstName = v
	return nil
}

func (u *User) SetLastName(v string) error {
	if err := validateName("last_name", v); err != nil {
		return err
	}
	u.LastName = v
	return nil
}

func (u *User) SetEmail(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return apperr.Validation("email", "must not be empty")
	}
	if utf8.RuneCountInString(v) > maxEmailLen {
		return apperr.Validation("email", "must be at most %d characters", maxEmailLen)
	}
	if !strings.Contains(v, "@") || !emailPattern.MatchString(v) {
		return apperr.Validation("email", "must be a valid email address")
	}
	u.Email = strings.ToLower(v)
	return nil
}

func (u *User) SetPasswordHash(v string) error {
	if v == "" {
		return apperr.Validation("password", "must not be empty")
	}
	u.PasswordHash = v
	return nil
}

func validateName(field, v string) error {
	if v == "" {
		return apperr.Validation(field, "must not be empty")
	}
	if utf8.RuneCountInString(v) > maxNameLen {
		return apperr.Validation(field, "must be at most %d characters", maxNameLen)
	}
	return nil
}
