package application

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbnb/hbnb-api/internal/apperr"
	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/infrastructure/memory"
	"github.com/hbnb/hbnb-api/pkg/helpers"
)

func newTestFacade() *Facade {
	s := memory.NewStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewFacade(s.Users(), s.Places(), s.Amenities(), s.Reviews(), logger, nil)
}

func createUser(t *testing.T, f *Facade, email string, admin bool) *entity.User {
	t.Helper()
	u, err := f.CreateUser(context.Background(), CreateUserInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "secret123",
		IsAdmin:   admin,
	})
	require.NoError(t, err)
	return u
}

func createPlace(t *testing.T, f *Facade, title, ownerID string, amenityIDs ...string) *entity.Place {
	t.Helper()
	p, err := f.CreatePlace(context.Background(), CreatePlaceInput{
		Title:      title,
		Price:      100,
		Latitude:   40.7,
		Longitude:  -74,
		OwnerID:    ownerID,
		AmenityIDs: amenityIDs,
	})
	require.NoError(t, err)
	return p
}

func TestCreateUserHashesPassword(t *testing.T) {
	f := newTestFacade()
	u := createUser(t, f, "Ada@Example.com", false)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.True(t, helpers.CompareHashAndPassword(u.PasswordHash, "secret123"))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newTestFacade()
	createUser(t, f, "a@b.io", false)
	_, err := f.CreateUser(context.Background(), CreateUserInput{
		FirstName: "Other", LastName: "User", Email: "A@B.IO", Password: "pw",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestAuthenticate(t *testing.T) {
	f := newTestFacade()
	u := createUser(t, f, "a@b.io", false)

	got, err := f.Authenticate(context.Background(), "a@b.io", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.Authenticate(context.Background(), "a@b.io", "wrong")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = f.Authenticate(context.Background(), "nobody@b.io", "secret123")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err),
		"unknown email and bad password are indistinguishable")
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	f := newTestFacade()
	u := createUser(t, f, "Ada@Example.com", false)

	// stored lowercase, but the casing used at registration must keep working
	got, err := f.Authenticate(context.Background(), "Ada@Example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = f.Authenticate(context.Background(), "  ADA@EXAMPLE.COM  ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	byEmail, err := f.GetUserByEmail(context.Background(), "Ada@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestPasswordLengthBound(t *testing.T) {
	f := newTestFacade()
	long := strings.Repeat("x", 80)

	_, err := f.CreateUser(context.Background(), CreateUserInput{
		FirstName: "Test", LastName: "User", Email: "a@b.io", Password: long,
	})
	require.Error(t, err)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind, "over-long passwords are a 400, not a 500")
	assert.Equal(t, "password", ae.Field)

	u := createUser(t, f, "a@b.io", false)
	_, err = f.UpdateUser(context.Background(), u.ID, UpdateUserInput{Password: &long})
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind)

	boundary := strings.Repeat("x", 72)
	_, err = f.CreateUser(context.Background(), CreateUserInput{
		FirstName: "Test", LastName: "User", Email: "c@d.io", Password: boundary,
	})
	require.NoError(t, err, "72 bytes is the last accepted length")
}

func TestUpdateUserPartial(t *testing.T) {
	f := newTestFacade()
	u := createUser(t, f, "a@b.io", false)
	first := "Grace"

	got, err := f.UpdateUser(context.Background(), u.ID, UpdateUserInput{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.FirstName)
	assert.Equal(t, "User", got.LastName, "omitted fields are untouched")
	assert.Equal(t, "a@b.io", got.Email)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestUpdateUserNoop(t *testing.T) {
	f := newTestFacade()
	u := createUser(t, f, "a@b.io", false)
	same := "Test"
	email := "a@b.io"

	got, err := f.UpdateUser(context.Background(), u.ID, UpdateUserInput{FirstName: &same, Email: &email})
	require.NoError(t, err, "resubmitting current values is accepted")
	assert.Equal(t, u.Email, got.Email)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	f := newTestFacade()
	createUser(t, f, "taken@b.io", false)
	u := createUser(t, f, "a@b.io", false)
	taken := "taken@b.io"

	_, err := f.UpdateUser(context.Background(), u.ID, UpdateUserInput{Email: &taken})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdateUserInvalidFieldIsNotPersisted(t *testing.T) {
	f := newTestFacade()
	u := createUser(t, f, "a@b.io", false)
	first := "Grace"
	bad := "not-an-email"

	_, err := f.UpdateUser(context.Background(), u.ID, UpdateUserInput{FirstName: &first, Email: &bad})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	got, err := f.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", got.FirstName, "a rejected update changes nothing")
}

func TestCreatePlaceChecks(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade()
	owner := createUser(t, f, "owner@b.io", false)

	_, err := f.CreatePlace(ctx, CreatePlaceInput{Title: "Loft", Price: 10, OwnerID: "ghost"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "owner must exist")

	_, err = f.CreatePlace(ctx, CreatePlaceInput{Title: "Loft", Price: 10, OwnerID: owner.ID, AmenityIDs: []string{"ghost"}})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "amenities must exist")

	a, err := f.CreateAmenity(ctx, "WiFi")
	require.NoError(t, err)
	p := createPlace(t, f, "Loft", owner.ID, a.ID)
	assert.Equal(t, []string{a.ID}, p.AmenityIDs)

	_, err = f.CreatePlace(ctx, CreatePlaceInput{Title: "Loft", Price: 10, OwnerID: owner.ID})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err), "title is unique at creation")
}

func TestUpdatePlaceOwnerReassignment(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade()
	owner := createUser(t, f, "owner@b.io", false)
	p := createPlace(t, f, "Loft", owner.ID)

	ghost := "ghost"
	_, err := f.UpdatePlace(ctx, p.ID, UpdatePlaceInput{OwnerID: &ghost})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	next := createUser(t, f, "next@b.io", false)
	got, err := f.UpdatePlace(ctx, p.ID, UpdatePlaceInput{OwnerID: &next.ID})
	require.NoError(t, err)
	assert.Equal(t, next.ID, got.OwnerID)
}

func TestCreateReviewChecks(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade()
	owner := createUser(t, f, "owner@b.io", false)
	guest := createUser(t, f, "guest@b.io", false)
	p := createPlace(t, f, "Loft", owner.ID)

	_, err := f.CreateReview(ctx, CreateReviewInput{Text: "ok", Rating: 4, UserID: "ghost", PlaceID: p.ID})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "author must exist")

	_, err = f.CreateReview(ctx, CreateReviewInput{Text: "ok", Rating: 4, UserID: guest.ID, PlaceID: "ghost"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "place must exist")

	r, err := f.CreateReview(ctx, CreateReviewInput{Text: "ok", Rating: 4, UserID: guest.ID, PlaceID: p.ID})
	require.NoError(t, err)

	_, err = f.CreateReview(ctx, CreateReviewInput{Text: "again", Rating: 2, UserID: guest.ID, PlaceID: p.ID})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Contains(t, err.Error(), r.ID, "conflict names the existing review")
}

func TestUpdateReview(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade()
	owner := createUser(t, f, "owner@b.io", false)
	guest := createUser(t, f, "guest@b.io", false)
	p := createPlace(t, f, "Loft", owner.ID)
	r, err := f.CreateReview(ctx, CreateReviewInput{Text: "ok", Rating: 4, UserID: guest.ID, PlaceID: p.ID})
	require.NoError(t, err)

	text := "actually great"
	rating := 5
	got, err := f.UpdateReview(ctx, r.ID, UpdateReviewInput{Text: &text, Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, "actually great", got.Text)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, guest.ID, got.UserID, "authorship never changes")
}

func TestListReviewsRequireParent(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade()
	_, err := f.ListReviewsByPlace(ctx, "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	_, err = f.ListReviewsByUser(ctx, "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade()
	owner := createUser(t, f, "owner@b.io", false)
	guest := createUser(t, f, "guest@b.io", false)
	p := createPlace(t, f, "Loft", owner.ID)
	_, err := f.CreateReview(ctx, CreateReviewInput{Text: "ok", Rating: 4, UserID: guest.ID, PlaceID: p.ID})
	require.NoError(t, err)

	require.NoError(t, f.DeleteUser(ctx, owner.ID))

	_, err = f.GetPlace(ctx, p.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	reviews, err := f.ListReviewsByUser(ctx, guest.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews, "reviews fall with the place")
}
