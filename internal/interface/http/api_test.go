package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbnb/hbnb-api/internal/application"
	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/infrastructure/memory"
	"github.com/hbnb/hbnb-api/internal/router"
	"github.com/hbnb/hbnb-api/pkg/helpers"
	"github.com/hbnb/hbnb-api/pkg/validation"
)

var setupOnce sync.Once

type api struct {
	engine *gin.Engine
	facade *application.Facade
	jwt    *helpers.JWTManager
}

func newAPI(t *testing.T) *api {
	t.Helper()
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Init()
	})
	s := memory.NewStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	facade := application.NewFacade(s.Users(), s.Places(), s.Amenities(), s.Reviews(), logger, nil)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	engine := gin.New()
	reg := router.NewRegistry(engine)
	router.InitModules(reg, router.Deps{Facade: facade, JWT: jwt, Logger: logger, Redis: nil})
	reg.RegisterAll()
	return &api{engine: engine, facade: facade, jwt: jwt}
}

func (a *api) user(t *testing.T, email string, admin bool) *entity.User {
	t.Helper()
	u, err := a.facade.CreateUser(context.Background(), application.CreateUserInput{
		FirstName: "Test", LastName: "User", Email: email, Password: "secret123", IsAdmin: admin,
	})
	require.NoError(t, err)
	return u
}

func (a *api) place(t *testing.T, title, ownerID string) *entity.Place {
	t.Helper()
	p, err := a.facade.CreatePlace(context.Background(), application.CreatePlaceInput{
		Title: title, Price: 100, Latitude: 40.7, Longitude: -74, OwnerID: ownerID,
	})
	require.NoError(t, err)
	return p
}

func (a *api) token(t *testing.T, u *entity.User) string {
	t.Helper()
	token, _, err := a.jwt.GenerateToken(u.ID, u.IsAdmin)
	require.NoError(t, err)
	return token
}

func (a *api) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func dataMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	env := decode(t, w)
	var m map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m
}

func TestLogin(t *testing.T) {
	a := newAPI(t)
	a.user(t, "ada@b.io", false)

	w := a.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "ada@b.io", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataMap(t, w)
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "Bearer", data["token_type"])

	w = a.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "Ada@B.io", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code, "login accepts any casing of the registered email")

	w = a.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "ada@b.io", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")

	w = a.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginTokenGrantsAccess(t *testing.T) {
	a := newAPI(t)
	u := a.user(t, "ada@b.io", false)

	w := a.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "ada@b.io", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := dataMap(t, w)["access_token"].(string)
	require.NotEmpty(t, token)

	w = a.do(t, http.MethodPost, "/places", token, gin.H{
		"title": "Loft", "price": 50.0, "owner_id": u.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateUserAuthorization(t *testing.T) {
	a := newAPI(t)
	admin := a.user(t, "admin@b.io", true)
	regular := a.user(t, "reg@b.io", false)
	payload := gin.H{"first_name": "Ada", "last_name": "Lovelace", "email": "new@b.io", "password": "pw123456"}

	w := a.do(t, http.MethodPost, "/users", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "mutations require a token")

	w = a.do(t, http.MethodPost, "/users", a.token(t, regular), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPost, "/users", a.token(t, admin), payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataMap(t, w)
	assert.Equal(t, "new@b.io", data["email"])
	assert.NotContains(t, w.Body.String(), "password", "password never appears in responses")

	w = a.do(t, http.MethodPost, "/users", a.token(t, admin), payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUsersPublicReads(t *testing.T) {
	a := newAPI(t)
	u := a.user(t, "ada@b.io", false)

	w := a.do(t, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/users/"+u.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/users/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserAuthorization(t *testing.T) {
	a := newAPI(t)
	admin := a.user(t, "admin@b.io", true)
	u := a.user(t, "ada@b.io", false)
	other := a.user(t, "other@b.io", false)

	w := a.do(t, http.MethodPut, "/users/"+u.ID, a.token(t, u), gin.H{"first_name": "Grace"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Grace", dataMap(t, w)["first_name"])

	w = a.do(t, http.MethodPut, "/users/"+u.ID, a.token(t, other), gin.H{"first_name": "X"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPut, "/users/"+u.ID, a.token(t, u), gin.H{"email": "new@b.io"})
	assert.Equal(t, http.StatusForbidden, w.Code, "email changes are admin only")
	w = a.do(t, http.MethodPut, "/users/"+u.ID, a.token(t, u), gin.H{"password": "newpw"})
	assert.Equal(t, http.StatusForbidden, w.Code, "password changes are admin only")

	w = a.do(t, http.MethodPut, "/users/"+u.ID, a.token(t, admin), gin.H{"email": "new@b.io"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "new@b.io", dataMap(t, w)["email"])
}

func TestDeleteUserAuthorization(t *testing.T) {
	a := newAPI(t)
	u := a.user(t, "ada@b.io", false)
	other := a.user(t, "other@b.io", false)

	w := a.do(t, http.MethodDelete, "/users/"+u.ID, a.token(t, other), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodDelete, "/users/"+u.ID, a.token(t, u), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/users/"+u.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePlace(t *testing.T) {
	a := newAPI(t)
	u := a.user(t, "ada@b.io", false)
	other := a.user(t, "other@b.io", false)

	w := a.do(t, http.MethodPost, "/places", "", gin.H{"title": "Loft", "owner_id": u.ID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(t, http.MethodPost, "/places", a.token(t, u), gin.H{"title": "Loft", "owner_id": other.ID})
	assert.Equal(t, http.StatusForbidden, w.Code, "non-admins create places for themselves only")

	w = a.do(t, http.MethodPost, "/places", a.token(t, u), gin.H{"title": "Loft", "price": -5.0, "owner_id": u.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "price")

	w = a.do(t, http.MethodPost, "/places", a.token(t, u), gin.H{"title": "Loft", "price": 50.0, "owner_id": u.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/places", a.token(t, u), gin.H{"title": "Loft", "price": 60.0, "owner_id": u.ID})
	assert.Equal(t, http.StatusConflict, w.Code, "titles are unique at creation")
}

func TestGetPlaceExpandsRelations(t *testing.T) {
	a := newAPI(t)
	owner := a.user(t, "owner@b.io", false)
	guest := a.user(t, "guest@b.io", false)
	amenity, err := a.facade.CreateAmenity(context.Background(), "WiFi")
	require.NoError(t, err)
	p, err := a.facade.CreatePlace(context.Background(), application.CreatePlaceInput{
		Title: "Loft", Price: 100, OwnerID: owner.ID, AmenityIDs: []string{amenity.ID},
	})
	require.NoError(t, err)
	_, err = a.facade.CreateReview(context.Background(), application.CreateReviewInput{
		Text: "nice", Rating: 5, UserID: guest.ID, PlaceID: p.ID,
	})
	require.NoError(t, err)

	w := a.do(t, http.MethodGet, "/places/"+p.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, w)

	ownerData, ok := data["owner"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, owner.ID, ownerData["id"])

	amenities, ok := data["amenities"].([]any)
	require.True(t, ok)
	require.Len(t, amenities, 1)
	assert.Equal(t, "WiFi", amenities[0].(map[string]any)["name"])

	reviews, ok := data["reviews"].([]any)
	require.True(t, ok)
	assert.Len(t, reviews, 1)
}

func TestUpdatePlaceAuthorization(t *testing.T) {
	a := newAPI(t)
	admin := a.user(t, "admin@b.io", true)
	owner := a.user(t, "owner@b.io", false)
	other := a.user(t, "other@b.io", false)
	p := a.place(t, "Loft", owner.ID)

	w := a.do(t, http.MethodPut, "/places/"+p.ID, a.token(t, other), gin.H{"title": "Taken"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPut, "/places/"+p.ID, a.token(t, owner), gin.H{"price": 75.0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 75.0, dataMap(t, w)["price"])

	w = a.do(t, http.MethodPut, "/places/"+p.ID, a.token(t, admin), gin.H{"title": "Renamed"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPut, "/places/unknown", a.token(t, admin), gin.H{"title": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePlaceAdminOnly(t *testing.T) {
	a := newAPI(t)
	admin := a.user(t, "admin@b.io", true)
	owner := a.user(t, "owner@b.io", false)
	p := a.place(t, "Loft", owner.ID)

	w := a.do(t, http.MethodDelete, "/places/"+p.ID, a.token(t, owner), nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "even the owner cannot delete")

	w = a.do(t, http.MethodDelete, "/places/"+p.ID, a.token(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/places/"+p.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAmenityAdminOnly(t *testing.T) {
	a := newAPI(t)
	admin := a.user(t, "admin@b.io", true)
	regular := a.user(t, "reg@b.io", false)

	w := a.do(t, http.MethodPost, "/amenities", a.token(t, regular), gin.H{"name": "WiFi"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPost, "/amenities", a.token(t, admin), gin.H{"name": "WiFi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := dataMap(t, w)["id"].(string)
	require.NotEmpty(t, id)

	w = a.do(t, http.MethodGet, "/amenities", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodGet, "/amenities/"+id, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPut, "/amenities/"+id, a.token(t, regular), gin.H{"name": "Fast WiFi"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = a.do(t, http.MethodPut, "/amenities/"+id, a.token(t, admin), gin.H{"name": "Fast WiFi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fast WiFi", dataMap(t, w)["name"])

	w = a.do(t, http.MethodDelete, "/amenities/"+id, a.token(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodGet, "/amenities/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReview(t *testing.T) {
	a := newAPI(t)
	owner := a.user(t, "owner@b.io", false)
	guest := a.user(t, "guest@b.io", false)
	p := a.place(t, "Loft", owner.ID)

	w := a.do(t, http.MethodPost, "/reviews", a.token(t, owner), gin.H{
		"text": "great", "rating": 5, "user_id": owner.ID, "place_id": p.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code, "owners cannot review their own place")

	w = a.do(t, http.MethodPost, "/reviews", a.token(t, guest), gin.H{
		"text": "great", "rating": 5, "user_id": owner.ID, "place_id": p.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code, "non-admins review as themselves only")

	w = a.do(t, http.MethodPost, "/reviews", a.token(t, guest), gin.H{
		"text": "great", "rating": 5, "user_id": guest.ID, "place_id": "unknown",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodPost, "/reviews", a.token(t, guest), gin.H{
		"text": "great", "rating": 5, "user_id": guest.ID, "place_id": p.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/reviews", a.token(t, guest), gin.H{
		"text": "again", "rating": 3, "user_id": guest.ID, "place_id": p.ID,
	})
	assert.Equal(t, http.StatusConflict, w.Code, "one review per user per place")
}

func TestAdminCannotReviewOwnPlace(t *testing.T) {
	a := newAPI(t)
	admin := a.user(t, "admin@b.io", true)
	p := a.place(t, "Admin loft", admin.ID)

	w := a.do(t, http.MethodPost, "/reviews", a.token(t, admin), gin.H{
		"text": "great", "rating": 5, "user_id": admin.ID, "place_id": p.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code, "conflict of interest binds admins as authors too")
}

func TestUpdateReviewAuthorization(t *testing.T) {
	a := newAPI(t)
	admin := a.user(t, "admin@b.io", true)
	owner := a.user(t, "owner@b.io", false)
	guest := a.user(t, "guest@b.io", false)
	other := a.user(t, "other@b.io", false)
	p := a.place(t, "Loft", owner.ID)
	r, err := a.facade.CreateReview(context.Background(), application.CreateReviewInput{
		Text: "ok", Rating: 3, UserID: guest.ID, PlaceID: p.ID,
	})
	require.NoError(t, err)

	w := a.do(t, http.MethodPut, "/reviews/"+r.ID, a.token(t, other), gin.H{"rating": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPut, "/reviews/"+r.ID, a.token(t, guest), gin.H{"rating": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 5.0, dataMap(t, w)["rating"])

	w = a.do(t, http.MethodPut, "/reviews/"+r.ID, a.token(t, guest), gin.H{"rating": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodDelete, "/reviews/"+r.ID, a.token(t, other), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = a.do(t, http.MethodDelete, "/reviews/"+r.ID, a.token(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestReviewListingEndpoints(t *testing.T) {
	a := newAPI(t)
	owner := a.user(t, "owner@b.io", false)
	guest := a.user(t, "guest@b.io", false)
	p := a.place(t, "Loft", owner.ID)
	_, err := a.facade.CreateReview(context.Background(), application.CreateReviewInput{
		Text: "ok", Rating: 3, UserID: guest.ID, PlaceID: p.ID,
	})
	require.NoError(t, err)

	for _, path := range []string{
		fmt.Sprintf("/places/%s/reviews", p.ID),
		fmt.Sprintf("/users/%s/reviews", guest.ID),
		"/reviews",
	} {
		w := a.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		var items []map[string]any
		env := decode(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &items))
		assert.Len(t, items, 1, path)
	}

	w := a.do(t, http.MethodGet, "/places/unknown/reviews", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReviewExpandsRelations(t *testing.T) {
	a := newAPI(t)
	owner := a.user(t, "owner@b.io", false)
	guest := a.user(t, "guest@b.io", false)
	p := a.place(t, "Loft", owner.ID)
	r, err := a.facade.CreateReview(context.Background(), application.CreateReviewInput{
		Text: "ok", Rating: 3, UserID: guest.ID, PlaceID: p.ID,
	})
	require.NoError(t, err)

	w := a.do(t, http.MethodGet, "/reviews/"+r.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, w)
	assert.Equal(t, guest.ID, data["user"].(map[string]any)["id"])
	assert.Equal(t, "Loft", data["place"].(map[string]any)["title"])
}

func TestInvalidBearerToken(t *testing.T) {
	a := newAPI(t)
	u := a.user(t, "ada@b.io", false)

	w := a.do(t, http.MethodPut, "/users/"+u.ID, "garbage", gin.H{"first_name": "X"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
