package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hbnb/hbnb-api/internal/application"
	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/interface/middleware"
	"github.com/hbnb/hbnb-api/pkg/response"
	"github.com/hbnb/hbnb-api/pkg/validation"
)

type PlaceHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewPlaceHandler(facade *application.Facade, logger *logrus.Logger) *PlaceHandler {
	return &PlaceHandler{Facade: facade, Logger: logger}
}

type createPlaceRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	OwnerID     string   `json:"owner_id" binding:"required"`
	Amenities   []string `json:"amenities"`
}

type updatePlaceRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	OwnerID     *string   `json:"owner_id"`
	Amenities   *[]string `json:"amenities"`
}

func placeJSON(p *entity.Place) gin.H {
	amenities := p.AmenityIDs
	if amenities == nil {
		amenities = []string{}
	}
	return gin.H{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"latitude":    p.Latitude,
		"longitude":   p.Longitude,
		"owner_id":    p.OwnerID,
		"amenities":   amenities,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

// Create registers a new place. Non-admins may only create places they own.
func (h *PlaceHandler) Create(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	var req createPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if !p.IsAdmin && req.OwnerID != p.ID {
		response.Error[any](c, http.StatusForbidden, "cannot create places for other users", nil)
		return
	}
	place, err := h.Facade.CreatePlace(c.Request.Context(), application.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     req.OwnerID,
		AmenityIDs:  req.Amenities,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, placeJSON(place), "place created", nil)
}

func (h *PlaceHandler) List(c *gin.Context) {
	places, err := h.Facade.ListPlaces(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	out := make([]gin.H, 0, len(places))
	for _, p := range places {
		out = append(out, placeJSON(p))
	}
	response.Success(c, http.StatusOK, out, "places", nil)
}

// Get returns a place with its owner and amenities expanded.
func (h *PlaceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	place, err := h.Facade.GetPlace(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	body := placeJSON(place)

	if owner, err := h.Facade.GetUser(ctx, place.OwnerID); err == nil {
		body["owner"] = gin.H{
			"id":         owner.ID,
			"first_name": owner.FirstName,
			"last_name":  owner.LastName,
			"email":      owner.Email,
		}
	}
	amenities := make([]gin.H, 0, len(place.AmenityIDs))
	for _, aid := range place.AmenityIDs {
		if a, err := h.Facade.GetAmenity(ctx, aid); err == nil {
			amenities = append(amenities, gin.H{"id": a.ID, "name": a.Name})
		}
	}
	body["amenities"] = amenities

	reviews, err := h.Facade.ListReviewsByPlace(ctx, place.ID)
	if err == nil {
		rs := make([]gin.H, 0, len(reviews))
		for _, r := range reviews {
			rs = append(rs, reviewJSON(r))
		}
		body["reviews"] = rs
	}
	response.Success(c, http.StatusOK, body, "place", nil)
}

// Update modifies a place. Owner or admin.
func (h *PlaceHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	place, err := h.Facade.GetPlace(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	if !p.IsAdmin && p.ID != place.OwnerID {
		response.Error[any](c, http.StatusForbidden, "cannot update a place you do not own", nil)
		return
	}
	var req updatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	updated, err := h.Facade.UpdatePlace(ctx, place.ID, application.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     req.OwnerID,
		AmenityIDs:  req.Amenities,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, placeJSON(updated), "place updated", nil)
}

// Delete removes a place. Admin only; owners go through an admin.
func (h *PlaceHandler) Delete(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	if !p.IsAdmin {
		response.Error[any](c, http.StatusForbidden, "admin privileges required", nil)
		return
	}
	if err := h.Facade.DeletePlace(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "place deleted", nil)
}

// ListReviews returns every review for the place.
func (h *PlaceHandler) ListReviews(c *gin.Context) {
	reviews, err := h.Facade.ListReviewsByPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	out := make([]gin.H, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, reviewJSON(r))
	}
	response.Success(c, http.StatusOK, out, "reviews", nil)
}
