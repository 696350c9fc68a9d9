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

type AmenityHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewAmenityHandler(facade *application.Facade, logger *logrus.Logger) *AmenityHandler {
	return &AmenityHandler{Facade: facade, Logger: logger}
}

type amenityRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

func amenityJSON(a *entity.Amenity) gin.H {
	return gin.H{
		"id":         a.ID,
		"name":       a.Name,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	}
}

func requireAdmin(c *gin.Context) bool {
	p, _ := middleware.PrincipalFrom(c)
	if !p.IsAdmin {
		response.Error[any](c, http.StatusForbidden, "admin privileges required", nil)
		return false
	}
	return true
}

// Create registers a new amenity. Admin only.
func (h *AmenityHandler) Create(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var req amenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Facade.CreateAmenity(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, amenityJSON(a), "amenity created", nil)
}

func (h *AmenityHandler) List(c *gin.Context) {
	amenities, err := h.Facade.ListAmenities(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	out := make([]gin.H, 0, len(amenities))
	for _, a := range amenities {
		out = append(out, amenityJSON(a))
	}
	response.Success(c, http.StatusOK, out, "amenities", nil)
}

func (h *AmenityHandler) Get(c *gin.Context) {
	a, err := h.Facade.GetAmenity(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, amenityJSON(a), "amenity", nil)
}

// Update renames an amenity. Admin only.
func (h *AmenityHandler) Update(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var req amenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Facade.UpdateAmenity(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, amenityJSON(a), "amenity updated", nil)
}

// Delete removes an amenity and detaches it from places. Admin only.
func (h *AmenityHandler) Delete(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	if err := h.Facade.DeleteAmenity(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "amenity deleted", nil)
}
