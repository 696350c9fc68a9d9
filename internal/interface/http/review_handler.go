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

type ReviewHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewReviewHandler(facade *application.Facade, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Facade: facade, Logger: logger}
}

type createReviewRequest struct {
	Text    string `json:"text" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
	PlaceID string `json:"place_id" binding:"required"`
}

type updateReviewRequest struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

func reviewJSON(r *entity.Review) gin.H {
	return gin.H{
		"id":         r.ID,
		"text":       r.Text,
		"rating":     r.Rating,
		"user_id":    r.UserID,
		"place_id":   r.PlaceID,
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
}

// Create registers a new review. Non-admins must submit as themselves, and
// nobody may review a place they own: a review is a third-party endorsement,
// so the conflict-of-interest rule binds admins as authors too.
func (h *ReviewHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	p, _ := middleware.PrincipalFrom(c)
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if !p.IsAdmin && req.UserID != p.ID {
		response.Error[any](c, http.StatusForbidden, "cannot create reviews for other users", nil)
		return
	}
	place, err := h.Facade.GetPlace(ctx, req.PlaceID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if place.OwnerID == req.UserID {
		response.Error[any](c, http.StatusForbidden, "cannot review your own place", nil)
		return
	}
	r, err := h.Facade.CreateReview(ctx, application.CreateReviewInput{
		Text:    req.Text,
		Rating:  req.Rating,
		UserID:  req.UserID,
		PlaceID: req.PlaceID,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, reviewJSON(r), "review created", nil)
}

func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.Facade.ListReviews(c.Request.Context())
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

// Get returns a review with its author and place summarized.
func (h *ReviewHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	r, err := h.Facade.GetReview(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	body := reviewJSON(r)
	if u, err := h.Facade.GetUser(ctx, r.UserID); err == nil {
		body["user"] = gin.H{"id": u.ID, "first_name": u.FirstName, "last_name": u.LastName}
	}
	if place, err := h.Facade.GetPlace(ctx, r.PlaceID); err == nil {
		body["place"] = gin.H{"id": place.ID, "title": place.Title}
	}
	response.Success(c, http.StatusOK, body, "review", nil)
}

// Update modifies a review's text or rating. Author or admin.
func (h *ReviewHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	r, err := h.Facade.GetReview(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	if !p.IsAdmin && p.ID != r.UserID {
		response.Error[any](c, http.StatusForbidden, "can only update your own reviews", nil)
		return
	}
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	updated, err := h.Facade.UpdateReview(ctx, r.ID, application.UpdateReviewInput{
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, reviewJSON(updated), "review updated", nil)
}

// Delete removes a review. Author or admin.
func (h *ReviewHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	r, err := h.Facade.GetReview(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	if !p.IsAdmin && p.ID != r.UserID {
		response.Error[any](c, http.StatusForbidden, "can only delete your own reviews", nil)
		return
	}
	if err := h.Facade.DeleteReview(ctx, r.ID); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "review deleted", nil)
}
