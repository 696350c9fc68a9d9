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

type UserHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewUserHandler(facade *application.Facade, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Facade: facade, Logger: logger}
}

type createUserRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	IsAdmin   bool   `json:"is_admin"`
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// userJSON never includes the password hash.
func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"is_admin":   u.IsAdmin,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// Create registers a new user. Admin only.
func (h *UserHandler) Create(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	if !p.IsAdmin {
		response.Error[any](c, http.StatusForbidden, "admin privileges required", nil)
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Facade.CreateUser(c.Request.Context(), application.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, userJSON(u), "user created", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Facade.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userJSON(u))
	}
	response.Success(c, http.StatusOK, out, "users", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Facade.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "user", nil)
}

// Update applies a partial update. Users may change their own name fields;
// email and password changes are reserved for admins, who may also update any
// user. Authorization is decided before the payload is validated.
func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	p, _ := middleware.PrincipalFrom(c)
	if !p.IsAdmin && p.ID != id {
		response.Error[any](c, http.StatusForbidden, "cannot update another user", nil)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if !p.IsAdmin && (req.Email != nil || req.Password != nil) {
		response.Error[any](c, http.StatusForbidden, "only admins can change email or password", nil)
		return
	}
	u, err := h.Facade.UpdateUser(c.Request.Context(), id, application.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "user updated", nil)
}

// Delete removes a user and cascades to their places and reviews. Self or
// admin.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	p, _ := middleware.PrincipalFrom(c)
	if !p.IsAdmin && p.ID != id {
		response.Error[any](c, http.StatusForbidden, "cannot delete another user", nil)
		return
	}
	if err := h.Facade.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}

// ListReviews returns every review authored by the user.
func (h *UserHandler) ListReviews(c *gin.Context) {
	reviews, err := h.Facade.ListReviewsByUser(c.Request.Context(), c.Param("id"))
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
