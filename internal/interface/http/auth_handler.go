package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hbnb/hbnb-api/internal/application"
	"github.com/hbnb/hbnb-api/pkg/helpers"
	"github.com/hbnb/hbnb-api/pkg/response"
	"github.com/hbnb/hbnb-api/pkg/validation"
)

type AuthHandler struct {
	Facade *application.Facade
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthHandler(facade *application.Facade, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Facade: facade, JWT: jwt, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges email/password for a bearer token carrying the caller's id
// and admin flag.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	token, exp, err := h.JWT.GenerateToken(u.ID, u.IsAdmin)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   exp,
	}, "login successful", nil)
}
