package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/hbnb/hbnb-api/internal/interface/http"
	"github.com/hbnb/hbnb-api/internal/interface/middleware"
	"github.com/hbnb/hbnb-api/pkg/helpers"
)

// ReviewModule wires review routes.
// Public: GET /reviews, GET /reviews/:id
// Protected: POST /reviews, PUT/DELETE /reviews/:id
type ReviewModule struct {
	Handler *handlers.ReviewHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewReviewModule(h *handlers.ReviewHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ReviewModule {
	return &ReviewModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	rg.GET("/reviews", m.Handler.List)
	rg.GET("/reviews/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/reviews", m.Handler.Create)
		auth.PUT("/reviews/:id", m.Handler.Update)
		auth.DELETE("/reviews/:id", m.Handler.Delete)
	}
}
