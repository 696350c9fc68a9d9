package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/hbnb/hbnb-api/internal/interface/http"
	"github.com/hbnb/hbnb-api/internal/interface/middleware"
	"github.com/hbnb/hbnb-api/pkg/helpers"
)

// PlaceModule wires place routes.
// Public: GET /places, GET /places/:id, GET /places/:id/reviews
// Protected: POST /places, PUT /places/:id, DELETE /places/:id (admin)
type PlaceModule struct {
	Handler *handlers.PlaceHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewPlaceModule(h *handlers.PlaceHandler, jwt *helpers.JWTManager, rdb *redis.Client) *PlaceModule {
	return &PlaceModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *PlaceModule) Register(rg *gin.RouterGroup) {
	rg.GET("/places", m.Handler.List)
	rg.GET("/places/:id", m.Handler.Get)
	rg.GET("/places/:id/reviews", m.Handler.ListReviews)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/places", m.Handler.Create)
		auth.PUT("/places/:id", m.Handler.Update)
		auth.DELETE("/places/:id", m.Handler.Delete)
	}
}
