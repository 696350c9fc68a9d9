package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/hbnb/hbnb-api/internal/interface/http"
	"github.com/hbnb/hbnb-api/internal/interface/middleware"
	"github.com/hbnb/hbnb-api/pkg/helpers"
)

// AmenityModule wires amenity routes.
// Public: GET /amenities, GET /amenities/:id
// Protected (admin): POST /amenities, PUT/DELETE /amenities/:id
type AmenityModule struct {
	Handler *handlers.AmenityHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewAmenityModule(h *handlers.AmenityHandler, jwt *helpers.JWTManager, rdb *redis.Client) *AmenityModule {
	return &AmenityModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *AmenityModule) Register(rg *gin.RouterGroup) {
	rg.GET("/amenities", m.Handler.List)
	rg.GET("/amenities/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/amenities", m.Handler.Create)
		auth.PUT("/amenities/:id", m.Handler.Update)
		auth.DELETE("/amenities/:id", m.Handler.Delete)
	}
}
