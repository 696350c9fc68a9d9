package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hbnb/hbnb-api/internal/application"
	handlers "github.com/hbnb/hbnb-api/internal/interface/http"
	"github.com/hbnb/hbnb-api/internal/router/modules"
	"github.com/hbnb/hbnb-api/pkg/helpers"
)

// Deps carries the constructed components every module is wired from.
// Explicit injection; no package-level singletons.
type Deps struct {
	Facade *application.Facade
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	Redis  *redis.Client
}

// InitModules builds handlers from the facade and registers every feature
// module with the registry. Called once at startup.
func InitModules(r *Registry, d Deps) {
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(d.Facade, d.JWT, d.Logger), d.Redis))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(d.Facade, d.Logger), d.JWT, d.Redis))
	r.Add(modules.NewPlaceModule(handlers.NewPlaceHandler(d.Facade, d.Logger), d.JWT, d.Redis))
	r.Add(modules.NewAmenityModule(handlers.NewAmenityHandler(d.Facade, d.Logger), d.JWT, d.Redis))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(d.Facade, d.Logger), d.JWT, d.Redis))
}
