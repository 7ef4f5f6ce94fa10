package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/blstream/ShopMe-Backend/internal/infra/config"
	"github.com/blstream/ShopMe-Backend/internal/transport/http/handlers"
	"github.com/blstream/ShopMe-Backend/internal/transport/http/middleware"
	"github.com/blstream/ShopMe-Backend/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Users        *usecase.UserService
	Offers       *usecase.OfferService
	Voivodeships *usecase.VoivodeshipService
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Metrics  *middleware.HTTPMetrics
	Services ServiceSet
	Database DatabaseChecker
	Cache    CacheChecker
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.AllowedOrigins))
	r.Use(deps.Metrics.Handler())

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(deps.Services.Auth)

	api := r.Group("/api/v1")
	{
		offerHandler := handlers.NewOfferHandler(deps.Services.Offers, deps.Services.Users)
		offerHandler.RegisterRoutes(api.Group("/offers"), requireAuth)

		userHandler := handlers.NewUserHandler(deps.Services.Users, deps.Services.Auth)
		userHandler.RegisterRoutes(api.Group("/users"), requireAuth)

		voivodeshipHandler := handlers.NewVoivodeshipHandler(deps.Services.Voivodeships)
		voivodeshipHandler.RegisterRoutes(api.Group("/voivodeships"))
	}

	return r
}
