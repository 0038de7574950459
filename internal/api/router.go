package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobboard/users-api/internal/api/handler"
	"github.com/jobboard/users-api/internal/api/middleware"
	"github.com/jobboard/users-api/internal/core/ports"
	"github.com/jobboard/users-api/internal/core/service"
	mongodb "github.com/jobboard/users-api/internal/infrastructure/db/mongo"
	redisdb "github.com/jobboard/users-api/internal/infrastructure/db/redis"
	"github.com/jobboard/users-api/internal/infrastructure/hash"
)

// Dependencies carries everything the router needs to assemble the service.
type Dependencies struct {
	DB           *mongo.Database
	Redis        *redis.Client
	Audit        ports.AuditRecorder
	JWTSecret    string
	CookieSecret string
	TokenTTL     time.Duration
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("users_api"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	userCache := redisdb.NewUserCache(deps.Redis)
	hasher := hash.NewBcryptHasher(0)
	tokenService := service.NewTokenService(deps.JWTSecret, deps.TokenTTL)
	authService := service.NewAuthService(userRepo, hasher, tokenService, deps.Audit, deps.Logger)
	userService := service.NewUserService(userRepo, hasher, userCache, deps.Audit, deps.Logger)

	authHandler := handler.NewAuthHandler(authService, userService, deps.CookieSecret)
	userHandler := handler.NewUserHandler(userService, tokenService, deps.CookieSecret)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	// --- Route access policy: everything is protected unless listed here ---
	policy := middleware.NewAccessPolicy().
		Public(http.MethodPost, "/auth/sign-in").
		Public(http.MethodGet, "/health").
		Public(http.MethodGet, "/health/ready").
		Public(http.MethodGet, "/metrics").
		Public(http.MethodGet, "/swagger/*")

	e.Use(middleware.Auth(policy, tokenService, deps.CookieSecret))

	// --- Auth routes ---
	e.POST("/auth/sign-in", authHandler.SignIn)
	e.GET("/auth/profile", authHandler.Profile)
	e.POST("/auth/sign-out", authHandler.SignOut)

	// --- User routes ---
	e.POST("/users", userHandler.Create)
	e.GET("/users/:id", userHandler.Get)
	e.PUT("/users/:id", userHandler.Update)
	e.DELETE("/users/:id", userHandler.Delete)

	// --- Infrastructure endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
