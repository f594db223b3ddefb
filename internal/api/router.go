package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/userhub/user-api/docs"
	"github.com/userhub/user-api/internal/api/handler"
	"github.com/userhub/user-api/internal/api/middleware"
	"github.com/userhub/user-api/internal/core/ports"
	"github.com/userhub/user-api/internal/core/service"
	"github.com/userhub/user-api/internal/core/token"
	"github.com/userhub/user-api/internal/infrastructure/db/postgres"
	redisdb "github.com/userhub/user-api/internal/infrastructure/db/redis"
)

// RouterConfig carries the dependencies the router wires together. The
// signing secret travels inside the codec; nothing here is global.
type RouterConfig struct {
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Codec  *token.Codec
	Logger zerolog.Logger

	// RefreshOneUse enables the Redis-backed one-use refresh registry.
	// Requires Redis; ignored when no client is configured.
	RefreshOneUse bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("userapi"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(cfg.Pool)

	var registry ports.RefreshTokenRegistry
	if cfg.RefreshOneUse && cfg.Redis != nil {
		registry = redisdb.NewTokenRegistry(cfg.Redis)
	}

	authService := service.NewAuthService(userRepo, cfg.Codec, registry, cfg.Logger)
	userService := service.NewUserService(userRepo, cfg.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	extrasHandler := handler.NewExtrasHandler()

	authenticated := middleware.Auth(cfg.Codec)

	// --- Auth routes (public) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh-token", authHandler.RefreshToken)

	// --- Users CRUD (any valid access token) ---
	users := e.Group("/api/users", authenticated)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Gated example routes ---
	admin := e.Group("/api/admin", authenticated, middleware.RequireAdmin())
	admin.GET("", extrasHandler.AdminInfo)
	admin.GET("/stats", extrasHandler.AdminStats)

	protected := e.Group("/api/protected", authenticated, middleware.RequireUser())
	protected.GET("", extrasHandler.ProtectedInfo)
	protected.GET("/profile", extrasHandler.Profile)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Pool, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
