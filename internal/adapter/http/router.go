package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"preauth-tracker/internal/adapter/middleware"
	"preauth-tracker/internal/domain/user"
	"preauth-tracker/internal/usecase/authz"
	"preauth-tracker/pkg/id"
)

// Deps is everything the route table needs. Redis may be nil, which disables
// idempotent replay and login throttling.
type Deps struct {
	Health  *Handler
	Auth    *AuthHandler
	Records *RecordHandler
	Users   *UserHandler

	Verifier     middleware.TokenVerifier
	Gate         *authz.Gate
	Redis        *redis.Client
	IdempTTL     time.Duration
	LoginLimiter *middleware.LoginLimiter
}

func NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.Use(
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: id.NewID32}),
		echomw.Logger(),
		echomw.Recover(),
		echomw.Secure(),
	)
	return e
}

func Register(e *echo.Echo, d Deps) {
	e.GET("/health", d.Health.Health)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", d.Auth.Login, d.LoginLimiter.Middleware())
	auth.POST("/logout", d.Auth.Logout)

	sess := middleware.Session(d.Verifier, d.Gate)
	admin := middleware.RequireRole(user.RoleAdmin)

	auth.GET("/me", d.Auth.Me, sess)
	auth.POST("/change-password", d.Auth.ChangePassword, sess)

	rec := api.Group("/records", sess)
	rec.GET("", d.Records.List)
	rec.GET("/deleted", d.Records.ListDeleted)
	rec.GET("/stats", d.Records.Stats)
	rec.GET("/export", d.Records.Export)
	rec.GET("/:id", d.Records.Get)
	rec.POST("", d.Records.Create, middleware.Idempotency(d.Redis, d.IdempTTL))
	rec.PUT("/:id", d.Records.Update)
	rec.DELETE("/:id", d.Records.SoftDelete, admin)
	rec.POST("/:id/restore", d.Records.Restore)
	rec.DELETE("/:id/permanent", d.Records.Purge, admin)

	users := api.Group("/users", sess, admin)
	users.GET("", d.Users.List)
	users.POST("", d.Users.Create)
	users.GET("/stats", d.Users.Stats)
	users.PATCH("/:id", d.Users.Update)
	users.DELETE("/:id", d.Users.Delete)
}
