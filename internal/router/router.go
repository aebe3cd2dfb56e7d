package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/placement-portal/internal/config"
	"github.com/iliyamo/placement-portal/internal/handler"
	"github.com/iliyamo/placement-portal/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.  Unauthenticated
// operations live under /v1/auth, while the identity endpoint lives under
// /v1 behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register/student", a.RegisterStudent)
	g.POST("/register/company", a.RegisterCompany)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh token in the body and does not require a JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated drive browse.  The listing
// follows the same visibility rules as the student browse and is served
// through the Redis response cache so repeated guest queries do not hit
// the database.
func RegisterPublic(e *echo.Echo, s *handler.StudentHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/v1/drives", s.BrowseDrives, middleware.NewRedisCache(cacheCfg, rdb))
}
