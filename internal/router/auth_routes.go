package router

import (
	"github.com/labstack/echo/v4"

	"github.com/prestigemotors/rental-api/internal/handler"
	"github.com/prestigemotors/rental-api/internal/middleware"
)

// RegisterAuth registers the auth endpoints.  Register, login and
// refresh are open; logout accepts either a refresh token in the body
// or a bearer token; /api/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Bearer-only logout: revokes every session of the caller.
	auth.POST("/logout", a.Logout)
}
