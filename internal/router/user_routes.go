package router

import (
	"github.com/labstack/echo/v4"

	"github.com/prestigemotors/rental-api/internal/handler"
	"github.com/prestigemotors/rental-api/internal/middleware"
	"github.com/prestigemotors/rental-api/internal/model"
)

// RegisterUsers registers user management.  Listing, deleting,
// promoting and driver verification are admin operations; reading and
// editing a profile is open to the account owner as well.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, jwtSecret string) {
	users := e.Group("/api/users", middleware.JWTAuth(jwtSecret))
	users.GET("/:id", h.GetByID)
	users.PUT("/:id", h.Update)
	users.GET("/:id/isAdmin", h.IsAdmin)

	admin := users.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.GET("", h.List)
	admin.DELETE("/:id", h.Delete)
	admin.PUT("/:id/verifyDriver", h.VerifyDriver)
	admin.PUT("/:id/role", h.SetRole)
}
