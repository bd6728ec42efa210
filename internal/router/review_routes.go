package router

import (
	"github.com/labstack/echo/v4"

	"github.com/prestigemotors/rental-api/internal/handler"
	"github.com/prestigemotors/rental-api/internal/middleware"
	"github.com/prestigemotors/rental-api/internal/model"
)

// RegisterReviews registers the testimonial endpoints.  Listing is
// public and cached; anyone may post, only admins may delete.
func RegisterReviews(e *echo.Echo, h *handler.ReviewHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/api/reviews", h.List, cache)
	e.POST("/api/reviews", h.Create)
	e.DELETE("/api/reviews/:id", h.Delete,
		middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
}
