package router

import (
	"github.com/labstack/echo/v4"

	"github.com/prestigemotors/rental-api/internal/handler"
	"github.com/prestigemotors/rental-api/internal/middleware"
	"github.com/prestigemotors/rental-api/internal/model"
)

// RegisterCars registers the catalogue endpoints.  Reads are public
// and served through the response cache; writes are admin only.
func RegisterCars(e *echo.Echo, h *handler.CarHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/api/cars", h.List, cache)
	e.GET("/api/cars/:carId", h.GetByID, cache)

	admin := e.Group("/api/cars", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
	admin.POST("", h.Create)
	admin.PUT("/:carId", h.Update)
	admin.DELETE("/:carId", h.Delete)
}
