package router

import (
	"github.com/labstack/echo/v4"

	"github.com/prestigemotors/rental-api/internal/handler"
	"github.com/prestigemotors/rental-api/internal/middleware"
	"github.com/prestigemotors/rental-api/internal/model"
)

// RegisterDriverJobs registers the job board and the customer driver
// request endpoints.
func RegisterDriverJobs(e *echo.Echo, h *handler.DriverJobHandler, jwtSecret string) {
	jobs := e.Group("/api/driver-jobs", middleware.JWTAuth(jwtSecret))
	jobs.GET("", h.List)
	jobs.PUT("/:id", h.Accept, middleware.RequireRole(model.RoleDriver))
	jobs.POST("", h.Create, middleware.RequireRole(model.RoleAdmin))
	jobs.DELETE("/:id", h.Delete, middleware.RequireRole(model.RoleAdmin))

	requested := e.Group("/api/requested-driver-jobs", middleware.JWTAuth(jwtSecret))
	requested.POST("", h.CreateRequested)
	requested.GET("", h.ListRequested, middleware.RequireRole(model.RoleAdmin))
	requested.DELETE("/:id", h.DeleteRequested, middleware.RequireRole(model.RoleAdmin))
}
