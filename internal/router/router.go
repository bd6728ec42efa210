// Package router wires handlers, auth middleware and the response
// cache onto the Echo instance.  All API routes live under /api; role
// enforcement happens here so handlers only deal with ownership.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/prestigemotors/rental-api/internal/handler"
)

// RegisterRoutes registers routes that need no authentication or
// dependencies: currently just the health check used by load
// balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
