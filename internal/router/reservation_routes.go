package router

import (
	"github.com/labstack/echo/v4"

	"github.com/prestigemotors/rental-api/internal/handler"
	"github.com/prestigemotors/rental-api/internal/middleware"
	"github.com/prestigemotors/rental-api/internal/model"
)

// RegisterReservations registers the reservation endpoints.  The
// availability read and quote are public so guests can price a booking
// before signing up; everything that creates or mutates state requires
// a token.  None of these routes are cached.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	e.GET("/api/reservations/car/:carId", h.ListByCar)
	e.POST("/api/reservations/quote", h.Quote)

	auth := e.Group("/api/reservations", middleware.JWTAuth(jwtSecret))
	auth.POST("/create-payment-intent", h.CreatePaymentIntent)
	auth.POST("", h.Create)
	auth.POST("/:id/pay", h.Pay)
	auth.PUT("/:id", h.Settle)
	auth.DELETE("/:id", h.Delete)
	auth.GET("/user/:userId", h.ListByUser)
	auth.GET("/:id", h.GetByID)
	auth.GET("", h.ListAll, middleware.RequireRole(model.RoleAdmin))
}
