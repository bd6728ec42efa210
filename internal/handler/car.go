package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prestigemotors/rental-api/internal/model"
	"github.com/prestigemotors/rental-api/internal/repository"
)

// CarHandler bundles dependencies for the car catalogue endpoints.
type CarHandler struct {
	Cars *repository.CarRepo
}

func NewCarHandler(cars *repository.CarRepo) *CarHandler { return &CarHandler{Cars: cars} }

type carReq struct {
	Make        string   `json:"make"`
	Model       string   `json:"model"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Reason      string   `json:"carForReason"`
}

func (req carReq) valid() bool {
	if req.Make == "" || req.Model == "" || req.Price <= 0 {
		return false
	}
	switch req.Reason {
	case "", "MusicVideo", "Chauffeur":
		return true
	}
	return false
}

// List returns the whole catalogue.  Public and cached.
func (h *CarHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cars, err := h.Cars.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, cars)
}

// GetByID returns a single car.  Public and cached.
func (h *CarHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("carId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	car, err := h.Cars.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, car)
}

// Create adds a car to the catalogue.  Admin only.
func (h *CarHandler) Create(c echo.Context) error {
	var req carReq
	if err := c.Bind(&req); err != nil || !req.valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	car := &model.Car{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Reason:      req.Reason,
	}
	if car.Images == nil {
		car.Images = []string{}
	}
	if err := h.Cars.Create(ctx, car); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create car failed"})
	}
	return c.JSON(http.StatusCreated, car)
}

// Update replaces a car's fields.  Admin only.  Existing reservations
// keep the total they were priced at; a rate change only affects
// future bookings.
func (h *CarHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("carId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
	}
	var req carReq
	if err := c.Bind(&req); err != nil || !req.valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	car := &model.Car{
		ID:          id,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Reason:      req.Reason,
	}
	if car.Images == nil {
		car.Images = []string{}
	}
	if err := h.Cars.Update(ctx, car); err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update car failed"})
	}
	return c.JSON(http.StatusOK, car)
}

// Delete removes a car.  Admin only.
func (h *CarHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("carId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Cars.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete car failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
