package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prestigemotors/rental-api/internal/middleware"
	"github.com/prestigemotors/rental-api/internal/model"
	"github.com/prestigemotors/rental-api/internal/repository"
)

// DriverJobHandler serves the chauffeur job board and customer driver
// requests.  There is no matching or scheduling: a job carries a
// `taken` flag a driver flips by accepting it.
type DriverJobHandler struct {
	Jobs  *repository.DriverJobRepo
	Users *repository.UserRepo
}

func NewDriverJobHandler(jobs *repository.DriverJobRepo, users *repository.UserRepo) *DriverJobHandler {
	return &DriverJobHandler{Jobs: jobs, Users: users}
}

type driverJobReq struct {
	Title       string  `json:"title"`
	Pay         float64 `json:"pay"`
	Description string  `json:"description"`
}

type requestedJobReq struct {
	DriversNeeded int     `json:"driversNeeded"`
	Budget        float64 `json:"budget"`
	DaysRequired  int     `json:"daysRequired"`
	ContactNumber string  `json:"contactNumber"`
	Description   string  `json:"description"`
}

// List returns the job board, open jobs first.
func (h *DriverJobHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	jobs, err := h.Jobs.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, jobs)
}

// Create posts a new job.  Admin only.
func (h *DriverJobHandler) Create(c echo.Context) error {
	var req driverJobReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" || req.Pay <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and positive pay required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	job := &model.DriverJob{
		Title:       strings.TrimSpace(req.Title),
		Pay:         req.Pay,
		Description: req.Description,
	}
	if err := h.Jobs.Create(ctx, job); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create job failed"})
	}
	return c.JSON(http.StatusCreated, job)
}

// Accept marks a job as taken by the authenticated driver.  Only
// verified drivers may accept; losing a race for an open job returns
// 409.
func (h *DriverJobHandler) Accept(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid job id"})
	}
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !u.IsVerifiedDriver {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "driver not verified"})
	}

	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if err := h.Jobs.Accept(ctx, id, name, u.Email); err != nil {
		switch {
		case errors.Is(err, repository.ErrJobNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "job already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept job failed"})
	}

	job, err := h.Jobs.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, job)
}

// Delete removes a job from the board.  Admin only.
func (h *DriverJobHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid job id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete job failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRequested returns customer driver requests.  Admin only.
func (h *DriverJobHandler) ListRequested(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reqs, err := h.Jobs.ListRequested(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, reqs)
}

// CreateRequested stores a customer's driver request.
func (h *DriverJobHandler) CreateRequested(c echo.Context) error {
	var req requestedJobReq
	if err := c.Bind(&req); err != nil || req.DriversNeeded < 1 || req.Budget <= 0 || req.DaysRequired < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "driversNeeded, budget and daysRequired must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r := &model.RequestedDriverJob{
		DriversNeeded: req.DriversNeeded,
		Budget:        req.Budget,
		DaysRequired:  req.DaysRequired,
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		Description:   req.Description,
	}
	if err := h.Jobs.CreateRequested(ctx, r); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create request failed"})
	}
	return c.JSON(http.StatusCreated, r)
}

// DeleteRequested removes a customer driver request.  Admin only.
func (h *DriverJobHandler) DeleteRequested(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Jobs.DeleteRequested(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete request failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
