package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prestigemotors/rental-api/internal/booking"
	"github.com/prestigemotors/rental-api/internal/middleware"
	"github.com/prestigemotors/rental-api/internal/model"
	"github.com/prestigemotors/rental-api/internal/payment"
	"github.com/prestigemotors/rental-api/internal/queue"
	"github.com/prestigemotors/rental-api/internal/repository"
	queue_publisher "github.com/prestigemotors/rental-api/internal/service"
)

const dateLayout = "2006-01-02"

// ReservationHandler bundles dependencies for the reservation
// endpoints: availability reads, quoting, payment intents and the
// reservation lifecycle.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Cars         *repository.CarRepo
	Intents      payment.IntentClient
	Currency     string
}

func NewReservationHandler(r *repository.ReservationRepo, cars *repository.CarRepo, intents payment.IntentClient, currency string) *ReservationHandler {
	return &ReservationHandler{Reservations: r, Cars: cars, Intents: intents, Currency: currency}
}

// ----- DTOs -----

type proposalReq struct {
	CarID     uint64 `json:"carId"`
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM, hourly bookings only
	EndTime   string `json:"endTime"`
}

type intentReq struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
}

type settleReq struct {
	CurrentPaid float64 `json:"currentPaid"` // amount settled now, major units
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
}

// parseProposal validates the raw request and resolves it into dates
// and an occupancy window.
func parseProposal(req proposalReq) (startDate, endDate time.Time, w booking.Window, err error) {
	startDate, err = time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, booking.Window{}, booking.ErrInvalidWindow
	}
	endDate = startDate
	if req.EndDate != "" {
		endDate, err = time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, booking.Window{}, booking.ErrInvalidWindow
		}
	}
	w, err = booking.Normalize(startDate, endDate, req.StartTime, req.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, booking.Window{}, err
	}
	return startDate, endDate, w, nil
}

// priceProposal prices a validated proposal against a car's rate and
// rental reason.
func priceProposal(car *model.Car, req proposalReq, startDate, endDate time.Time) (booking.Quote, error) {
	var total float64
	var err error
	if req.StartTime != "" && req.EndTime != "" {
		total, err = booking.PriceHourly(car.Price, booking.Reason(car.Reason), req.StartTime, req.EndTime)
	} else {
		total, err = booking.PriceMultiDay(car.Price, startDate, endDate)
	}
	if err != nil {
		return booking.Quote{}, err
	}
	return booking.NewQuote(total), nil
}

// windowsOf converts stored reservations into occupancy windows.  Rows
// that fail to normalize are treated as occupying their whole date
// range rather than silently freeing the car.
func windowsOf(reservations []model.Reservation) []booking.Window {
	out := make([]booking.Window, 0, len(reservations))
	for _, res := range reservations {
		st, et := "", ""
		if res.StartTime != nil && res.EndTime != nil {
			st, et = *res.StartTime, *res.EndTime
		}
		w, err := booking.Normalize(res.StartDate, res.EndDate, st, et)
		if err != nil {
			w, _ = booking.Normalize(res.StartDate, res.EndDate, "", "")
		}
		out = append(out, w)
	}
	return out
}

// ListByCar returns every reservation for a car.  Public: the frontend
// uses it to grey out occupied dates.  Never cached, so proposals are
// always checked against current rows.
func (h *ReservationHandler) ListByCar(c echo.Context) error {
	carID, err := strconv.ParseUint(c.Param("carId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservations, err := h.Reservations.ListByCar(ctx, carID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, reservations)
}

// Quote prices a proposed window without persisting anything.  Returns
// 409 when the window conflicts with an existing reservation and 422
// when a minimum-duration rule is violated.
func (h *ReservationHandler) Quote(c echo.Context) error {
	var req proposalReq
	if err := c.Bind(&req); err != nil || req.CarID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	startDate, endDate, w, err := parseProposal(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking window"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	car, err := h.Cars.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	existing, err := h.Reservations.ListByCar(ctx, req.CarID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if booking.HasConflict(w, windowsOf(existing)) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "car is already reserved for the selected window"})
	}

	quote, err := priceProposal(car, req, startDate, endDate)
	if err != nil {
		var durErr *booking.InvalidDurationError
		if errors.As(err, &durErr) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": durErr.Error()})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking window"})
	}
	return c.JSON(http.StatusOK, quote)
}

// CreatePaymentIntent creates a deposit payment intent with the card
// processor.  The amount is taken in integer minor units exactly as it
// will be charged.  An optional Idempotency-Key header makes retries
// safe after a network failure.
func (h *ReservationHandler) CreatePaymentIntent(c echo.Context) error {
	var req intentReq
	if err := c.Bind(&req); err != nil || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive integer of minor units"})
	}
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = h.Currency
	}
	idempotencyKey := c.Request().Header.Get("Idempotency-Key")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	secret, err := h.Intents.CreateIntent(ctx, req.Amount, currency, idempotencyKey)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment intent failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"client_secret": secret})
}

// Create persists a reservation after the deposit has been confirmed
// client-side.  The price is computed server-side from the car's
// current rate and the window is re-validated against locked rows
// inside the insert transaction, so two racing proposals cannot both
// commit.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req proposalReq
	if err := c.Bind(&req); err != nil || req.CarID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	startDate, endDate, w, err := parseProposal(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking window"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	car, err := h.Cars.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	quote, err := priceProposal(car, req, startDate, endDate)
	if err != nil {
		var durErr *booking.InvalidDurationError
		if errors.As(err, &durErr) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": durErr.Error()})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking window"})
	}

	res := &model.Reservation{
		UserID:         uid,
		CarID:          car.ID,
		CarMake:        car.Make,
		CarModel:       car.Model,
		StartDate:      startDate,
		EndDate:        endDate,
		TotalPrice:     quote.TotalPrice,
		CurrentPaid:    quote.DepositAmount,
		RemainingToPay: quote.RemainingToPay,
	}
	if req.StartTime != "" && req.EndTime != "" {
		res.StartTime = &req.StartTime
		res.EndTime = &req.EndTime
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Re-check against locked rows: the client-side check raced with
	// other proposals between quote and create.
	existing, err := h.Reservations.ListByCarForUpdateTx(ctx, tx, car.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if booking.HasConflict(w, windowsOf(existing)) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "car is already reserved for the selected window; if your card was charged, contact support for a refund",
		})
	}

	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "payment succeeded but the reservation could not be saved; contact support",
		})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "payment succeeded but the reservation could not be saved; contact support",
		})
	}
	committed = true

	event := queue.ReservationConfirmedEvent{
		ReservationID:  res.ID,
		UserID:         res.UserID,
		CarID:          res.CarID,
		CarMake:        res.CarMake,
		CarModel:       res.CarModel,
		StartDate:      res.StartDate.Format(dateLayout),
		EndDate:        res.EndDate.Format(dateLayout),
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		TotalPrice:     res.TotalPrice,
		DepositAmount:  res.CurrentPaid,
		RemainingToPay: res.RemainingToPay,
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishReservationConfirmed(context.Background(), event) }()

	return c.JSON(http.StatusCreated, res)
}

// Pay creates a payment intent for settling part or all of a
// reservation's remaining balance.  Only the reservation's owner or an
// admin may pay towards it.
func (h *ReservationHandler) Pay(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req intentReq
	if err := c.Bind(&req); err != nil || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive integer of minor units"})
	}
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = h.Currency
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.authorizeOwner(c, res.UserID); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	secret, err := h.Intents.CreateIntent(ctx, req.Amount, currency, c.Request().Header.Get("Idempotency-Key"))
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment intent failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"client_secret": secret})
}

// Settle applies a confirmed settlement payment to a reservation's
// balance.  The amount is added to currentPaid; remainingToPay floors
// at zero.  Invalid amounts are rejected loudly instead of being
// coerced to zero.
func (h *ReservationHandler) Settle(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req settleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.authorizeOwner(c, res.UserID); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	paid, remaining, err := booking.Settle(res.TotalPrice, res.CurrentPaid, req.CurrentPaid)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "settlement amount must be a positive number"})
	}

	if err := h.Reservations.UpdatePaymentTx(ctx, tx, id, paid, remaining, req.StartTime, req.EndTime); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	committed = true

	res.CurrentPaid = paid
	res.RemainingToPay = remaining
	if req.StartTime != nil {
		res.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		res.EndTime = req.EndTime
	}

	event := queue.PaymentSettledEvent{
		ReservationID:  res.ID,
		UserID:         res.UserID,
		Amount:         req.CurrentPaid,
		CurrentPaid:    paid,
		RemainingToPay: remaining,
		SettledAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishPaymentSettled(context.Background(), event) }()

	return c.JSON(http.StatusOK, res)
}

// Delete cancels a reservation.  Owner or admin only; hard delete.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.authorizeOwner(c, res.UserID); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAll returns every reservation.  Admin only (enforced by the
// router's role gate).
func (h *ReservationHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservations, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, reservations)
}

// ListByUser returns a user's reservations.  A user may only read
// their own; admins may read anyone's.
func (h *ReservationHandler) ListByUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if err := h.authorizeOwner(c, userID); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservations, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, reservations)
}

// GetByID returns a single reservation to its owner or an admin.
func (h *ReservationHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.authorizeOwner(c, res.UserID); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, res)
}

// authorizeOwner allows the owning user and admins.
func (h *ReservationHandler) authorizeOwner(c echo.Context, ownerID uint64) error {
	if middleware.CurrentRole(c) == model.RoleAdmin {
		return nil
	}
	if uid, ok := middleware.CurrentUserID(c); ok && uid == ownerID {
		return nil
	}
	return repository.ErrForbidden
}
