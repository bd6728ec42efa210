package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestigemotors/rental-api/internal/booking"
	"github.com/prestigemotors/rental-api/internal/repository"
)

// fakeIntentClient records what it was asked to charge.
type fakeIntentClient struct {
	amount int64
	curr   string
	key    string
	err    error
}

func (f *fakeIntentClient) CreateIntent(_ context.Context, amountMinor int64, currency, idempotencyKey string) (string, error) {
	f.amount = amountMinor
	f.curr = currency
	f.key = idempotencyKey
	if f.err != nil {
		return "", f.err
	}
	return "pi_secret_123", nil
}

var carRows = []string{"id", "make", "model", "year", "description", "price", "images", "reason"}

func newTestHandler(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock, *fakeIntentClient) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	intents := &fakeIntentClient{}
	h := NewReservationHandler(
		repository.NewReservationRepo(db),
		repository.NewCarRepo(db),
		intents,
		"gbp",
	)
	return h, mock, intents
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func expectCar(mock sqlmock.Sqlmock, id uint64, price float64, reason string) {
	mock.ExpectQuery(`SELECT (.+) FROM cars WHERE id = \?`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(carRows).
			AddRow(id, "Rolls-Royce", "Ghost", 2024, "flagship saloon", price, `[]`, reason))
}

func TestQuoteMultiDay(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	expectCar(mock, 3, 100, "")
	mock.ExpectQuery(`(?s)SELECT (.+) FROM reservations WHERE car_id = \?`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(reservationRows()))

	req, rec := jsonRequest(http.MethodPost, "/api/reservations/quote",
		`{"carId":3,"startDate":"2026-03-10","endDate":"2026-03-12"}`)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Quote(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalPrice":300`)
	assert.Contains(t, rec.Body.String(), `"depositAmount":90`)
	assert.Contains(t, rec.Body.String(), `"remainingToPay":210`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteConflictingWindow(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	expectCar(mock, 3, 100, "")
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)SELECT (.+) FROM reservations WHERE car_id = \?`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(reservationRows()).
			AddRow(1, 7, 3, "Rolls-Royce", "Ghost",
				time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
				nil, nil, 400.0, 120.0, 280.0, created))

	// Proposal ends on the existing booking's first day; whole-day
	// occupancy makes the touch a conflict.
	req, rec := jsonRequest(http.MethodPost, "/api/reservations/quote",
		`{"carId":3,"startDate":"2026-03-09","endDate":"2026-03-11"}`)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Quote(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteChauffeurBelowMinimum(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	expectCar(mock, 5, 600, string(booking.ReasonChauffeur))
	mock.ExpectQuery(`(?s)SELECT (.+) FROM reservations WHERE car_id = \?`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(reservationRows()))

	req, rec := jsonRequest(http.MethodPost, "/api/reservations/quote",
		`{"carId":5,"startDate":"2026-03-10","startTime":"10:00","endTime":"13:00"}`)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Quote(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "6 hours")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentIntentForwardsIdempotencyKey(t *testing.T) {
	h, _, intents := newTestHandler(t)

	req, rec := jsonRequest(http.MethodPost, "/api/reservations/create-payment-intent",
		`{"amount":9000}`)
	req.Header.Set("Idempotency-Key", "booking-3-deposit")
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.CreatePaymentIntent(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pi_secret_123")
	assert.Equal(t, int64(9000), intents.amount)
	assert.Equal(t, "gbp", intents.curr)
	assert.Equal(t, "booking-3-deposit", intents.key)
}

func TestCreatePaymentIntentRejectsNonPositiveAmount(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req, rec := jsonRequest(http.MethodPost, "/api/reservations/create-payment-intent",
		`{"amount":0}`)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.CreatePaymentIntent(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettleAppliesPaymentAndFloorsRemaining(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT (.+) FROM reservations WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(reservationRows()).
			AddRow(9, 7, 3, "Rolls-Royce", "Ghost",
				time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
				nil, nil, 300.0, 90.0, 210.0, created))
	mock.ExpectExec(`UPDATE reservations`).
		WithArgs(300.0, 0.0, nil, nil, uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req, rec := jsonRequest(http.MethodPut, "/api/reservations/9", `{"currentPaid":210}`)
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")
	c.Set("user_id", uint64(7))
	c.Set("role", "CUSTOMER")

	require.NoError(t, h.Settle(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"currentPaid":300`)
	assert.Contains(t, rec.Body.String(), `"remainingToPay":0`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleRejectsInvalidAmount(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT (.+) FROM reservations WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(reservationRows()).
			AddRow(9, 7, 3, "Rolls-Royce", "Ghost",
				time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
				nil, nil, 300.0, 90.0, 210.0, created))
	mock.ExpectRollback()

	req, rec := jsonRequest(http.MethodPut, "/api/reservations/9", `{"currentPaid":-5}`)
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")
	c.Set("user_id", uint64(7))
	c.Set("role", "CUSTOMER")

	require.NoError(t, h.Settle(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleForbiddenForOtherUser(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT (.+) FROM reservations WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(reservationRows()).
			AddRow(9, 7, 3, "Rolls-Royce", "Ghost",
				time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
				nil, nil, 300.0, 90.0, 210.0, created))
	mock.ExpectRollback()

	req, rec := jsonRequest(http.MethodPut, "/api/reservations/9", `{"currentPaid":210}`)
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")
	c.Set("user_id", uint64(8)) // not the owner
	c.Set("role", "CUSTOMER")

	require.NoError(t, h.Settle(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func reservationRows() []string {
	return []string{
		"id", "user_id", "car_id", "car_make", "car_model",
		"start_date", "end_date", "start_time", "end_time",
		"total_price", "current_paid", "remaining_to_pay", "created_at",
	}
}
