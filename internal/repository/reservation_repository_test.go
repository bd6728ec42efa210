package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reservationRows = []string{
	"id", "user_id", "car_id", "car_make", "car_model",
	"start_date", "end_date", "start_time", "end_time",
	"total_price", "current_paid", "remaining_to_pay", "created_at",
}

func TestReservationRepoListByCar(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(reservationRows).
		AddRow(1, 7, 3, "Rolls-Royce", "Ghost",
			time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 12, 23, 59, 59, 0, time.UTC),
			nil, nil, 300.0, 90.0, 210.0, created).
		AddRow(2, 8, 3, "Rolls-Royce", "Ghost",
			time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			"10:00", "14:00", 400.0, 120.0, 280.0, created)
	mock.ExpectQuery(`(?s)SELECT (.+) FROM reservations WHERE car_id = \? ORDER BY start_date`).
		WithArgs(uint64(3)).
		WillReturnRows(rows)

	repo := NewReservationRepo(db)
	got, err := repo.ListByCar(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Nil(t, got[0].StartTime)
	assert.Nil(t, got[0].EndTime)
	require.NotNil(t, got[1].StartTime)
	require.NotNil(t, got[1].EndTime)
	assert.Equal(t, "10:00", *got[1].StartTime)
	assert.Equal(t, "14:00", *got[1].EndTime)
	assert.Equal(t, 210.0, got[0].RemainingToPay)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT (.+) FROM reservations WHERE id = \?`).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(reservationRows))

	repo := NewReservationRepo(db)
	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepoUpdatePaymentTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE reservations`).
		WithArgs(300.0, 0.0, nil, nil, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewReservationRepo(db)
	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.UpdatePaymentTx(context.Background(), tx, 5, 300.0, 0.0, nil, nil))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepoUpdatePaymentTxMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE reservations`).
		WithArgs(50.0, 250.0, nil, nil, uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewReservationRepo(db)
	tx, err := db.Begin()
	require.NoError(t, err)
	err = repo.UpdatePaymentTx(context.Background(), tx, 42, 50.0, 250.0, nil, nil)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepoDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM reservations WHERE id = \?`).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewReservationRepo(db)
	err = repo.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
