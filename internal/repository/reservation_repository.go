package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prestigemotors/rental-api/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  A
// reservation row is the store of record for a car's occupied windows:
// availability queries filter this table by car id.  All timestamps and
// dates are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span repository calls.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, user_id, car_id, car_make, car_model,
	start_date, end_date, start_time, end_time,
	total_price, current_paid, remaining_to_pay, created_at`

// scanReservation reads one row into a model.Reservation.  start_time
// and end_time are nullable VARCHAR columns holding "HH:MM" strings.
func scanReservation(scan func(dest ...any) error) (model.Reservation, error) {
	var res model.Reservation
	var startTime, endTime sql.NullString
	err := scan(
		&res.ID, &res.UserID, &res.CarID, &res.CarMake, &res.CarModel,
		&res.StartDate, &res.EndDate, &startTime, &endTime,
		&res.TotalPrice, &res.CurrentPaid, &res.RemainingToPay, &res.CreatedAt,
	)
	if err != nil {
		return model.Reservation{}, err
	}
	if startTime.Valid {
		st := startTime.String
		res.StartTime = &st
	}
	if endTime.Valid {
		et := endTime.String
		res.EndTime = &et
	}
	return res, nil
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByCar returns every reservation referencing the given car,
// oldest first.  This is the availability read used for conflict
// checking; it is deliberately uncached.
func (r *ReservationRepo) ListByCar(ctx context.Context, carID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE car_id = ? ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, q, carID)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// ListByCarForUpdateTx is ListByCar inside a transaction with the rows
// locked.  Creation re-validates the proposed window against this
// locked set immediately before insert, so two concurrent proposals
// for the same car cannot both commit overlapping windows.
func (r *ReservationRepo) ListByCarForUpdateTx(ctx context.Context, tx *sql.Tx, carID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE car_id = ? ORDER BY start_date FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, carID)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// ListByUser returns all reservations created by the given user, newest
// first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// ListAll returns every reservation, newest first.  Used by the admin
// panel.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// GetByID returns a single reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByIDForUpdateTx loads a reservation with its row locked, for
// settlement updates.  Returns ErrReservationNotFound when the id does
// not exist.
func (r *ReservationRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
	res, err := scanReservation(tx.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated ID and CreatedAt on the
// record.  The caller must commit or roll back the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
		(user_id, car_id, car_make, car_model, start_date, end_date, start_time, end_time,
		 total_price, current_paid, remaining_to_pay)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.UserID, res.CarID, res.CarMake, res.CarModel,
		res.StartDate, res.EndDate, res.StartTime, res.EndTime,
		res.TotalPrice, res.CurrentPaid, res.RemainingToPay,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the created_at default so the response carries it.
	const sel = `SELECT created_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt)
}

// UpdatePaymentTx writes the post-settlement balance (and optionally
// corrected clock times) back to a reservation.  The caller computes
// the new amounts with booking.Settle while holding the row lock taken
// by GetByIDForUpdateTx.
func (r *ReservationRepo) UpdatePaymentTx(ctx context.Context, tx *sql.Tx, id uint64, currentPaid, remainingToPay float64, startTime, endTime *string) error {
	const q = `UPDATE reservations
		SET current_paid = ?,
		    remaining_to_pay = ?,
		    start_time = COALESCE(?, start_time),
		    end_time = COALESCE(?, end_time)
		WHERE id = ?`
	result, err := tx.ExecContext(ctx, q, currentPaid, remainingToPay, startTime, endTime, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// Delete removes a reservation.  Cancellation is a hard delete; there
// is no soft-cancel state.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}
