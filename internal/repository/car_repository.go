package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/prestigemotors/rental-api/internal/model"
)

// CarRepo provides CRUD operations for the car catalogue.  Image URLs
// are stored as a JSON array in a TEXT column; the files themselves
// live in external storage.
type CarRepo struct {
	db *sql.DB
}

// NewCarRepo returns a new CarRepo bound to the given database.
func NewCarRepo(db *sql.DB) *CarRepo { return &CarRepo{db: db} }

const carColumns = `id, make, model, year, description, price, images, reason`

func scanCar(scan func(dest ...any) error) (model.Car, error) {
	var car model.Car
	var images sql.NullString
	var reason sql.NullString
	err := scan(&car.ID, &car.Make, &car.Model, &car.Year, &car.Description, &car.Price, &images, &reason)
	if err != nil {
		return model.Car{}, err
	}
	car.Images = []string{}
	if images.Valid && images.String != "" {
		if err := json.Unmarshal([]byte(images.String), &car.Images); err != nil {
			return model.Car{}, err
		}
	}
	car.Reason = reason.String
	return car, nil
}

// List returns the whole catalogue ordered by make and model.
func (r *CarRepo) List(ctx context.Context) ([]model.Car, error) {
	const q = `SELECT ` + carColumns + ` FROM cars ORDER BY make, model`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cars := make([]model.Car, 0)
	for rows.Next() {
		car, err := scanCar(rows.Scan)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cars, nil
}

// GetByID returns a single car or ErrCarNotFound.
func (r *CarRepo) GetByID(ctx context.Context, id uint64) (*model.Car, error) {
	const q = `SELECT ` + carColumns + ` FROM cars WHERE id = ?`
	car, err := scanCar(r.db.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// Create inserts a new car and populates its generated ID.
func (r *CarRepo) Create(ctx context.Context, car *model.Car) error {
	images, err := json.Marshal(car.Images)
	if err != nil {
		return err
	}
	const q = `INSERT INTO cars (make, model, year, description, price, images, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		car.Make, car.Model, car.Year, car.Description, car.Price, string(images), car.Reason)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	car.ID = uint64(id)
	return nil
}

// Update overwrites a car's fields.  Rate changes affect future
// pricing only; existing reservations keep the total fixed at their
// creation.  Returns ErrCarNotFound when the id does not exist.
func (r *CarRepo) Update(ctx context.Context, car *model.Car) error {
	images, err := json.Marshal(car.Images)
	if err != nil {
		return err
	}
	const q = `UPDATE cars SET make = ?, model = ?, year = ?, description = ?, price = ?, images = ?, reason = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q,
		car.Make, car.Model, car.Year, car.Description, car.Price, string(images), car.Reason, car.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a missing row from an unchanged one.
		if _, err := r.GetByID(ctx, car.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a car from the catalogue.  Existing reservations keep
// their denormalised make/model and are not touched.
func (r *CarRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCarNotFound
	}
	return nil
}
