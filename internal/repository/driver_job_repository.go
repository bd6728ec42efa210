package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prestigemotors/rental-api/internal/model"
)

// DriverJobRepo provides CRUD operations for the chauffeur job board
// and for customer driver requests.
type DriverJobRepo struct {
	db *sql.DB
}

// NewDriverJobRepo returns a new DriverJobRepo bound to the given database.
func NewDriverJobRepo(db *sql.DB) *DriverJobRepo { return &DriverJobRepo{db: db} }

const driverJobColumns = `id, title, pay, description, taken, accepted_by_name, accepted_by_email`

func scanDriverJob(scan func(dest ...any) error) (model.DriverJob, error) {
	var job model.DriverJob
	var name, email sql.NullString
	err := scan(&job.ID, &job.Title, &job.Pay, &job.Description, &job.Taken, &name, &email)
	if err != nil {
		return model.DriverJob{}, err
	}
	job.AcceptedByName = name.String
	job.AcceptedByEmail = email.String
	return job, nil
}

// List returns every job on the board, open jobs first.
func (r *DriverJobRepo) List(ctx context.Context) ([]model.DriverJob, error) {
	const q = `SELECT ` + driverJobColumns + ` FROM driver_jobs ORDER BY taken, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	jobs := make([]model.DriverJob, 0)
	for rows.Next() {
		job, err := scanDriverJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetByID returns a single job or ErrJobNotFound.
func (r *DriverJobRepo) GetByID(ctx context.Context, id uint64) (*model.DriverJob, error) {
	const q = `SELECT ` + driverJobColumns + ` FROM driver_jobs WHERE id = ?`
	job, err := scanDriverJob(r.db.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Create inserts a new open job and populates its generated ID.
func (r *DriverJobRepo) Create(ctx context.Context, job *model.DriverJob) error {
	const q = `INSERT INTO driver_jobs (title, pay, description, taken) VALUES (?, ?, ?, 0)`
	result, err := r.db.ExecContext(ctx, q, job.Title, job.Pay, job.Description)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	job.ID = uint64(id)
	return nil
}

// Accept marks an open job as taken by the given driver.  The WHERE
// clause guards taken = 0 so two drivers racing for the same job
// cannot both win; the loser gets ErrConflict.
func (r *DriverJobRepo) Accept(ctx context.Context, id uint64, name, email string) error {
	const q = `UPDATE driver_jobs SET taken = 1, accepted_by_name = ?, accepted_by_email = ? WHERE id = ? AND taken = 0`
	result, err := r.db.ExecContext(ctx, q, name, email, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// Delete removes a job from the board.
func (r *DriverJobRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM driver_jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

// ListRequested returns every customer driver request, newest first.
func (r *DriverJobRepo) ListRequested(ctx context.Context) ([]model.RequestedDriverJob, error) {
	const q = `SELECT id, drivers_needed, budget, days_required, contact_number, description, created_at
		FROM requested_driver_jobs ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reqs := make([]model.RequestedDriverJob, 0)
	for rows.Next() {
		var req model.RequestedDriverJob
		err := rows.Scan(&req.ID, &req.DriversNeeded, &req.Budget, &req.DaysRequired,
			&req.ContactNumber, &req.Description, &req.CreatedAt)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}

// CreateRequested stores a customer's driver request and populates its
// generated ID and CreatedAt.
func (r *DriverJobRepo) CreateRequested(ctx context.Context, req *model.RequestedDriverJob) error {
	const q = `INSERT INTO requested_driver_jobs (drivers_needed, budget, days_required, contact_number, description)
		VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		req.DriversNeeded, req.Budget, req.DaysRequired, req.ContactNumber, req.Description)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	const sel = `SELECT created_at FROM requested_driver_jobs WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, req.ID).Scan(&req.CreatedAt)
}

// DeleteRequested removes a customer driver request.
func (r *DriverJobRepo) DeleteRequested(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM requested_driver_jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}
