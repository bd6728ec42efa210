package repository

import (
	"context"
	"database/sql"

	"github.com/prestigemotors/rental-api/internal/model"
)

// ReviewRepo provides read and append operations for customer reviews.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// List returns every review, newest first.
func (r *ReviewRepo) List(ctx context.Context) ([]model.Review, error) {
	const q = `SELECT id, name, content, created_at FROM reviews ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.Name, &rev.Content, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Create stores a new review and populates its generated ID and
// CreatedAt.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	const q = `INSERT INTO reviews (name, content) VALUES (?, ?)`
	result, err := r.db.ExecContext(ctx, q, rev.Name, rev.Content)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	const sel = `SELECT created_at FROM reviews WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, rev.ID).Scan(&rev.CreatedAt)
}

// Delete removes a review.  Admin only.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
