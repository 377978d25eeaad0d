package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"business-directory-service/internal/model"
)

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Insert saves a new review and fills in its generated id.
func (r *ReviewRepository) Insert(ctx context.Context, review *model.Review) error {
	const insertQuery = `
        INSERT INTO reviews (business_id, user_id, rating, comment, response)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	err := r.db.QueryRowxContext(ctx, insertQuery,
		review.BusinessID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.Response,
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("ReviewRepository.Insert: %w", err)
	}
	return nil
}

// FindByBusiness returns all reviews for a business listing.
func (r *ReviewRepository) FindByBusiness(ctx context.Context, businessID int64) ([]model.Review, error) {
	const selectQuery = `
		SELECT id, business_id, user_id, rating, comment, response
		FROM reviews
		WHERE business_id = $1
		ORDER BY id
	`
	var reviews []model.Review
	if err := r.db.SelectContext(ctx, &reviews, selectQuery, businessID); err != nil {
		return nil, fmt.Errorf("ReviewRepository.FindByBusiness: %w", err)
	}
	return reviews, nil
}

// GetInBusiness loads one review scoped to its business listing.
func (r *ReviewRepository) GetInBusiness(ctx context.Context, businessID, reviewID int64) (*model.Review, error) {
	const selectQuery = `
		SELECT id, business_id, user_id, rating, comment, response
		FROM reviews
		WHERE id = $1 AND business_id = $2
	`
	var rev model.Review
	if err := r.db.GetContext(ctx, &rev, selectQuery, reviewID, businessID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ReviewRepository.GetInBusiness: %w", err)
	}
	return &rev, nil
}

// Mutate runs a read-modify-write on one review inside a transaction. The
// row is locked for the duration, mutate is applied to the loaded record,
// and the mutable fields are written back. Returns the mutated record.
func (r *ReviewRepository) Mutate(
	ctx context.Context,
	businessID, reviewID int64,
	mutate func(*model.Review) error,
) (*model.Review, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ReviewRepository.Mutate begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	const selectQuery = `
		SELECT id, business_id, user_id, rating, comment, response
		FROM reviews
		WHERE id = $1 AND business_id = $2
		FOR UPDATE
	`
	var rev model.Review
	if err = tx.GetContext(ctx, &rev, selectQuery, reviewID, businessID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("ReviewRepository.Mutate select: %w", err)
	}

	if err = mutate(&rev); err != nil {
		return nil, err
	}

	const updateQuery = `
		UPDATE reviews SET rating = $1, comment = $2, response = $3
		WHERE id = $4
	`
	if _, err = tx.ExecContext(ctx, updateQuery, rev.Rating, rev.Comment, rev.Response, rev.ID); err != nil {
		return nil, fmt.Errorf("ReviewRepository.Mutate update: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("ReviewRepository.Mutate commit: %w", err)
	}
	return &rev, nil
}

// Delete removes a review scoped to its business listing.
func (r *ReviewRepository) Delete(ctx context.Context, businessID, reviewID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = $1 AND business_id = $2`, reviewID, businessID)
	if err != nil {
		return fmt.Errorf("ReviewRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ReviewRepository.Delete rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
