package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"business-directory-service/internal/model"
)

// ErrNotFound is returned when a record id does not resolve.
var ErrNotFound = errors.New("not found")

type ListingRepository struct {
	db *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create inserts the listing and fills in its generated id.
func (r *ListingRepository) Create(ctx context.Context, l *model.BusinessListing) error {
	const insertQuery = `
        INSERT INTO business_listings (name, business_phone, city, address, images)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	err := r.db.QueryRowxContext(ctx, insertQuery,
		l.Name, l.BusinessPhone, l.City, l.Address, l.Images,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("ListingRepository.Create: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetAll(ctx context.Context) ([]model.BusinessListing, error) {
	const selectQuery = `
		SELECT id, name, business_phone, city, address, images
		FROM business_listings
		ORDER BY id
	`
	var listings []model.BusinessListing
	if err := r.db.SelectContext(ctx, &listings, selectQuery); err != nil {
		return nil, fmt.Errorf("ListingRepository.GetAll: %w", err)
	}
	return listings, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*model.BusinessListing, error) {
	const selectQuery = `
		SELECT id, name, business_phone, city, address, images
		FROM business_listings
		WHERE id = $1
	`
	var l model.BusinessListing
	if err := r.db.GetContext(ctx, &l, selectQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ListingRepository.GetByID: %w", err)
	}
	return &l, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *model.BusinessListing) error {
	const updateQuery = `
		UPDATE business_listings SET
			name           = $1,
			business_phone = $2,
			city           = $3,
			address        = $4,
			images         = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, updateQuery,
		l.Name, l.BusinessPhone, l.City, l.Address, l.Images, l.ID,
	)
	if err != nil {
		return fmt.Errorf("ListingRepository.Update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ListingRepository.Update rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM business_listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ListingRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ListingRepository.Delete rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	const q = `SELECT COUNT(1) FROM business_listings WHERE id = $1`
	if err := r.db.GetContext(ctx, &count, q, id); err != nil {
		return false, fmt.Errorf("ListingRepository.Exists: %w", err)
	}
	return count > 0, nil
}

// AppendImage records a stored image file id on the listing.
func (r *ListingRepository) AppendImage(ctx context.Context, id int64, fileID string) error {
	const updateQuery = `
		UPDATE business_listings
		SET images = array_append(COALESCE(images, '{}'), $1)
		WHERE id = $2
	`
	res, err := r.db.ExecContext(ctx, updateQuery, fileID, id)
	if err != nil {
		return fmt.Errorf("ListingRepository.AppendImage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ListingRepository.AppendImage rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
