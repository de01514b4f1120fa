package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/repository"

	"github.com/lib/pq"
)

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

const listingColumns = `id, owner_uid, owner_username, title, description, images, price_per_hour_cents, price_per_day_cents, available, removed, created_on, updated_on`

func (r *listingRepository) Create(ctx context.Context, l *domain.RentalListing) error {
	query := `INSERT INTO rental_listings (owner_uid, owner_username, title, description, images, price_per_hour_cents, price_per_day_cents, available, removed, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	l.CreatedOn = now
	l.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		l.OwnerUID, l.OwnerUsername, l.Title, l.Description, pq.Array(l.Images),
		l.PricePerHourCents, l.PricePerDayCents, l.Available, l.Removed, now, now,
	).Scan(&l.ID)
}

func scanListing(row interface{ Scan(...any) error }) (*domain.RentalListing, error) {
	l := &domain.RentalListing{}
	err := row.Scan(&l.ID, &l.OwnerUID, &l.OwnerUsername, &l.Title, &l.Description,
		pq.Array(&l.Images), &l.PricePerHourCents, &l.PricePerDayCents,
		&l.Available, &l.Removed, &l.CreatedOn, &l.UpdatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *listingRepository) GetByID(ctx context.Context, id int32) (*domain.RentalListing, error) {
	query := `SELECT ` + listingColumns + ` FROM rental_listings WHERE id = $1 AND removed = FALSE`
	return scanListing(r.db.QueryRowContext(ctx, query, id))
}

func (r *listingRepository) Update(ctx context.Context, l *domain.RentalListing) error {
	query := `UPDATE rental_listings SET title=$1, description=$2, images=$3, price_per_hour_cents=$4, price_per_day_cents=$5, available=$6, updated_on=$7 WHERE id=$8 AND removed = FALSE`
	result, err := r.db.ExecContext(ctx, query, l.Title, l.Description, pq.Array(l.Images),
		l.PricePerHourCents, l.PricePerDayCents, l.Available, time.Now(), l.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *listingRepository) Remove(ctx context.Context, id int32) error {
	query := `UPDATE rental_listings SET removed = TRUE, available = FALSE, updated_on = $1 WHERE id = $2 AND removed = FALSE`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *listingRepository) ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.RentalListing, int32, error) {
	return r.list(ctx, `available = TRUE AND removed = FALSE`, nil, page, pageSize)
}

func (r *listingRepository) ListByOwner(ctx context.Context, ownerUID string, page, pageSize int32) ([]domain.RentalListing, int32, error) {
	return r.list(ctx, `owner_uid = $1 AND removed = FALSE`, []any{ownerUID}, page, pageSize)
}

func (r *listingRepository) list(ctx context.Context, where string, args []any, page, pageSize int32) ([]domain.RentalListing, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM rental_listings WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + listingColumns + ` FROM rental_listings WHERE ` + where +
		fmt.Sprintf(` ORDER BY created_on DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var listings []domain.RentalListing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, err
		}
		listings = append(listings, *l)
	}
	return listings, count, rows.Err()
}
