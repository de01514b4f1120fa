package postgres

import (
	"context"
	"database/sql"
	"time"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/logger"
	"krayaa-backend/internal/repository"

	"github.com/lib/pq"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const txColumns = `id, listing_id, owner_uid, renter_uid, status,
	handover_date, agreed_return_date, condition_notes, proof_images, payment_confirmed, id_card_submitted, handover_confirmed_at,
	renter_accepted_at, renter_marked_returned_at, owner_confirmed_return_at,
	review_rating, review_comment, review_created_at,
	created_on, updated_on`

func (r *transactionRepository) Create(ctx context.Context, t *domain.RentalTransaction) error {
	logger.EnterMethod("transactionRepository.Create", "listingID", t.ListingID, "ownerUID", t.OwnerUID, "renterUID", t.RenterUID)

	query := `INSERT INTO rental_transactions (listing_id, owner_uid, renter_uid, status,
	            handover_date, agreed_return_date, condition_notes, proof_images, payment_confirmed, id_card_submitted, handover_confirmed_at,
	            created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	t.CreatedOn = now
	t.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query,
		t.ListingID, t.OwnerUID, t.RenterUID, t.Status,
		t.Handover.HandoverDate, t.Handover.AgreedReturnDate, t.Handover.ConditionNotes,
		pq.Array(t.Handover.Images), t.Handover.PaymentConfirmed, t.Handover.IDCardSubmitted, t.Handover.ConfirmedAt,
		now, now,
	).Scan(&t.ID)

	if err != nil {
		logger.ExitMethodWithError("transactionRepository.Create", err)
	} else {
		logger.ExitMethod("transactionRepository.Create", "transactionID", t.ID)
	}
	return err
}

func scanTransaction(row interface{ Scan(...any) error }) (*domain.RentalTransaction, error) {
	t := &domain.RentalTransaction{}
	var rating sql.NullInt32
	var comment sql.NullString
	var reviewedAt sql.NullTime
	err := row.Scan(&t.ID, &t.ListingID, &t.OwnerUID, &t.RenterUID, &t.Status,
		&t.Handover.HandoverDate, &t.Handover.AgreedReturnDate, &t.Handover.ConditionNotes,
		pq.Array(&t.Handover.Images), &t.Handover.PaymentConfirmed, &t.Handover.IDCardSubmitted, &t.Handover.ConfirmedAt,
		&t.RenterAcceptedAt, &t.RenterMarkedReturnedAt, &t.OwnerConfirmedReturnAt,
		&rating, &comment, &reviewedAt,
		&t.CreatedOn, &t.UpdatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		t.Review = &domain.Review{
			Rating:    rating.Int32,
			Comment:   comment.String,
			CreatedAt: reviewedAt.Time,
		}
	}
	return t, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id int32) (*domain.RentalTransaction, error) {
	query := `SELECT ` + txColumns + ` FROM rental_transactions WHERE id = $1`
	return scanTransaction(r.db.QueryRowContext(ctx, query, id))
}

// UpdateStatus is the only way a transition is persisted. The WHERE clause
// re-checks the expected status so two racing transitions cannot both
// succeed; the loser sees zero rows.
func (r *transactionRepository) UpdateStatus(ctx context.Context, t *domain.RentalTransaction, expected domain.HandshakeStatus) (bool, error) {
	query := `UPDATE rental_transactions
	          SET status=$1, renter_accepted_at=$2, renter_marked_returned_at=$3, owner_confirmed_return_at=$4, updated_on=$5
	          WHERE id=$6 AND status=$7`
	result, err := r.db.ExecContext(ctx, query,
		t.Status, t.RenterAcceptedAt, t.RenterMarkedReturnedAt, t.OwnerConfirmedReturnAt,
		time.Now(), t.ID, expected)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// SetReview writes the review in one conditional update: the row must be
// COMPLETED and unreviewed. Zero rows means the precondition failed; the
// caller re-fetches to report which one.
func (r *transactionRepository) SetReview(ctx context.Context, id int32, review *domain.Review) (bool, error) {
	query := `UPDATE rental_transactions
	          SET review_rating=$1, review_comment=$2, review_created_at=$3, updated_on=$4
	          WHERE id=$5 AND status=$6 AND review_rating IS NULL`
	result, err := r.db.ExecContext(ctx, query,
		review.Rating, review.Comment, review.CreatedAt, time.Now(), id, domain.StatusCompleted)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

const txViewColumns = `t.id, t.listing_id, t.owner_uid, t.renter_uid, t.status,
	t.handover_date, t.agreed_return_date, t.condition_notes, t.proof_images, t.payment_confirmed, t.id_card_submitted, t.handover_confirmed_at,
	t.renter_accepted_at, t.renter_marked_returned_at, t.owner_confirmed_return_at,
	t.review_rating, t.review_comment, t.review_created_at,
	t.created_on, t.updated_on,
	l.title, l.images, l.price_per_hour_cents, l.price_per_day_cents,
	o.username, o.avatar_id, re.username, re.avatar_id`

func scanView(row interface{ Scan(...any) error }) (*domain.HandshakeView, error) {
	v := &domain.HandshakeView{}
	var rating sql.NullInt32
	var comment sql.NullString
	var reviewedAt sql.NullTime
	err := row.Scan(&v.ID, &v.ListingID, &v.OwnerUID, &v.RenterUID, &v.Status,
		&v.Handover.HandoverDate, &v.Handover.AgreedReturnDate, &v.Handover.ConditionNotes,
		pq.Array(&v.Handover.Images), &v.Handover.PaymentConfirmed, &v.Handover.IDCardSubmitted, &v.Handover.ConfirmedAt,
		&v.RenterAcceptedAt, &v.RenterMarkedReturnedAt, &v.OwnerConfirmedReturnAt,
		&rating, &comment, &reviewedAt,
		&v.CreatedOn, &v.UpdatedOn,
		&v.Listing.Title, pq.Array(&v.Listing.Images), &v.Listing.PricePerHourCents, &v.Listing.PricePerDayCents,
		&v.Owner.Username, &v.Owner.AvatarID, &v.Renter.Username, &v.Renter.AvatarID)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		v.Review = &domain.Review{Rating: rating.Int32, Comment: comment.String, CreatedAt: reviewedAt.Time}
	}
	v.Listing.ID = v.ListingID
	v.Owner.UID = v.OwnerUID
	v.Renter.UID = v.RenterUID
	return v, nil
}

func viewQuery(where string) string {
	return `SELECT ` + txViewColumns + `
	        FROM rental_transactions t
	        JOIN rental_listings l ON l.id = t.listing_id
	        JOIN users o ON o.uid = t.owner_uid
	        JOIN users re ON re.uid = t.renter_uid
	        WHERE ` + where
}

func (r *transactionRepository) ListByParticipant(ctx context.Context, uid string) ([]domain.HandshakeView, error) {
	query := viewQuery(`t.owner_uid = $1 OR t.renter_uid = $1`) + ` ORDER BY t.updated_on DESC`
	rows, err := r.db.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []domain.HandshakeView
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, rows.Err()
}

func (r *transactionRepository) GetView(ctx context.Context, id int32) (*domain.HandshakeView, error) {
	query := viewQuery(`t.id = $1`)
	return scanView(r.db.QueryRowContext(ctx, query, id))
}
