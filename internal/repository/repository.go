package repository

import (
	"context"

	"krayaa-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// IncrementReputation atomically adjusts the cached total on the user
	// row by delta. It never recomputes from the log.
	IncrementReputation(ctx context.Context, uid string, delta int32) error
}

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.RentalListing) error
	GetByID(ctx context.Context, id int32) (*domain.RentalListing, error)
	Update(ctx context.Context, listing *domain.RentalListing) error
	// Remove soft-removes a listing; the row is retained for handshake
	// and review integrity.
	Remove(ctx context.Context, id int32) error
	ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.RentalListing, int32, error)
	ListByOwner(ctx context.Context, ownerUID string, page, pageSize int32) ([]domain.RentalListing, int32, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.RentalTransaction) error
	GetByID(ctx context.Context, id int32) (*domain.RentalTransaction, error)
	// UpdateStatus persists a transition with a check-and-set on the
	// expected current status. It reports whether a row was updated; a
	// false return means the transaction is missing or its status moved
	// under the caller.
	UpdateStatus(ctx context.Context, tx *domain.RentalTransaction, expected domain.HandshakeStatus) (bool, error)
	// SetReview writes the review only when the transaction is COMPLETED
	// and unreviewed, in a single conditional update.
	SetReview(ctx context.Context, id int32, review *domain.Review) (bool, error)
	// ListByParticipant returns enriched views where uid is owner or
	// renter, newest activity first.
	ListByParticipant(ctx context.Context, uid string) ([]domain.HandshakeView, error)
	// GetView returns one enriched view.
	GetView(ctx context.Context, id int32) (*domain.HandshakeView, error)
}

type ReputationRepository interface {
	// CreateLog appends an immutable point-award record.
	CreateLog(ctx context.Context, log *domain.ReputationLog) error
	ListByUser(ctx context.Context, uid string, page, pageSize int32) ([]domain.ReputationLog, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userUID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id int32, userUID string) error
}
