package service

import (
	"context"
	"time"

	"krayaa-backend/internal/domain"
)

// EvidenceUpload is one proof image captured at handover, carried as bytes
// from the multipart request. The core never persists raw bytes; they go to
// object storage first.
type EvidenceUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// InitiateRequest is the validated input for the Initiate operation.
type InitiateRequest struct {
	ListingID        int32
	RenterUsername   string
	AgreedReturnDate time.Time
	ConditionNotes   string
	Images           []EvidenceUpload
	PaymentConfirmed bool
	IDCardSubmitted  bool
}

type HandshakeService interface {
	Initiate(ctx context.Context, ownerUID string, req InitiateRequest) (*domain.RentalTransaction, error)
	Accept(ctx context.Context, callerUID string, txID int32) (*domain.RentalTransaction, error)
	MarkReturned(ctx context.Context, callerUID string, txID int32) (*domain.RentalTransaction, error)
	ConfirmReturn(ctx context.Context, callerUID string, txID int32) (*domain.RentalTransaction, error)
	SubmitReview(ctx context.Context, callerUID string, txID int32, rating int32, comment string) (*domain.Review, error)
	Get(ctx context.Context, callerUID string, txID int32) (*domain.HandshakeView, error)
	ListMine(ctx context.Context, callerUID string) ([]domain.HandshakeView, error)
}

type CreateListingRequest struct {
	Title             string
	Description       string
	Images            []EvidenceUpload
	PricePerHourCents *int32
	PricePerDayCents  *int32
}

type UpdateListingRequest struct {
	Title             string
	Description       string
	PricePerHourCents *int32
	PricePerDayCents  *int32
	Available         bool
}

type ListingService interface {
	Create(ctx context.Context, owner *domain.User, req CreateListingRequest) (*domain.RentalListing, error)
	Get(ctx context.Context, id int32) (*domain.RentalListing, error)
	ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.RentalListing, int32, error)
	ListMine(ctx context.Context, ownerUID string, page, pageSize int32) ([]domain.RentalListing, int32, error)
	Update(ctx context.Context, callerUID string, id int32, req UpdateListingRequest) (*domain.RentalListing, error)
	Remove(ctx context.Context, callerUID string, id int32) error
}

type ReputationService interface {
	// Award appends a ledger entry and atomically increments the user's
	// cached total. Notification is best-effort; its failure never rolls
	// back the award.
	Award(ctx context.Context, userUID string, sourceType domain.ReputationSource, sourceID string, points int32, reason string) (*domain.ReputationLog, error)
	ListLog(ctx context.Context, userUID string, page, pageSize int32) ([]domain.ReputationLog, int32, error)
}

type NotificationService interface {
	// Notify records a user-addressed message. An empty userUID is a
	// silent no-op. Never blocks business flow on failure.
	Notify(ctx context.Context, userUID, ntype, title, message, link string)
	List(ctx context.Context, userUID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userUID string, id int32) error
}

type UserService interface {
	// EnsureUser lazily creates the profile row for a verified identity.
	EnsureUser(ctx context.Context, uid, email string) (*domain.User, error)
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
	UpdateProfile(ctx context.Context, uid, username string, avatarID int32) (*domain.User, error)
}

type EmailService interface {
	SendHandshakeRequest(ctx context.Context, renterEmail, renterName, listingTitle string) error
	SendHandshakeAccepted(ctx context.Context, ownerEmail, ownerName, listingTitle string) error
	SendHandshakeCompleted(ctx context.Context, renterEmail, renterName, listingTitle string) error
}
