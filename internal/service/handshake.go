package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/logger"
	"krayaa-backend/internal/repository"
	"krayaa-backend/internal/storage"
	"krayaa-backend/internal/utils"

	"github.com/google/uuid"
)

const proofImagePrefix = "rental_proofs"

type handshakeService struct {
	txRepo      repository.TransactionRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	noteSvc     NotificationService
	emailSvc    EmailService
	store       storage.StorageInterface
}

func NewHandshakeService(
	txRepo repository.TransactionRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	noteSvc NotificationService,
	emailSvc EmailService,
	store storage.StorageInterface,
) HandshakeService {
	return &handshakeService{
		txRepo:      txRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		noteSvc:     noteSvc,
		emailSvc:    emailSvc,
		store:       store,
	}
}

// Initiate creates a handshake declaration. All validation runs before any
// side effect; evidence images are stored before the transaction record is
// created so the record only ever references durable URLs.
func (s *handshakeService) Initiate(ctx context.Context, ownerUID string, req InitiateRequest) (*domain.RentalTransaction, error) {
	if err := domain.ValidateEvidenceImages(len(req.Images)); err != nil {
		return nil, err
	}
	if req.AgreedReturnDate.IsZero() {
		return nil, &domain.ValidationError{Field: "agreed_return_date", Reason: "agreed return date is required"}
	}

	listing, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerUID != ownerUID {
		return nil, fmt.Errorf("you can only initiate transactions for your own items: %w", domain.ErrForbidden)
	}

	renter, err := s.userRepo.GetByUsername(ctx, req.RenterUsername)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", req.RenterUsername, err)
	}
	if renter.UID == ownerUID {
		return nil, &domain.ValidationError{Field: "renter_username", Reason: "you cannot rent to yourself"}
	}

	imageURLs, keys, err := s.uploadEvidence(ctx, req.Images)
	if err != nil {
		return nil, fmt.Errorf("storing proof images: %w", err)
	}

	now := time.Now()
	tx := &domain.RentalTransaction{
		ListingID: listing.ID,
		OwnerUID:  ownerUID,
		RenterUID: renter.UID,
		Status:    domain.StatusPendingRenterAcceptance,
		Handover: domain.HandoverDetails{
			HandoverDate:     now,
			AgreedReturnDate: req.AgreedReturnDate,
			ConditionNotes:   req.ConditionNotes,
			Images:           imageURLs,
			PaymentConfirmed: req.PaymentConfirmed,
			IDCardSubmitted:  req.IDCardSubmitted,
			ConfirmedAt:      now,
		},
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		// No orphaned transaction exists; reclaim the stored images too.
		s.deleteKeys(ctx, keys)
		return nil, err
	}

	s.noteSvc.Notify(ctx, renter.UID,
		"RENTAL_HANDOVER_REQUEST",
		"Handshake request",
		fmt.Sprintf("%s rental awaiting your acceptance", listing.Title),
		domain.HandshakeLink(tx.ID))

	if err := s.emailSvc.SendHandshakeRequest(ctx, renter.Email, renter.Username, listing.Title); err != nil {
		logger.Warn("Failed to send handshake request email", "transactionID", tx.ID, "error", err)
	}

	return tx, nil
}

// uploadEvidence stores each image and returns the durable URLs plus the
// storage keys for cleanup on a later failure. A mid-batch failure deletes
// whatever was already stored.
func (s *handshakeService) uploadEvidence(ctx context.Context, images []EvidenceUpload) ([]string, []string, error) {
	urls := make([]string, 0, len(images))
	keys := make([]string, 0, len(images))
	for _, img := range images {
		key := fmt.Sprintf("%s/%s%s", proofImagePrefix, uuid.New().String(), filepath.Ext(img.Filename))
		url, err := s.store.Save(ctx, key, img.ContentType, bytes.NewReader(img.Data))
		if err != nil {
			s.deleteKeys(ctx, keys)
			return nil, nil, err
		}
		urls = append(urls, url)
		keys = append(keys, key)
	}
	return urls, keys, nil
}

func (s *handshakeService) deleteKeys(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			logger.Warn("Failed to clean up stored image", "key", key, "error", err)
		}
	}
}

func (s *handshakeService) Accept(ctx context.Context, callerUID string, txID int32) (*domain.RentalTransaction, error) {
	tx, err := s.applyTransition(ctx, callerUID, txID, domain.EventAccept)
	if err != nil {
		return nil, err
	}
	s.sendMilestoneEmail(ctx, tx, domain.EventAccept)
	return tx, nil
}

func (s *handshakeService) MarkReturned(ctx context.Context, callerUID string, txID int32) (*domain.RentalTransaction, error) {
	return s.applyTransition(ctx, callerUID, txID, domain.EventMarkReturned)
}

func (s *handshakeService) ConfirmReturn(ctx context.Context, callerUID string, txID int32) (*domain.RentalTransaction, error) {
	tx, err := s.applyTransition(ctx, callerUID, txID, domain.EventConfirmReturn)
	if err != nil {
		return nil, err
	}
	s.sendMilestoneEmail(ctx, tx, domain.EventConfirmReturn)
	return tx, nil
}

// applyTransition runs the state machine in memory, persists the result
// with a check-and-set on the previous status, then executes the post-commit
// effects. A lost race surfaces as a status conflict built from the latest
// persisted state.
func (s *handshakeService) applyTransition(ctx context.Context, callerUID string, txID int32, event domain.HandshakeEvent) (*domain.RentalTransaction, error) {
	tx, err := s.txRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}

	prev := tx.Status
	effects, err := tx.Apply(event, callerUID, time.Now())
	if err != nil {
		return nil, err
	}

	ok, err := s.txRepo.UpdateStatus(ctx, tx, prev)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, err := s.txRepo.GetByID(ctx, txID)
		if err != nil {
			return nil, err
		}
		return nil, &domain.StatusConflictError{Expected: prev, Actual: current.Status}
	}

	for _, e := range effects {
		s.noteSvc.Notify(ctx, e.NotifyUID, e.Type, e.Title, e.Message, e.Link)
	}
	return tx, nil
}

// sendMilestoneEmail emails the counterparty about a completed transition.
// Best effort: the transition already committed.
func (s *handshakeService) sendMilestoneEmail(ctx context.Context, tx *domain.RentalTransaction, event domain.HandshakeEvent) {
	listing, err := s.listingRepo.GetByID(ctx, tx.ListingID)
	if err != nil {
		logger.Warn("Failed to load listing for milestone email", "transactionID", tx.ID, "error", err)
		return
	}

	switch event {
	case domain.EventAccept:
		owner, err := s.userRepo.GetByUID(ctx, tx.OwnerUID)
		if err != nil {
			return
		}
		if err := s.emailSvc.SendHandshakeAccepted(ctx, owner.Email, owner.Username, listing.Title); err != nil {
			logger.Warn("Failed to send acceptance email", "transactionID", tx.ID, "error", err)
		}
	case domain.EventConfirmReturn:
		renter, err := s.userRepo.GetByUID(ctx, tx.RenterUID)
		if err != nil {
			return
		}
		if err := s.emailSvc.SendHandshakeCompleted(ctx, renter.Email, renter.Username, listing.Title); err != nil {
			logger.Warn("Failed to send completion email", "transactionID", tx.ID, "error", err)
		}
	}
}

func (s *handshakeService) SubmitReview(ctx context.Context, callerUID string, txID int32, rating int32, comment string) (*domain.Review, error) {
	if err := domain.ValidateRating(rating); err != nil {
		return nil, err
	}

	tx, err := s.txRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.RenterUID != callerUID {
		return nil, fmt.Errorf("only the renter can review this transaction: %w", domain.ErrForbidden)
	}
	if tx.Status != domain.StatusCompleted {
		return nil, &domain.StatusConflictError{Expected: domain.StatusCompleted, Actual: tx.Status}
	}
	if tx.Review != nil {
		return nil, domain.ErrAlreadyReviewed
	}

	review := &domain.Review{Rating: rating, Comment: comment, CreatedAt: time.Now()}
	ok, err := s.txRepo.SetReview(ctx, txID, review)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The conditional write lost a race; re-read to report why.
		current, err := s.txRepo.GetByID(ctx, txID)
		if err != nil {
			return nil, err
		}
		if current.Review != nil {
			return nil, domain.ErrAlreadyReviewed
		}
		return nil, &domain.StatusConflictError{Expected: domain.StatusCompleted, Actual: current.Status}
	}

	s.noteSvc.Notify(ctx, tx.OwnerUID,
		"RENTAL_REVIEW_RECEIVED",
		"New rental review",
		"You received a new rental review",
		domain.HandshakeLink(tx.ID))

	return review, nil
}

func (s *handshakeService) Get(ctx context.Context, callerUID string, txID int32) (*domain.HandshakeView, error) {
	view, err := s.txRepo.GetView(ctx, txID)
	if err != nil {
		return nil, err
	}
	if view.OwnerUID != callerUID && view.RenterUID != callerUID {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	s.estimate(view)
	return view, nil
}

func (s *handshakeService) ListMine(ctx context.Context, callerUID string) ([]domain.HandshakeView, error) {
	views, err := s.txRepo.ListByParticipant(ctx, callerUID)
	if err != nil {
		return nil, err
	}
	for i := range views {
		s.estimate(&views[i])
	}
	return views, nil
}

func (s *handshakeService) estimate(v *domain.HandshakeView) {
	v.EstimatedCostCents = utils.EstimateCostCents(
		v.Listing.PricePerHourCents,
		v.Listing.PricePerDayCents,
		v.Handover.HandoverDate,
		v.Handover.AgreedReturnDate,
	)
}
