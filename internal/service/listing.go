package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/logger"
	"krayaa-backend/internal/repository"
	"krayaa-backend/internal/storage"

	"github.com/google/uuid"
)

const listingImagePrefix = "rental_listings"

type listingService struct {
	listingRepo repository.ListingRepository
	store       storage.StorageInterface
}

func NewListingService(listingRepo repository.ListingRepository, store storage.StorageInterface) ListingService {
	return &listingService{listingRepo: listingRepo, store: store}
}

func (s *listingService) Create(ctx context.Context, owner *domain.User, req CreateListingRequest) (*domain.RentalListing, error) {
	if req.Title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "title is required"}
	}
	if req.Description == "" {
		return nil, &domain.ValidationError{Field: "description", Reason: "description is required"}
	}
	if err := domain.ValidateListingImages(len(req.Images)); err != nil {
		return nil, err
	}

	var urls []string
	var keys []string
	for _, img := range req.Images {
		key := fmt.Sprintf("%s/%s%s", listingImagePrefix, uuid.New().String(), filepath.Ext(img.Filename))
		url, err := s.store.Save(ctx, key, img.ContentType, bytes.NewReader(img.Data))
		if err != nil {
			s.cleanup(ctx, keys)
			return nil, fmt.Errorf("storing listing images: %w", err)
		}
		urls = append(urls, url)
		keys = append(keys, key)
	}

	listing := &domain.RentalListing{
		OwnerUID:          owner.UID,
		OwnerUsername:     owner.Username,
		Title:             req.Title,
		Description:       req.Description,
		Images:            urls,
		PricePerHourCents: req.PricePerHourCents,
		PricePerDayCents:  req.PricePerDayCents,
		Available:         true,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		s.cleanup(ctx, keys)
		return nil, err
	}
	return listing, nil
}

func (s *listingService) cleanup(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			logger.Warn("Failed to clean up listing image", "key", key, "error", err)
		}
	}
}

func (s *listingService) Get(ctx context.Context, id int32) (*domain.RentalListing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

func (s *listingService) ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.RentalListing, int32, error) {
	return s.listingRepo.ListAvailable(ctx, page, pageSize)
}

func (s *listingService) ListMine(ctx context.Context, ownerUID string, page, pageSize int32) ([]domain.RentalListing, int32, error) {
	return s.listingRepo.ListByOwner(ctx, ownerUID, page, pageSize)
}

func (s *listingService) Update(ctx context.Context, callerUID string, id int32, req UpdateListingRequest) (*domain.RentalListing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerUID != callerUID {
		return nil, fmt.Errorf("only the owner can edit a listing: %w", domain.ErrForbidden)
	}

	listing.Title = req.Title
	listing.Description = req.Description
	listing.PricePerHourCents = req.PricePerHourCents
	listing.PricePerDayCents = req.PricePerDayCents
	listing.Available = req.Available
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *listingService) Remove(ctx context.Context, callerUID string, id int32) error {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.OwnerUID != callerUID {
		return fmt.Errorf("only the owner can remove a listing: %w", domain.ErrForbidden)
	}
	return s.listingRepo.Remove(ctx, id)
}
