package domain

import "time"

const (
	MinListingImages = 1
	MaxListingImages = 3
)

// RentalListing is a rentable item owned by exactly one user. Listings are
// soft-removed, never deleted, so completed handshakes keep their reference.
type RentalListing struct {
	ID                int32     `json:"id"`
	OwnerUID          string    `json:"owner_uid"`
	OwnerUsername     string    `json:"owner_username"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Images            []string  `json:"images"`
	PricePerHourCents *int32    `json:"price_per_hour_cents,omitempty"`
	PricePerDayCents  *int32    `json:"price_per_day_cents,omitempty"`
	Available         bool      `json:"available"`
	Removed           bool      `json:"-"`
	CreatedOn         time.Time `json:"created_on"`
	UpdatedOn         time.Time `json:"updated_on"`
}

// ValidateListingImages enforces the 1..3 listing image range.
func ValidateListingImages(count int) error {
	if count < MinListingImages || count > MaxListingImages {
		return &ValidationError{Field: "images", Reason: "you must upload 1 to 3 images"}
	}
	return nil
}
