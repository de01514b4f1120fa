package domain

// HandshakeParty is the display subset of a participant, populated when a
// transaction is returned to a client.
type HandshakeParty struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	AvatarID int32  `json:"avatar_id"`
}

// ListingSummary is the display subset of the rented item.
type ListingSummary struct {
	ID                int32    `json:"id"`
	Title             string   `json:"title"`
	Images            []string `json:"images"`
	PricePerHourCents *int32   `json:"price_per_hour_cents,omitempty"`
	PricePerDayCents  *int32   `json:"price_per_day_cents,omitempty"`
}

// HandshakeView is a transaction enriched with listing and counterparty
// display data for client consumption.
type HandshakeView struct {
	RentalTransaction
	Listing            ListingSummary `json:"listing"`
	Owner              HandshakeParty `json:"owner"`
	Renter             HandshakeParty `json:"renter"`
	EstimatedCostCents int32          `json:"estimated_cost_cents"`
}
