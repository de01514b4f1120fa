package domain

import (
	"fmt"
	"time"
)

type HandshakeStatus string

const (
	StatusPendingRenterAcceptance  HandshakeStatus = "PENDING_RENTER_ACCEPTANCE"
	StatusActive                   HandshakeStatus = "ACTIVE"
	StatusPendingOwnerConfirmation HandshakeStatus = "PENDING_OWNER_CONFIRMATION"
	StatusCompleted                HandshakeStatus = "COMPLETED"
	// Reserved for moderation tooling. No transition in the handshake
	// protocol reaches these states.
	StatusDisputed  HandshakeStatus = "DISPUTED"
	StatusCancelled HandshakeStatus = "CANCELLED"
)

type HandshakeEvent string

const (
	EventAccept        HandshakeEvent = "ACCEPT"
	EventMarkReturned  HandshakeEvent = "MARK_RETURNED"
	EventConfirmReturn HandshakeEvent = "CONFIRM_RETURN"
)

// ActorRole identifies which stored identity may trigger a transition.
// The protocol is asymmetric: each event is bound to exactly one role.
type ActorRole string

const (
	RoleOwner  ActorRole = "OWNER"
	RoleRenter ActorRole = "RENTER"
)

const (
	MinEvidenceImages = 3
	MaxEvidenceImages = 5
)

// HandoverDetails is the evidence block captured by the owner at Initiate.
// It is never mutated after the transaction is created.
type HandoverDetails struct {
	HandoverDate     time.Time `json:"handover_date"`
	AgreedReturnDate time.Time `json:"agreed_return_date"`
	ConditionNotes   string    `json:"condition_notes"`
	Images           []string  `json:"images"`
	PaymentConfirmed bool      `json:"payment_confirmed"`
	IDCardSubmitted  bool      `json:"id_card_submitted"`
	ConfirmedAt      time.Time `json:"confirmed_at"`
}

// Review is written once by the renter after completion.
type Review struct {
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type RentalTransaction struct {
	ID                     int32           `json:"id"`
	ListingID              int32           `json:"listing_id"`
	OwnerUID               string          `json:"owner_uid"`
	RenterUID              string          `json:"renter_uid"`
	Status                 HandshakeStatus `json:"status"`
	Handover               HandoverDetails `json:"handover"`
	RenterAcceptedAt       *time.Time      `json:"renter_accepted_at,omitempty"`
	RenterMarkedReturnedAt *time.Time      `json:"renter_marked_returned_at,omitempty"`
	OwnerConfirmedReturnAt *time.Time      `json:"owner_confirmed_return_at,omitempty"`
	Review                 *Review         `json:"review,omitempty"`
	CreatedOn              time.Time       `json:"created_on"`
	UpdatedOn              time.Time       `json:"updated_on"`
}

// Effect is a post-commit side effect produced by a transition. The state
// machine itself never calls out; the orchestration layer executes effects
// after the status change is durably persisted.
type Effect struct {
	NotifyUID string
	Type      string
	Title     string
	Message   string
	Link      string
}

type transitionRule struct {
	from  HandshakeStatus
	to    HandshakeStatus
	actor ActorRole
}

// transitions is the single source of truth for the handshake protocol.
// Every legal state change and its authorized actor lives in this table.
var transitions = map[HandshakeEvent]transitionRule{
	EventAccept:        {from: StatusPendingRenterAcceptance, to: StatusActive, actor: RoleRenter},
	EventMarkReturned:  {from: StatusActive, to: StatusPendingOwnerConfirmation, actor: RoleRenter},
	EventConfirmReturn: {from: StatusPendingOwnerConfirmation, to: StatusCompleted, actor: RoleOwner},
}

// actorUIDFor returns the stored identity bound to a role.
func (t *RentalTransaction) actorUIDFor(role ActorRole) string {
	if role == RoleOwner {
		return t.OwnerUID
	}
	return t.RenterUID
}

// Transition validates event against the current status and the acting user
// and returns the target status without mutating the transaction. The actor
// check runs before the status check so an unauthorized caller always gets
// ErrForbidden, never a conflict that leaks state.
func (t *RentalTransaction) Transition(event HandshakeEvent, actorUID string) (HandshakeStatus, error) {
	rule, ok := transitions[event]
	if !ok {
		return "", &ValidationError{Field: "event", Reason: "unknown handshake event"}
	}
	if actorUID != t.actorUIDFor(rule.actor) {
		return "", ErrForbidden
	}
	if t.Status != rule.from {
		return "", &StatusConflictError{Expected: rule.from, Actual: t.Status}
	}
	return rule.to, nil
}

// Apply performs the transition in memory: status plus the lifecycle
// timestamp for the event. It returns the post-commit effects the caller
// must execute once the change is persisted.
func (t *RentalTransaction) Apply(event HandshakeEvent, actorUID string, now time.Time) ([]Effect, error) {
	next, err := t.Transition(event, actorUID)
	if err != nil {
		return nil, err
	}

	t.Status = next
	switch event {
	case EventAccept:
		t.RenterAcceptedAt = &now
	case EventMarkReturned:
		t.RenterMarkedReturnedAt = &now
	case EventConfirmReturn:
		t.OwnerConfirmedReturnAt = &now
	}
	return t.effectsFor(event), nil
}

func (t *RentalTransaction) effectsFor(event HandshakeEvent) []Effect {
	switch event {
	case EventAccept:
		return []Effect{{
			NotifyUID: t.OwnerUID,
			Type:      "RENTAL_ACTIVE",
			Title:     "Handshake accepted",
			Message:   "Renter accepted the rental agreement",
			Link:      HandshakeLink(t.ID),
		}}
	case EventConfirmReturn:
		return []Effect{{
			NotifyUID: t.RenterUID,
			Type:      "RENTAL_COMPLETED",
			Title:     "Rental completed",
			Message:   "Rental successfully completed! Leave a review for the owner.",
			Link:      "/profile/handshake",
		}}
	default:
		// MarkReturned carries no notification in the protocol.
		return nil
	}
}

// HandshakeLink is the frontend route for a transaction, embedded in
// notification deep links.
func HandshakeLink(txID int32) string {
	return fmt.Sprintf("/rentals/handshake/%d", txID)
}

// ValidateEvidenceImages enforces the 3..5 proof image invariant at Initiate.
func ValidateEvidenceImages(count int) error {
	if count < MinEvidenceImages {
		return &ValidationError{Field: "images", Reason: "at least 3 proof images are required"}
	}
	if count > MaxEvidenceImages {
		return &ValidationError{Field: "images", Reason: "at most 5 proof images are allowed"}
	}
	return nil
}

// ValidateRating enforces the 1..5 review rating range.
func ValidateRating(rating int32) error {
	if rating < 1 || rating > 5 {
		return &ValidationError{Field: "rating", Reason: "rating must be between 1 and 5"}
	}
	return nil
}
