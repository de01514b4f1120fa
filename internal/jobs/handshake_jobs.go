package jobs

import (
	"context"
	"fmt"
	"time"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/logger"
)

type stalledHandshake struct {
	ID           int32
	UserUID      string
	ListingTitle string
	Since        time.Time
}

// RemindPendingAcceptance nudges renters who have not responded to a
// handover request. Reminders never mutate handshake state.
func (jr *JobRunner) RemindPendingAcceptance() {
	jr.runWithRecovery("RemindPendingAcceptance", func() {
		cutoff := time.Now().Add(-time.Duration(jr.config.Scheduler.ReminderAgeHours) * time.Hour)

		stalled, err := jr.findStalled(domain.StatusPendingRenterAcceptance, "t.renter_uid", cutoff)
		if err != nil {
			logger.Error("Failed to find handshakes pending acceptance", "error", err)
			return
		}

		for _, s := range stalled {
			jr.services.Notification.Notify(context.Background(), s.UserUID,
				"RENTAL_HANDOVER_REQUEST",
				"Handover request still waiting",
				fmt.Sprintf("The handover request for '%s' is still waiting for your response.", s.ListingTitle),
				domain.HandshakeLink(s.ID))
		}
		logger.Info("Sent pending acceptance reminders", "count", len(stalled))
	})
}

// RemindPendingConfirmation nudges owners whose renter has marked an item
// returned but who have not confirmed it back.
func (jr *JobRunner) RemindPendingConfirmation() {
	jr.runWithRecovery("RemindPendingConfirmation", func() {
		cutoff := time.Now().Add(-time.Duration(jr.config.Scheduler.ReminderAgeHours) * time.Hour)

		stalled, err := jr.findStalled(domain.StatusPendingOwnerConfirmation, "t.owner_uid", cutoff)
		if err != nil {
			logger.Error("Failed to find handshakes pending confirmation", "error", err)
			return
		}

		for _, s := range stalled {
			jr.services.Notification.Notify(context.Background(), s.UserUID,
				"RENTAL_COMPLETED",
				"Return waiting for your confirmation",
				fmt.Sprintf("'%s' was marked returned. Please confirm you received it back.", s.ListingTitle),
				domain.HandshakeLink(s.ID))
		}
		logger.Info("Sent pending confirmation reminders", "count", len(stalled))
	})
}

// findStalled returns handshakes sitting in status since before cutoff,
// keyed to the party whose action is overdue.
func (jr *JobRunner) findStalled(status domain.HandshakeStatus, recipientColumn string, cutoff time.Time) ([]stalledHandshake, error) {
	query := fmt.Sprintf(`
		SELECT t.id, %s, l.title, t.updated_on
		FROM rental_transactions t
		JOIN rental_listings l ON l.id = t.listing_id
		WHERE t.status = $1
		  AND t.updated_on < $2
		ORDER BY t.updated_on ASC`, recipientColumn)

	rows, err := jr.db.QueryContext(context.Background(), query, string(status), cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stalled []stalledHandshake
	for rows.Next() {
		var s stalledHandshake
		if err := rows.Scan(&s.ID, &s.UserUID, &s.ListingTitle, &s.Since); err != nil {
			logger.Error("Failed to scan stalled handshake", "error", err)
			continue
		}
		stalled = append(stalled, s)
	}
	return stalled, rows.Err()
}
