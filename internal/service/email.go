package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendHandshakeRequest(ctx context.Context, renterEmail, renterName, listingTitle string) error {
	subject := fmt.Sprintf("Handshake request: %s", listingTitle)
	body := fmt.Sprintf("Hello %s,\n\nA rental handover for %q is awaiting your acceptance. Sign in to review the handover evidence and accept the agreement.\n\nThe Krayaa Team", renterName, listingTitle)
	return s.send(ctx, renterEmail, renterName, subject, body)
}

func (s *emailService) SendHandshakeAccepted(ctx context.Context, ownerEmail, ownerName, listingTitle string) error {
	subject := fmt.Sprintf("Rental active: %s", listingTitle)
	body := fmt.Sprintf("Hello %s,\n\nThe renter accepted the rental agreement for %q. The rental is now active.\n\nThe Krayaa Team", ownerName, listingTitle)
	return s.send(ctx, ownerEmail, ownerName, subject, body)
}

func (s *emailService) SendHandshakeCompleted(ctx context.Context, renterEmail, renterName, listingTitle string) error {
	subject := fmt.Sprintf("Rental completed: %s", listingTitle)
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %q is complete. Leave a review for the owner!\n\nThe Krayaa Team", renterName, listingTitle)
	return s.send(ctx, renterEmail, renterName, subject, body)
}
