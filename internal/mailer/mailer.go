package mailer

import (
	"context"
	"fmt"
	"log"

	"github.com/nifgashim/trek-api/internal/models"
	"github.com/resend/resend-go/v2"
)

type Mailer interface {
	SendRegistrationConfirmation(ctx context.Context, registration models.Registration) error
	SendMemorialApproved(ctx context.Context, memorial models.Memorial) error
}

// ResendMailer delivers transactional email through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (m *ResendMailer) send(ctx context.Context, to, subject, html string) error {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("email send failed: %w", err)
	}

	log.Printf("Sent email %s to %s", sent.Id, to)
	return nil
}

func (m *ResendMailer) SendRegistrationConfirmation(ctx context.Context, registration models.Registration) error {
	subject := fmt.Sprintf("Trek registration %s confirmed", registration.Reference)
	html := fmt.Sprintf(
		"<p>Your registration <strong>%s</strong> for %d participant(s) across %d day(s) was received.</p><p>Payment status: %s.</p>",
		registration.Reference,
		len(registration.Participants),
		len(registration.SelectedDays),
		registration.PaymentStatus,
	)
	return m.send(ctx, registration.CustomerEmail, subject, html)
}

func (m *ResendMailer) SendMemorialApproved(ctx context.Context, memorial models.Memorial) error {
	if memorial.SubmitterEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("Memorial for %s approved", memorial.FallenName)
	html := fmt.Sprintf(
		"<p>The memorial you submitted for <strong>%s</strong> was approved and will be part of the trek.</p>",
		memorial.FallenName,
	)
	return m.send(ctx, memorial.SubmitterEmail, subject, html)
}
