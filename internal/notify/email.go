// Package notify sends best-effort email notifications for incoming
// enquiries via SendGrid. Delivery failures are logged and never
// propagate to the request path.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/domain"
)

// EmailNotifier delivers enquiry notifications to a single inbox.
type EmailNotifier struct {
	client    *sendgrid.Client
	fromEmail string
	toEmail   string
}

// NewEmailNotifier creates a SendGrid-backed notifier.
func NewEmailNotifier(apiKey, fromEmail, toEmail string) *EmailNotifier {
	return &EmailNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

// BookingReceived notifies about a new booking request.
func (n *EmailNotifier) BookingReceived(ctx context.Context, req *domain.BookingRequest) {
	subject := fmt.Sprintf("New booking request: %s", req.ServiceName)
	body := fmt.Sprintf(
		"Service: %s\nName: %s\nEmail: %s\nPhone: %s\nPet: %s (%s)\nPreferred: %s\nReferral: %s\nNotes:\n%s\n",
		req.ServiceName, req.CustomerName, req.CustomerEmail, req.CustomerPhone,
		req.PetName, req.PetType, req.PreferredDateTime, req.ReferralSource, req.Notes,
	)
	n.send(ctx, subject, body)
}

// EnquiryReceived notifies about a new general enquiry.
func (n *EmailNotifier) EnquiryReceived(ctx context.Context, enq *domain.GeneralEnquiry) {
	subject := fmt.Sprintf("New general enquiry from %s", enq.Name)
	body := fmt.Sprintf(
		"Name: %s\nEmail: %s\nSubject: %s\nMessage:\n%s\n",
		enq.Name, enq.Email, enq.Subject, enq.Message,
	)
	n.send(ctx, subject, body)
}

func (n *EmailNotifier) send(ctx context.Context, subject, body string) {
	from := mail.NewEmail("Pawsome Notifications", n.fromEmail)
	to := mail.NewEmail("", n.toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		slog.Error("failed to send notification email", "subject", subject, "error", err)
		return
	}
	if response.StatusCode >= 400 {
		slog.Error("notification email rejected", "subject", subject, "status", response.StatusCode)
		return
	}
	slog.Debug("notification email sent", "subject", subject, "status", response.StatusCode)
}
