package notify

import (
	"context"
	"fmt"

	"github.com/dealspot/subscription-deals-site/internal/contact"
	"github.com/dealspot/subscription-deals-site/pkg/logging"
)

// Service formats contact submissions into owner notification emails.
type Service struct {
	sender     EmailSender
	ownerEmail string
	logger     *logging.Logger
}

// NewService creates a notification service, or nil when no owner address
// is configured.
func NewService(sender EmailSender, ownerEmail string, logger *logging.Logger) *Service {
	if sender == nil || ownerEmail == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{sender: sender, ownerEmail: ownerEmail, logger: logger}
}

// NotifySubmission emails the submission to the site owner.
func (s *Service) NotifySubmission(ctx context.Context, sub *contact.Submission) error {
	if s == nil {
		return nil
	}

	body := fmt.Sprintf(
		"New contact form message\n\nFrom: %s <%s>\nReceived: %s\n\n%s\n",
		sub.Name,
		sub.Email,
		sub.CreatedAt.Format("2006-01-02 15:04:05 MST"),
		sub.Message,
	)

	return s.sender.Send(ctx, EmailMessage{
		To:      s.ownerEmail,
		Subject: fmt.Sprintf("Contact form: %s", sub.Name),
		Body:    body,
	})
}
