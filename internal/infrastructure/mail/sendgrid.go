// Package mail sends reminder emails through SendGrid.
package mail

import (
	"context"
	"fmt"

	"pillulu/internal/pkg/logger"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendPath = "/v3/mail/send"

// Sender delivers a rendered Message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridMailer sends mail with the SendGrid v3 API.
type SendGridMailer struct {
	fromMail string
	fromName string
	client   *sendgrid.Client
	log      logger.Logger
}

// NewSendGridMailer creates a mailer. host overrides the API host and is
// empty in production.
func NewSendGridMailer(apiKey, fromMail, host string, log logger.Logger) *SendGridMailer {
	client := sendgrid.NewSendClient(apiKey)
	if host != "" {
		client.BaseURL = host + sendPath
	}
	return &SendGridMailer{
		fromMail: fromMail,
		fromName: "Pillulu Health Assistant",
		client:   client,
		log:      log,
	}
}

// Send delivers msg with both plain and HTML parts.
func (s *SendGridMailer) Send(ctx context.Context, msg Message) error {
	from := sgmail.NewEmail(s.fromName, s.fromMail)
	to := sgmail.NewEmail("", msg.To)
	message := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Plain, msg.HTML)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid API error: %d %s", resp.StatusCode, resp.Body)
	}
	s.log.Debug(fmt.Sprintf("Email %q accepted by SendGrid for %s", msg.Subject, msg.To))
	return nil
}
