// Package notification delivers transactional email through an HTTP
// provider. Every dispatch ends in nil or an error carrying the reason; no
// partial state is kept between sends.
package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"lattesdocs/internal/attachment"
	"lattesdocs/internal/config"
)

// ErrNotConfigured is returned by every send when no API key is set.
var ErrNotConfigured = errors.New("notification gateway not configured: SENDGRID_API_KEY is empty")

// Address is an email address with an optional display name.
type Address struct {
	Email string
	Name  string
}

// Message is one outbound email. From is filled by the gateway when empty.
type Message struct {
	To          string
	From        Address
	ReplyTo     string
	Subject     string
	Text        string
	HTML        string
	Attachments []attachment.Attachment
}

// Gateway sends a single message.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}

// DispatchError is a provider rejection or a transport failure.
type DispatchError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DispatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("send mail: %v", e.Err)
	}
	return fmt.Sprintf("mail provider returned %d: %s", e.StatusCode, e.Body)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// NewGateway returns the SendGrid gateway, or one that always fails with
// ErrNotConfigured when the API key is missing.
func NewGateway(cfg config.MailConfig, logger *logrus.Logger, opts ...Option) Gateway {
	if cfg.SendGridAPIKey == "" {
		logger.WithField("component", "notification").Warn("SENDGRID_API_KEY not set, finalize notifications will fail")
		return unconfigured{}
	}
	return NewSendGrid(cfg, logger, opts...)
}

type unconfigured struct{}

func (unconfigured) Send(context.Context, Message) error {
	return ErrNotConfigured
}
