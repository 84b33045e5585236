package notification

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"lattesdocs/internal/config"
)

const (
	sendPath     = "/v3/mail/send"
	maxErrorBody = 4096
)

// SendGrid posts messages to the SendGrid v3 mail API.
type SendGrid struct {
	apiKey  string
	baseURL string
	from    Address
	client  *http.Client
	rest    *rest.Client
	logger  *logrus.Logger
}

// Option customizes a SendGrid gateway.
type Option func(*SendGrid)

// WithHTTPClient replaces the default traced client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *SendGrid) { s.client = c }
}

func NewSendGrid(cfg config.MailConfig, logger *logrus.Logger, opts ...Option) *SendGrid {
	s := &SendGrid{
		apiKey:  cfg.SendGridAPIKey,
		baseURL: strings.TrimRight(cfg.SendGridBaseURL, "/"),
		from:    Address{Email: cfg.FromEmail, Name: cfg.FromName},
		client: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	// A client per gateway; rest.DefaultClient is shared process state.
	s.rest = &rest.Client{HTTPClient: s.client}
	return s
}

func (s *SendGrid) mail(msg Message) *mail.SGMailV3 {
	from := msg.From
	if from.Email == "" {
		from = s.from
	}

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", msg.To))

	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(from.Name, from.Email))
	m.Subject = msg.Subject
	m.AddPersonalizations(p)
	m.AddContent(mail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		m.AddContent(mail.NewContent("text/html", msg.HTML))
	}
	if msg.ReplyTo != "" {
		m.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}
	for _, a := range msg.Attachments {
		m.AddAttachment(mail.NewAttachment().
			SetContent(a.Content).
			SetType(a.MimeType).
			SetFilename(a.Filename).
			SetDisposition("attachment"))
	}
	return m
}

// Send succeeds only on a 2xx answer. Anything else comes back as a
// *DispatchError with the provider status and body.
func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return &DispatchError{Err: errors.New("recipient is empty")}
	}

	req := sendgrid.GetRequest(s.apiKey, sendPath, s.baseURL)
	req.Method = rest.Post
	req.Headers["Content-Type"] = "application/json"
	req.Body = mail.GetRequestBody(s.mail(msg))

	start := time.Now()
	resp, err := s.rest.SendWithContext(ctx, req)
	if err != nil {
		return &DispatchError{Err: err}
	}

	log := s.logger.WithFields(logrus.Fields{
		"component":   "notification",
		"status":      resp.StatusCode,
		"attachments": len(msg.Attachments),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := resp.Body
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		log.Warn("mail provider rejected message")
		return &DispatchError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(body)}
	}

	log.Debug("mail accepted")
	return nil
}
