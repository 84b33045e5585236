package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"lattesdocs/internal/attachment"
	"lattesdocs/internal/config"
	"lattesdocs/internal/model"
	"lattesdocs/internal/notification"
	"lattesdocs/internal/repository"
)

var tracer = otel.Tracer("lattesdocs/internal/service")

// NotificationKind tells the two finalize emails apart.
type NotificationKind string

const (
	KindInternal NotificationKind = "internal"
	KindCustomer NotificationKind = "customer"
)

// AttachmentResolver turns a document into an attachment or a skip.
type AttachmentResolver interface {
	Resolve(ctx context.Context, doc model.Document) attachment.Resolution
}

// FinalizeResult summarizes a finalize run.
type FinalizeResult struct {
	PublicID         string
	Attached         int
	Skipped          int
	CustomerNotified bool
	// AlreadyFinalized is set when nothing was sent because a previous run succeeded.
	AlreadyFinalized bool
}

// FinalizeError reports which email failed. The request is left unfinalized.
type FinalizeError struct {
	Kind NotificationKind
	Err  error
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("%s notification failed: %v", e.Kind, e.Err)
}

func (e *FinalizeError) Unwrap() error {
	return e.Err
}

// FinalizeService drives the finalize step of a request.
type FinalizeService interface {
	// Finalize emails the request with its documents to the internal recipient
	// and a confirmation to the customer. Both must be accepted for success.
	Finalize(ctx context.Context, publicID string) (*FinalizeResult, error)
}

// FinalizeMetrics counts dispatches and skipped attachments.
type FinalizeMetrics struct {
	notifications *prometheus.CounterVec
	skipped       prometheus.Counter
}

// NewFinalizeMetrics registers the collectors on reg when it is not nil.
func NewFinalizeMetrics(reg prometheus.Registerer) (*FinalizeMetrics, error) {
	m := &FinalizeMetrics{
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lattes_notifications_total",
				Help: "Finalize notifications by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lattes_attachments_skipped_total",
			Help: "Documents left out of finalize emails because their file could not be read.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.notifications, m.skipped} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *FinalizeMetrics) dispatched(kind NotificationKind, err error) {
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	m.notifications.WithLabelValues(string(kind), outcome).Inc()
}

type finalizeService struct {
	requests RequestService
	docs     repository.DocumentRepository
	store    repository.RequestRepository
	resolver AttachmentResolver
	gateway  notification.Gateway
	mail     config.MailConfig
	metrics  *FinalizeMetrics
	logger   *logrus.Logger
	now      func() time.Time
}

func NewFinalizeService(
	requests RequestService,
	store repository.RequestRepository,
	docs repository.DocumentRepository,
	resolver AttachmentResolver,
	gateway notification.Gateway,
	mail config.MailConfig,
	metrics *FinalizeMetrics,
	logger *logrus.Logger,
) FinalizeService {
	if metrics == nil {
		metrics, _ = NewFinalizeMetrics(nil)
	}
	return &finalizeService{
		requests: requests,
		docs:     docs,
		store:    store,
		resolver: resolver,
		gateway:  gateway,
		mail:     mail,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *finalizeService) Finalize(ctx context.Context, publicID string) (*FinalizeResult, error) {
	ctx, span := tracer.Start(ctx, "service.Finalize")
	defer span.End()

	req, err := s.requests.Get(ctx, publicID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("lattes.public_id", req.PublicID))

	log := s.logger.WithField("public_id", req.PublicID)
	result := &FinalizeResult{PublicID: req.PublicID}

	if req.Finalized() {
		log.Info("request already finalized, not resending")
		result.AlreadyFinalized = true
		return result, nil
	}

	docs, err := s.docs.ListByRequest(ctx, req.ID, repository.OldestFirst)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list documents")
		return nil, fmt.Errorf("list documents: %w", err)
	}

	atts := make([]attachment.Attachment, 0, len(docs))
	listed := make([]listedDocument, 0, len(docs))
	for _, d := range docs {
		res := s.resolver.Resolve(ctx, d)
		if res.Skipped() {
			result.Skipped++
			log.WithError(res.Reason).WithField("document_id", d.ID).Warn("document skipped")
			continue
		}
		atts = append(atts, *res.Attachment)
		listed = append(listed, listedDocument{
			Label:       d.DocType.Label(),
			Filename:    res.Attachment.Filename,
			Description: d.Description,
		})
	}
	result.Attached = len(atts)
	s.metrics.skipped.Add(float64(result.Skipped))
	span.SetAttributes(
		attribute.Int("lattes.attachments", result.Attached),
		attribute.Int("lattes.skipped", result.Skipped),
	)

	recipient := s.mail.InternalRecipient()
	if recipient == "" {
		return nil, s.fail(span, log, KindInternal, ErrNoInternalRecipient)
	}

	internal, err := buildInternalMessage(recipient, req, listed, atts, result.Skipped)
	if err != nil {
		return nil, err
	}
	err = s.gateway.Send(ctx, internal)
	s.metrics.dispatched(KindInternal, err)
	if err != nil {
		return nil, s.fail(span, log, KindInternal, err)
	}

	if req.Email != "" {
		customer, err := buildCustomerMessage(s.mail.CustomerReplyTo(), req)
		if err != nil {
			return nil, err
		}
		err = s.gateway.Send(ctx, customer)
		s.metrics.dispatched(KindCustomer, err)
		if err != nil {
			return nil, s.fail(span, log, KindCustomer, err)
		}
		result.CustomerNotified = true
	}

	if err := s.store.MarkFinalized(ctx, req.ID, s.now().UTC()); err != nil {
		// The emails are out; a later finalize would resend them.
		log.WithError(err).Error("failed to record finalization")
	}

	log.WithFields(logrus.Fields{
		"attachments": result.Attached,
		"skipped":     result.Skipped,
		"recipient":   recipient,
	}).Info("request finalized")
	return result, nil
}

func (s *finalizeService) fail(span trace.Span, log *logrus.Entry, kind NotificationKind, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(kind)+" notification failed")
	log.WithError(err).WithField("notification", kind).Error("finalize notification failed")
	return &FinalizeError{Kind: kind, Err: err}
}
