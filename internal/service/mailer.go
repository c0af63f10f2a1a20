package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/dto"
	"github.com/hireflowhq/hireflow-api/internal/models"
	"github.com/hireflowhq/hireflow-api/internal/observability"
	"github.com/hireflowhq/hireflow-api/internal/repository"
)

// ErrTemplateNotFound indicates the named email template is missing.
var ErrTemplateNotFound = errors.New("email template not found")

// MailMessage describes a templated message to enqueue.
type MailMessage struct {
	TemplateName  string
	Recipients    []string
	Data          map[string]interface{}
	ReferenceType string
	ReferenceName string
}

// RawMailMessage carries a pre-rendered subject and body.
type RawMailMessage struct {
	Subject       string
	Body          string
	Recipients    []string
	ReferenceType string
	ReferenceName string
}

// Delivery hands a queued message to the actual mail backend.
type Delivery interface {
	Deliver(ctx context.Context, item models.EmailQueueItem) error
}

// MailService renders templates and manages the outbound email queue.
// Delivery failures are recorded on the queue row but never propagated to
// the calling operation.
type MailService interface {
	Enqueue(ctx context.Context, message MailMessage) error
	EnqueueRaw(ctx context.Context, message RawMailMessage) error
	ListQueue(ctx context.Context, filter repository.EmailQueueFilter) ([]dto.EmailQueueResponse, error)
}

type mailService struct {
	repo      repository.EmailRepository
	feed      *EventFeed
	delivery  Delivery
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewMailService builds the mail queue service.
func NewMailService(repo repository.EmailRepository, feed *EventFeed, delivery Delivery, logger zerolog.Logger) MailService {
	return &mailService{
		repo:      repo,
		feed:      feed,
		delivery:  delivery,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "mail_service").Logger(),
		tracer:    otel.Tracer("github.com/hireflowhq/hireflow-api/internal/service/mail"),
		now:       time.Now,
	}
}

func (s *mailService) Enqueue(ctx context.Context, message MailMessage) error {
	spanCtx, span := s.tracer.Start(ctx, "mail.enqueue", trace.WithAttributes(
		attribute.String("mail.template", message.TemplateName),
	))
	defer span.End()

	emailTemplate, err := s.repo.GetTemplate(spanCtx, message.TemplateName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}

	body, err := renderTemplate(emailTemplate.Name+":body", emailTemplate.Body, message.Data)
	if err != nil {
		return fmt.Errorf("render template %q: %w", emailTemplate.Name, err)
	}
	subject, err := renderTemplate(emailTemplate.Name+":subject", emailTemplate.Subject, message.Data)
	if err != nil {
		return fmt.Errorf("render subject %q: %w", emailTemplate.Name, err)
	}

	item := s.buildItem(subject, s.sanitizer.Sanitize(body), message.Recipients, message.ReferenceType, message.ReferenceName)
	if err := s.queue(spanCtx, &item); err != nil {
		span.RecordError(err)
		return err
	}

	observability.EmailsEnqueued().WithLabelValues(emailTemplate.Name).Inc()
	return nil
}

func (s *mailService) EnqueueRaw(ctx context.Context, message RawMailMessage) error {
	spanCtx, span := s.tracer.Start(ctx, "mail.enqueue_raw")
	defer span.End()

	item := s.buildItem(message.Subject, s.sanitizer.Sanitize(message.Body), message.Recipients, message.ReferenceType, message.ReferenceName)
	if err := s.queue(spanCtx, &item); err != nil {
		span.RecordError(err)
		return err
	}

	observability.EmailsEnqueued().WithLabelValues("raw").Inc()
	return nil
}

func (s *mailService) ListQueue(ctx context.Context, filter repository.EmailQueueFilter) ([]dto.EmailQueueResponse, error) {
	items, err := s.repo.ListQueue(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewEmailQueueResponseSlice(items), nil
}

func (s *mailService) buildItem(subject, body string, recipients []string, referenceType, referenceName string) models.EmailQueueItem {
	cleaned := make([]string, 0, len(recipients))
	for _, recipient := range recipients {
		if trimmed := strings.TrimSpace(recipient); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	return models.EmailQueueItem{
		MessageID:     uuid.NewString(),
		Recipients:    strings.Join(cleaned, ","),
		Subject:       subject,
		Message:       body,
		ReferenceType: referenceType,
		ReferenceName: referenceName,
		Status:        models.EmailStatusQueued,
	}
}

func (s *mailService) queue(ctx context.Context, item *models.EmailQueueItem) error {
	if err := s.repo.Enqueue(ctx, item); err != nil {
		return err
	}

	s.logger.Info().
		Str("message_id", item.MessageID).
		Str("subject", item.Subject).
		Str("reference", item.ReferenceName).
		Msg("email queued")

	if s.feed != nil {
		s.feed.Publish(ctx, Event{
			Type:          EventMailQueued,
			ReferenceType: item.ReferenceType,
			ReferenceName: item.ReferenceName,
			Message:       item.Subject,
		})
	}

	if s.delivery == nil {
		return nil
	}

	if err := s.delivery.Deliver(ctx, *item); err != nil {
		s.logger.Warn().Err(err).Str("message_id", item.MessageID).Msg("mail delivery failed")
		if markErr := s.repo.MarkError(ctx, item.MessageID, err.Error()); markErr != nil {
			s.logger.Error().Err(markErr).Str("message_id", item.MessageID).Msg("failed to record delivery error")
		}
		return nil
	}

	if err := s.repo.MarkSent(ctx, item.MessageID, s.now().UTC()); err != nil {
		s.logger.Error().Err(err).Str("message_id", item.MessageID).Msg("failed to record delivery")
	}
	return nil
}

func renderTemplate(name, source string, data map[string]interface{}) (string, error) {
	parsed, err := template.New(name).Option("missingkey=zero").Parse(source)
	if err != nil {
		return "", err
	}

	var buffer bytes.Buffer
	if err := parsed.Execute(&buffer, data); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

// LogDelivery is the default delivery backend: it logs the handoff and
// reports success, leaving real SMTP relaying to deployment-specific
// implementations.
type LogDelivery struct {
	logger zerolog.Logger
}

// NewLogDelivery constructs a logging delivery backend.
func NewLogDelivery(logger zerolog.Logger) *LogDelivery {
	return &LogDelivery{logger: logger.With().Str("component", "mail_delivery").Logger()}
}

// Deliver logs the message and returns nil to indicate success.
func (d *LogDelivery) Deliver(ctx context.Context, item models.EmailQueueItem) error {
	d.logger.Info().
		Str("message_id", item.MessageID).
		Str("recipients", item.Recipients).
		Str("subject", item.Subject).
		Msg("email delivered to outbox")
	return nil
}
