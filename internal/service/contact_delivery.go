package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/portfolio-api/internal/models"
)

// ContactDelivery hands an accepted contact message to the site owner.
type ContactDelivery interface {
	Deliver(ctx context.Context, message models.ContactMessage, persisted bool) error
}

// LogContactDelivery is a basic provider that logs submissions.
type LogContactDelivery struct {
	logger zerolog.Logger
}

// NewLogContactDelivery constructs a logging provider.
func NewLogContactDelivery(logger zerolog.Logger) *LogContactDelivery {
	return &LogContactDelivery{logger: logger.With().Str("component", "contact_delivery").Logger()}
}

// Deliver logs the submission and returns nil to indicate success.
func (l *LogContactDelivery) Deliver(ctx context.Context, message models.ContactMessage, persisted bool) error {
	l.logger.Info().
		Str("contact_id", message.ID).
		Bool("persisted", persisted).
		Msg("contact message delivered to inbox")
	return nil
}

// MessagePublisher is the subset of *nats.Conn used for delivery.
type MessagePublisher interface {
	Publish(subject string, data []byte) error
}

const previewLength = 140

// ContactEvent is the payload published for every accepted message. Fields
// carry the text as the visitor typed it; Preview is a markup-free excerpt
// safe to drop into chat or mail notifications.
type ContactEvent struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"createdAt"`
	Persisted bool      `json:"persisted"`
}

// NATSContactDelivery publishes accepted messages on a NATS subject.
type NATSContactDelivery struct {
	publisher MessagePublisher
	subject   string
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewNATSContactDelivery constructs a NATS-backed provider.
func NewNATSContactDelivery(publisher MessagePublisher, subject string, logger zerolog.Logger) *NATSContactDelivery {
	return &NATSContactDelivery{
		publisher: publisher,
		subject:   subject,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "contact_delivery").Str("subject", subject).Logger(),
	}
}

// Deliver publishes the message as a ContactEvent.
func (n *NATSContactDelivery) Deliver(ctx context.Context, message models.ContactMessage, persisted bool) error {
	payload, err := json.Marshal(ContactEvent{
		ID:        message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Subject:   message.Subject,
		Message:   message.Message,
		Preview:   n.preview(message.Message),
		CreatedAt: message.CreatedAt,
		Persisted: persisted,
	})
	if err != nil {
		return err
	}

	if err := n.publisher.Publish(n.subject, payload); err != nil {
		return fmt.Errorf("publish contact event: %w", err)
	}

	n.logger.Debug().Str("contact_id", message.ID).Msg("contact event published")
	return nil
}

func (n *NATSContactDelivery) preview(text string) string {
	plain := strings.Join(strings.Fields(html.UnescapeString(n.sanitizer.Sanitize(text))), " ")
	if utf8.RuneCountInString(plain) <= previewLength {
		return plain
	}
	runes := []rune(plain)
	return string(runes[:previewLength-1]) + "…"
}
