package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/internal/observability"
)

// Messages returned to the visitor for accepted submissions.
const (
	MessageSent             = "Message sent successfully!"
	MessageReceivedDegraded = "Message received! (Note: Database not available for persistence)"
)

const outcomeFailed = "failed"

// ErrContactInvalid indicates a required field was blank after trimming.
var ErrContactInvalid = errors.New("contact message is missing required fields")

// ContactService exposes the contact submission workflow.
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResult, error)
	List(ctx context.Context) ([]dto.ContactRecord, error)
}

// ContactServiceOptions tunes the contact service.
type ContactServiceOptions struct {
	WriteTimeout time.Duration
	DedupeTTL    time.Duration
}

type contactService struct {
	store        *StoreAvailability
	cache        *redis.Client
	validator    *validator.Validate
	delivery     ContactDelivery
	logger       zerolog.Logger
	tracer       trace.Tracer
	writeTimeout time.Duration
	dedupeTTL    time.Duration
	now          func() time.Time
}

// NewContactService constructs a contact submission service. cache may be nil
// to disable duplicate suppression.
func NewContactService(store *StoreAvailability, cache *redis.Client, validate *validator.Validate, delivery ContactDelivery, opts ContactServiceOptions, logger zerolog.Logger) ContactService {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.DedupeTTL <= 0 {
		opts.DedupeTTL = 5 * time.Minute
	}
	if delivery == nil {
		delivery = NewLogContactDelivery(logger)
	}

	return &contactService{
		store:        store,
		cache:        cache,
		validator:    validate,
		delivery:     delivery,
		logger:       logger.With().Str("component", "contact_service").Logger(),
		tracer:       otel.Tracer("github.com/noah-isme/portfolio-api/internal/service/contact"),
		writeTimeout: opts.WriteTimeout,
		dedupeTTL:    opts.DedupeTTL,
		now:          time.Now,
	}
}

func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResult, error) {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer span.End()

	req = req.Trimmed()

	repo, available := s.store.Repository()
	span.SetAttributes(attribute.Bool("contact.store_available", available))

	if !available {
		s.logger.Warn().
			Str("name", req.Name).
			Str("email", req.Email).
			Str("subject", req.Subject).
			Str("message", req.Message).
			Msg("contact submission received but not saved, store unavailable")

		s.deliver(ctx, models.ContactMessage{
			Name:      req.Name,
			Email:     req.Email,
			Subject:   req.Subject,
			Message:   req.Message,
			CreatedAt: s.now().UTC(),
		}, false)

		observability.ContactSubmissions().WithLabelValues(string(dto.ContactOutcomeDegraded)).Inc()
		span.SetStatus(codes.Ok, "accepted without persistence")
		return dto.ContactResult{Outcome: dto.ContactOutcomeDegraded, Message: MessageReceivedDegraded}, nil
	}

	record := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := s.validator.Struct(record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		observability.ContactSubmissions().WithLabelValues(outcomeFailed).Inc()
		return dto.ContactResult{}, fmt.Errorf("%w: %v", ErrContactInvalid, err)
	}

	checksum := computeChecksum(record.Name, record.Email, record.Subject, record.Message)
	span.SetAttributes(attribute.String("contact.checksum", checksum))

	dedupeKey, duplicate := s.claim(ctx, checksum)
	if duplicate {
		observability.ContactSubmissions().WithLabelValues(string(dto.ContactOutcomeDuplicate)).Inc()
		s.logger.Info().Str("checksum", checksum).Msg("duplicate contact submission suppressed")
		span.SetStatus(codes.Ok, "duplicate")
		return dto.ContactResult{Outcome: dto.ContactOutcomeDuplicate, Message: MessageSent}, nil
	}

	record.CreatedAt = s.now().UTC()

	writeCtx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := repo.Create(writeCtx, &record); err != nil {
		s.release(ctx, dedupeKey)
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.ContactSubmissions().WithLabelValues(outcomeFailed).Inc()
		return dto.ContactResult{}, fmt.Errorf("persist contact message: %w", err)
	}

	s.deliver(ctx, record, true)

	observability.ContactSubmissions().WithLabelValues(string(dto.ContactOutcomePersisted)).Inc()
	s.logger.Info().
		Str("contact_id", record.ID).
		Str("email", maskEmail(record.Email)).
		Msg("contact message saved")
	span.SetStatus(codes.Ok, "persisted")

	return dto.ContactResult{Outcome: dto.ContactOutcomePersisted, Message: MessageSent}, nil
}

func (s *contactService) List(ctx context.Context) ([]dto.ContactRecord, error) {
	ctx, span := s.tracer.Start(ctx, "contact.list")
	defer span.End()

	repo, available := s.store.Repository()
	if !available {
		return []dto.ContactRecord{}, nil
	}

	readCtx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	messages, err := repo.ListRecent(readCtx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		return nil, fmt.Errorf("list contact messages: %w", err)
	}

	records := make([]dto.ContactRecord, 0, len(messages))
	for _, message := range messages {
		records = append(records, dto.ContactRecord{
			ID:        message.ID,
			Name:      message.Name,
			Email:     message.Email,
			Subject:   message.Subject,
			Message:   message.Message,
			CreatedAt: message.CreatedAt,
		})
	}
	span.SetAttributes(attribute.Int("contact.count", len(records)))

	return records, nil
}

// claim reserves the checksum in the dedupe cache. Cache errors never block a submission.
func (s *contactService) claim(ctx context.Context, checksum string) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	key := fmt.Sprintf("contact:dedupe:%s", checksum)
	ok, err := s.cache.SetNX(ctx, key, 1, s.dedupeTTL).Result()
	if err != nil {
		s.logger.Warn().Err(err).Msg("contact dedupe cache unavailable")
		return "", false
	}
	return key, !ok
}

func (s *contactService) release(ctx context.Context, key string) {
	if s.cache == nil || key == "" {
		return
	}
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to release contact dedupe key")
	}
}

func (s *contactService) deliver(ctx context.Context, message models.ContactMessage, persisted bool) {
	if err := s.delivery.Deliver(ctx, message, persisted); err != nil {
		s.logger.Warn().Err(err).Str("contact_id", message.ID).Msg("contact delivery failed")
	}
}
