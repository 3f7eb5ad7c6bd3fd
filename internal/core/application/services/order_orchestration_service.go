package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orchestrator/internal/core/domain/events"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/order"
	"orchestrator/internal/core/ports"
	"orchestrator/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "orchestrator/internal/core/application/services"

// Option configures an OrderOrchestrationService.
type Option func(*OrderOrchestrationService)

// WithNotifyMode selects how a publish failure is handled. The default is NotifyBestEffort.
func WithNotifyMode(mode NotifyMode) Option {
	return func(s *OrderOrchestrationService) { s.mode = mode }
}

// WithTopic overrides the OrderCreated channel. The default is events.OrderCreatedTopic.
func WithTopic(topic string) Option {
	return func(s *OrderOrchestrationService) {
		if topic != "" {
			s.topic = topic
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *OrderOrchestrationService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *OrderOrchestrationService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// OrderOrchestrationService coordinates persistence of a new order with the
// OrderCreated notification.
//
// CreateOrder runs these steps in order:
//  1. build a Pending order from the specification
//  2. save it, which assigns the identity
//  3. build the OrderCreated payload from the saved order
//  4. publish it keyed by the order id
//  5. mark the order Orchestrated
//  6. save it again
//
// The two saves are not atomic. A crash between them leaves the order
// durably Pending. Save failures abort the workflow and no order is returned.
// A publish failure aborts only in NotifyRequired mode.
//
// Example:
//
//	svc, _ := NewOrderOrchestrationService(repo, publisher, WithLogger(logger))
//	spec, _ := order.NewBookSpecification("Dune", "Frank Herbert", 100, order.Hardcover, order.Glossy, 2)
//	o, err := svc.CreateOrder(ctx, spec)
type OrderOrchestrationService struct {
	repository ports.OrderRepository
	publisher  ports.EventPublisher

	mode   NotifyMode
	topic  string
	logger *slog.Logger
	tracer trace.Tracer
}

// NewOrderOrchestrationService requires both collaborators.
func NewOrderOrchestrationService(
	repository ports.OrderRepository,
	publisher ports.EventPublisher,
	opts ...Option,
) (*OrderOrchestrationService, error) {
	if repository == nil {
		return nil, errs.NewValueIsRequiredError("repository")
	}
	if publisher == nil {
		return nil, errs.NewValueIsRequiredError("publisher")
	}

	s := &OrderOrchestrationService{
		repository: repository,
		publisher:  publisher,
		mode:       NotifyBestEffort,
		topic:      events.OrderCreatedTopic,
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "order_orchestration_service")

	return s, nil
}

// CreateOrder persists a new order for spec and announces it.
//
// Returns:
//   - *order.ProductionOrder: the saved Orchestrated order
//   - error: a validation error for a bad specification, *errs.PersistenceError
//     (or *errs.ConcurrencyConflictError) from either save, *errs.PublishError in
//     NotifyRequired mode
func (s *OrderOrchestrationService) CreateOrder(
	ctx context.Context,
	spec order.BookSpecification,
) (*order.ProductionOrder, error) {
	ctx, span := s.tracer.Start(ctx, "OrderOrchestrationService.CreateOrder",
		trace.WithAttributes(attribute.String("notify.mode", s.mode.String())))
	defer span.End()

	pending, err := order.NewProductionOrder(spec)
	if err != nil {
		return nil, fail(span, err)
	}

	saved, err := s.repository.Save(ctx, pending)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save pending order", "error", err)
		return nil, fail(span, fmt.Errorf("save pending order: %w", err))
	}

	orderID := saved.ID().String()
	span.SetAttributes(attribute.String("order.id", orderID))
	span.AddEvent("order.saved", trace.WithAttributes(attribute.Int64("order.version", saved.Version())))
	s.logger.InfoContext(ctx, "Pending order saved", "order_id", orderID)

	if err = s.notify(ctx, span, saved); err != nil {
		return nil, fail(span, err)
	}

	if err = saved.MarkOrchestrated(); err != nil {
		return nil, fail(span, err)
	}

	orchestrated, err := s.repository.Save(ctx, saved)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save orchestrated order", "order_id", orderID, "error", err)
		return nil, fail(span, fmt.Errorf("save orchestrated order: %w", err))
	}

	span.AddEvent("order.orchestrated")
	s.logger.InfoContext(ctx, "Order orchestrated", "order_id", orderID, "version", orchestrated.Version())
	return orchestrated, nil
}

// GetOrder returns *errs.ObjectNotFoundError for an unknown identity.
func (s *OrderOrchestrationService) GetOrder(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error) {
	ctx, span := s.tracer.Start(ctx, "OrderOrchestrationService.GetOrder",
		trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	o, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			span.AddEvent("order.not_found")
			return nil, err
		}
		return nil, fail(span, err)
	}
	return o, nil
}

func (s *OrderOrchestrationService) notify(ctx context.Context, span trace.Span, saved *order.ProductionOrder) error {
	key := saved.ID().String()
	payload := events.BuildOrderCreated(saved)

	err := s.publisher.Publish(ctx, s.topic, key, payload)
	if err == nil {
		span.AddEvent("order.published", trace.WithAttributes(attribute.String("messaging.destination", s.topic)))
		return nil
	}

	if !errors.Is(err, errs.ErrPublish) {
		err = errs.NewPublishErrorWithCause(s.topic, key, err)
	}

	if s.mode == NotifyRequired {
		s.logger.ErrorContext(ctx, "Order notification failed, order left pending",
			"order_id", key, "topic", s.topic, "error", err)
		return err
	}

	span.AddEvent("order.publish_failed", trace.WithAttributes(attribute.String("error", err.Error())))
	s.logger.WarnContext(ctx, "Order notification failed, continuing",
		"order_id", key, "topic", s.topic, "error", err)
	return nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
