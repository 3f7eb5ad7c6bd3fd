// Package kafka publishes notifications to Apache Kafka with segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"orchestrator/internal/pkg/errs"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// messageWriter is the subset of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher. One writer serves every topic;
// messages are partitioned by key hash so all events of one order keep their
// relative order.
type Publisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewPublisher builds a writer for brokers. The writer waits for all in-sync
// replicas before acknowledging.
func NewPublisher(brokers []string, logger *slog.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}

	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
	return newPublisher(writer, logger), nil
}

func newPublisher(writer messageWriter, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		logger: logger.With("component", "kafka_publisher"),
	}
}

func (p *Publisher) Publish(ctx context.Context, topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return errs.NewPublishErrorWithCause(topic, key, err)
	}

	headers := headerCarrier{{Key: "content-type", Value: []byte("application/json")}}
	otel.GetTextMapPropagator().Inject(ctx, &headers)

	msg := kafkago.Message{
		Topic:   topic,
		Key:     []byte(key),
		Value:   value,
		Headers: headers,
		Time:    time.Now().UTC(),
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.NewPublishErrorWithCause(topic, key, err)
	}

	p.logger.DebugContext(ctx, "Message written", "topic", topic, "key", key, "bytes", len(value))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// headerCarrier lets the OpenTelemetry propagator write trace context into
// Kafka record headers.
type headerCarrier []kafkago.Header

func (c *headerCarrier) Get(key string) string {
	for _, h := range *c {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i, h := range *c {
		if h.Key == key {
			(*c)[i].Value = []byte(value)
			return
		}
	}
	*c = append(*c, kafkago.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c))
	for _, h := range *c {
		keys = append(keys, h.Key)
	}
	return keys
}
