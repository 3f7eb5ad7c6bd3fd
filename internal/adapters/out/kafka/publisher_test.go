package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"orchestrator/internal/pkg/errs"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type MockMessageWriter struct{ mock.Mock }

func (m *MockMessageWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockMessageWriter) Close() error {
	return m.Called().Error(0)
}

func TestPublisher_Publish(t *testing.T) {
	writer := new(MockMessageWriter)
	var written []kafkago.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafkago.Message) }).
		Return(nil).Once()

	p := newPublisher(writer, slog.Default())
	err := p.Publish(t.Context(), "order-created", "42", map[string]any{"order_id": "42"})

	require.NoError(t, err)
	require.Len(t, written, 1)
	msg := written[0]
	assert.Equal(t, "order-created", msg.Topic)
	assert.Equal(t, []byte("42"), msg.Key)
	assert.JSONEq(t, `{"order_id":"42"}`, string(msg.Value))
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "content-type", Value: []byte("application/json")})
	writer.AssertExpectations(t)
}

func TestPublisher_Publish_WriterError(t *testing.T) {
	writer := new(MockMessageWriter)
	cause := errors.New("leader not available")
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(cause).Once()

	err := newPublisher(writer, slog.Default()).Publish(t.Context(), "order-created", "42", struct{}{})

	var publishErr *errs.PublishError
	require.ErrorAs(t, err, &publishErr)
	assert.Equal(t, "order-created", publishErr.Topic)
	assert.Equal(t, "42", publishErr.Key)
	require.ErrorIs(t, err, cause)
}

func TestPublisher_Publish_UnencodablePayload(t *testing.T) {
	writer := new(MockMessageWriter)

	err := newPublisher(writer, slog.Default()).Publish(t.Context(), "t", "k", make(chan int))

	require.ErrorIs(t, err, errs.ErrPublish)
	var typeErr *json.UnsupportedTypeError
	require.ErrorAs(t, err, &typeErr)
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestHeaderCarrier_CarriesTraceContext(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(t.Context(), "publish")
	defer span.End()

	var headers headerCarrier
	propagation.TraceContext{}.Inject(ctx, &headers)

	assert.Contains(t, headers.Keys(), "traceparent")
	assert.Contains(t, headers.Get("traceparent"), span.SpanContext().TraceID().String())

	headers.Set("traceparent", "replaced")
	assert.Equal(t, "replaced", headers.Get("traceparent"))
	assert.Len(t, headers, 1)
}

func TestNewPublisher_RequiresBrokers(t *testing.T) {
	_, err := NewPublisher(nil, slog.Default())

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
