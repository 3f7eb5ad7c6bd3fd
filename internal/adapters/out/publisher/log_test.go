package publisher_test

import (
	"bytes"
	"log/slog"
	"testing"

	"orchestrator/internal/adapters/out/publisher"
	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_Publish(t *testing.T) {
	var buf bytes.Buffer
	p := publisher.NewLog(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, p.Publish(t.Context(), "order-created", "42", map[string]string{"order_id": "42"}))

	out := buf.String()
	assert.Contains(t, out, `"topic":"order-created"`)
	assert.Contains(t, out, `"key":"42"`)
	assert.Contains(t, out, `order_id`)
}

func TestLog_Publish_Unencodable(t *testing.T) {
	p := publisher.NewLog(slog.Default())

	err := p.Publish(t.Context(), "t", "k", func() {})

	require.ErrorIs(t, err, errs.ErrPublish)
}
