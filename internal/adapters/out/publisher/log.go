package publisher

import (
	"context"
	"encoding/json"
	"log/slog"

	"orchestrator/internal/pkg/errs"
)

// Log writes every notification to the logger instead of a broker.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger.With("component", "log_publisher")}
}

func (l *Log) Publish(ctx context.Context, topic, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.NewPublishErrorWithCause(topic, key, err)
	}
	l.logger.InfoContext(ctx, "Notification", "topic", topic, "key", key, "payload", string(body))
	return nil
}
